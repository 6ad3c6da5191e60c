package demo

import (
	"strconv"
	"strings"

	"github.com/vango-dev/sprig/pkg/component"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// Counter renders a count with increment and decrement buttons.
// Args: start int.
var Counter component.Helper

// Todo is one todo list entry.
type Todo struct {
	ID   int
	Text string
	Done bool
}

// SampleTodos returns the initial todo list.
func SampleTodos() []Todo {
	return []Todo{
		{ID: 1, Text: "Write the reconciler"},
		{ID: 2, Text: "Render on the server", Done: true},
		{ID: 3, Text: "Ship it"},
	}
}

// TodoList renders an editable, keyed todo list.
// Args: items []Todo, draft string.
var TodoList component.Helper

func init() {
	Counter = component.New("Counter", func(args ...any) *vdom.VNode {
		n := args[0].(int)
		return vdom.Div(vdom.Class("counter"),
			vdom.Button(vdom.OnClick(func() *vdom.VNode { return Counter(n - 1) }), "-"),
			vdom.Span(vdom.Class("count"), n),
			vdom.Button(vdom.OnClick(func() *vdom.VNode { return Counter(n + 1) }), "+"),
		)
	})

	TodoList = component.NewE("TodoList", renderTodos)
}

func renderTodos(args ...any) (*vdom.VNode, error) {
	items := args[0].([]Todo)
	draft := args[1].(string)

	add := func() *vdom.VNode {
		text := strings.TrimSpace(draft)
		if text == "" {
			return TodoList(items, draft)
		}
		next := 1
		for _, t := range items {
			if t.ID >= next {
				next = t.ID + 1
			}
		}
		return TodoList(append(append([]Todo(nil), items...), Todo{ID: next, Text: text}), "")
	}
	reverse := func() *vdom.VNode {
		out := make([]Todo, len(items))
		for i, t := range items {
			out[len(items)-1-i] = t
		}
		return TodoList(out, draft)
	}

	left := 0
	for _, t := range items {
		if !t.Done {
			left++
		}
	}

	return vdom.Section(vdom.Class("todos"),
		vdom.Div(
			vdom.Input(
				vdom.Type("text"),
				vdom.Placeholder("What needs doing?"),
				vdom.Value(draft),
				vdom.OnInput(func(value string) *vdom.VNode { return TodoList(items, value) }),
			),
			vdom.Button(vdom.OnClick(add), "Add"),
			vdom.Button(vdom.OnClick(reverse), "Reverse"),
		),
		vdom.Ul(vdom.Range(items, func(t Todo, i int) *vdom.VNode {
			return vdom.Li(
				vdom.Key(t.ID),
				vdom.AttrIf(t.Done, vdom.Class("done")),
				vdom.Input(
					vdom.Type("checkbox"),
					vdom.Checked(t.Done),
					vdom.OnChange(func() *vdom.VNode { return TodoList(toggle(items, t.ID), draft) }),
				),
				vdom.Span(t.Text),
				vdom.Button(vdom.OnClick(func() *vdom.VNode { return TodoList(remove(items, t.ID), draft) }), "×"),
			)
		})),
		vdom.P(vdom.Class("summary"), strconv.Itoa(left), " left"),
	), nil
}

func toggle(items []Todo, id int) []Todo {
	out := append([]Todo(nil), items...)
	for i := range out {
		if out[i].ID == id {
			out[i].Done = !out[i].Done
		}
	}
	return out
}

func remove(items []Todo, id int) []Todo {
	out := make([]Todo, 0, len(items))
	for _, t := range items {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Badge renders an SVG label badge.
func Badge(label, color string) *vdom.VNode {
	w := 20 + 7*len(label)
	return vdom.Svg(
		vdom.Width(w), vdom.Height(20),
		vdom.ViewBox("0 0 "+strconv.Itoa(w)+" 20"),
		vdom.AriaLabel(label),
		vdom.Rect(vdom.Width(w), vdom.Height(20), vdom.Props{"rx": 3, "fill": color}),
		vdom.SvgText(vdom.Props{"x": 10, "y": 14, "fill": "#fff", "font-size": 11}, label),
	)
}
