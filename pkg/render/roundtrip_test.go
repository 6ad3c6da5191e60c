package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/sprig/pkg/vdom"
)

// shape is the structural view both sides are compared in: tag,
// attributes and children, with adjacent text merged.
type shape struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []shape
}

func vnodeShape(v *vdom.VNode) []shape {
	var out []shape
	switch v.Kind {
	case vdom.KindText:
		return []shape{{Text: v.Text}}
	case vdom.KindFragment:
		for _, c := range v.Children {
			out = append(out, vnodeShape(c)...)
		}
		return mergeText(out)
	}
	s := shape{Tag: v.Tag, Attrs: map[string]string{}}
	for k, val := range v.Props {
		switch x := val.(type) {
		case bool:
			if x {
				s.Attrs[k] = ""
			}
		case vdom.Style:
			s.Attrs[k] = styleText(x)
		default:
			s.Attrs[k] = vdom.FormatValue(x)
		}
	}
	for _, c := range v.Children {
		s.Children = append(s.Children, vnodeShape(c)...)
	}
	s.Children = mergeText(s.Children)
	return []shape{s}
}

func htmlShape(n *html.Node) []shape {
	switch n.Type {
	case html.TextNode:
		return []shape{{Text: n.Data}}
	case html.ElementNode:
	default:
		return nil
	}
	s := shape{Tag: n.Data, Attrs: map[string]string{}}
	for _, a := range n.Attr {
		s.Attrs[a.Key] = a.Val
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.Children = append(s.Children, htmlShape(c)...)
	}
	s.Children = mergeText(s.Children)
	return []shape{s}
}

func mergeText(list []shape) []shape {
	var out []shape
	for _, s := range list {
		if s.Tag == "" && len(out) > 0 && out[len(out)-1].Tag == "" {
			out[len(out)-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	tree := vdom.Div(
		vdom.ID("root"),
		vdom.Data("state", `{"a":"<b>"}`),
		vdom.Styles(vdom.Style{"paddingLeft": "1px"}),
		vdom.H1("Tom & Jerry's \"show\""),
		vdom.Ul(
			vdom.Li(vdom.Key("1"), vdom.Class("first"), "one"),
			vdom.Li(vdom.Key("2"), "two ", vdom.Strong("<2>"), " end"),
		),
		vdom.Fragment(vdom.P("frag"), "tail"),
		vdom.Input(vdom.Type("checkbox"), vdom.Checked(), vdom.Disabled(false)),
		vdom.A(vdom.Href("/a?b=1&c=2"), vdom.Attr{Key: "title", Value: "line\nbreak"}, "link"),
	)

	out, err := ToHTMLString(tree, Options{})
	if err != nil {
		t.Fatal(err)
	}

	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(out), ctx)
	if err != nil {
		t.Fatal(err)
	}
	var got []shape
	for _, n := range nodes {
		got = append(got, htmlShape(n)...)
	}
	want := vnodeShape(tree)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s\nhtml: %s", diff, out)
	}
}
