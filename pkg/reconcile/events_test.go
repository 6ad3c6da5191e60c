package reconcile_test

import (
	"errors"
	"testing"

	"github.com/vango-dev/sprig/pkg/component"
	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/dom/memdom"
	"github.com/vango-dev/sprig/pkg/loop"
	"github.com/vango-dev/sprig/pkg/reconcile"
	"github.com/vango-dev/sprig/pkg/router"
	"github.com/vango-dev/sprig/pkg/vdom"
)

var Counter component.Helper

func init() {
	Counter = component.New("Counter", func(args ...any) *vdom.VNode {
		n := args[0].(int)
		return vdom.Button(
			vdom.OnClick(func() *vdom.VNode { return Counter(n + 1) }),
			"count ", n,
		)
	})
}

func mountInto(t *testing.T, r *reconcile.Reconciler, root dom.Node, v *vdom.VNode) {
	t.Helper()
	if err := r.Render(v, root, reconcile.RenderOptions{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestHandlerRerendersOnlyItsComponent(t *testing.T) {
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)
	mountInto(t, r, root, vdom.Div(Counter(0), vdom.P("sibling")))

	button := root.Children()[0].Children()[0]
	b := r.Boundaries(button)
	if len(b) != 1 || b[0].Name() != "Counter" {
		t.Fatalf("boundaries = %v", b)
	}
	version := b[0].Version()
	doc.Reset()

	if _, err := memdom.Click(button); err != nil {
		t.Fatal(err)
	}
	if got := memdom.InnerHTML(root); got != "<div><button>count 1</button><p>sibling</p></div>" {
		t.Errorf("html = %s", got)
	}
	records := doc.Records()
	if len(records) != 1 || records[0].Op != memdom.OpSetText {
		t.Errorf("records = %v, want one text write", records)
	}
	if b[0].Version() != version+1 {
		t.Errorf("version = %d, want %d", b[0].Version(), version+1)
	}
	if root.Children()[0].Children()[0] != button {
		t.Error("button should be patched in place")
	}

	if _, err := memdom.Click(button); err != nil {
		t.Fatal(err)
	}
	if got := memdom.InnerHTML(button); got != "count 2" {
		t.Errorf("second click = %s", got)
	}
}

func TestBoundarySurvivesRootTagChange(t *testing.T) {
	Toggle := component.New("Toggle", func(args ...any) *vdom.VNode {
		return vdom.Span(vdom.OnClick(func() *vdom.VNode {
			return vdom.Strong("on")
		}), "off")
	})

	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)
	mountInto(t, r, root, vdom.Div(Toggle()))

	span := root.Children()[0].Children()[0]
	before := r.Boundaries(span)[0]
	if _, err := memdom.Click(span); err != nil {
		t.Fatal(err)
	}

	strong := root.Children()[0].Children()[0]
	if got := memdom.OuterHTML(strong); got != "<strong>on</strong>" {
		t.Fatalf("html = %s", got)
	}
	after := r.Boundaries(strong)
	if len(after) != 1 || after[0] != before {
		t.Error("the boundary should move to the new root")
	}
	if before.Released() || before.Root != strong {
		t.Errorf("boundary state = %v, root = %v", before.State(), before.Root)
	}
	if r.Bound(span) {
		t.Error("the replaced node should be released")
	}
}

func TestHandlerOutsideComponentsRerendersContainer(t *testing.T) {
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)
	mountInto(t, r, root, vdom.Button(vdom.OnClick(func() *vdom.VNode {
		return vdom.P("replaced")
	}), "go"))

	if _, err := memdom.Click(root.Children()[0]); err != nil {
		t.Fatal(err)
	}
	if got := memdom.InnerHTML(root); got != "<p>replaced</p>" {
		t.Errorf("html = %s", got)
	}
}

func TestHandlerErrors(t *testing.T) {
	boom := errors.New("boom")
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)
	mountInto(t, r, root, vdom.Div(
		vdom.Button(vdom.OnClick(func() error { return boom })),
		vdom.Button(vdom.OnClick(func() { panic("bad") })),
	))

	kids := root.Children()[0].Children()
	if _, err := memdom.Click(kids[0]); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if _, err := memdom.Click(kids[1]); err == nil {
		t.Error("a panicking handler should report an error")
	}
}

func TestHandlerSwapCostsNoWrites(t *testing.T) {
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)

	var calls []string
	tree := func(name string) *vdom.VNode {
		return vdom.Button(vdom.OnClick(func() { calls = append(calls, name) }))
	}
	mountInto(t, r, root, tree("first"))
	doc.Reset()
	mountInto(t, r, root, tree("second"))
	if doc.Writes() != 0 {
		t.Errorf("records = %v", doc.Records())
	}

	button := root.Children()[0].(*memdom.Element)
	if button.ListenerCount("click") != 1 {
		t.Errorf("listeners = %d", button.ListenerCount("click"))
	}
	if _, err := memdom.Click(button); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("calls = %v", calls)
	}

	mountInto(t, r, root, vdom.Button())
	if button.ListenerCount("click") != 0 {
		t.Error("removing the handler should remove the listener")
	}
}

func TestPromiseResults(t *testing.T) {
	lp := loop.New()
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)

	p, resolve, _ := lp.NewPromise()
	Loader := component.New("Loader", func(args ...any) *vdom.VNode {
		return vdom.Button(vdom.OnClick(func() *loop.Promise { return p }), "load")
	})
	mountInto(t, r, root, vdom.Div(Loader(), vdom.Span("static")))
	button := root.Children()[0].Children()[0]
	boundary := r.Boundaries(button)[0]

	if _, err := memdom.Click(button); err != nil {
		t.Fatal(err)
	}
	if got := memdom.InnerHTML(root); got != "<div><button>load</button><span>static</span></div>" {
		t.Fatalf("html before settle = %s", got)
	}
	resolve(vdom.P("loaded"))
	if got := memdom.InnerHTML(root); got != "<div><button>load</button><span>static</span></div>" {
		t.Fatalf("the result must not apply synchronously: %s", got)
	}
	if err := lp.Drain(); err != nil {
		t.Fatal(err)
	}
	if got := memdom.InnerHTML(root); got != "<div><p>loaded</p><span>static</span></div>" {
		t.Errorf("html = %s", got)
	}
	if boundary.Released() {
		t.Error("boundary should carry over to the new root")
	}
}

func TestPromiseRejectionSurfacesFromLoop(t *testing.T) {
	lp := loop.New()
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)

	boom := errors.New("boom")
	p, _, reject := lp.NewPromise()
	mountInto(t, r, root, vdom.Button(vdom.OnClick(func() *loop.Promise { return p })))
	if _, err := memdom.Click(root.Children()[0]); err != nil {
		t.Fatal(err)
	}
	doc.Reset()
	reject(boom)
	if err := lp.Drain(); !errors.Is(err, boom) {
		t.Errorf("Drain = %v, want boom", err)
	}
	if doc.Writes() != 0 {
		t.Errorf("a rejected promise changed the DOM: %v", doc.Records())
	}
}

func TestLateResultForUnmountedComponentIsDropped(t *testing.T) {
	lp := loop.New()
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)

	p, resolve, _ := lp.NewPromise()
	Loader := component.New("Loader", func(args ...any) *vdom.VNode {
		return vdom.Button(vdom.OnClick(func() *loop.Promise { return p }))
	})
	mountInto(t, r, root, Loader())
	button := root.Children()[0]
	boundary := r.Boundaries(button)[0]
	if _, err := memdom.Click(button); err != nil {
		t.Fatal(err)
	}

	if err := r.Unmount(root); err != nil {
		t.Fatal(err)
	}
	if !boundary.Released() {
		t.Fatal("unmount should release the boundary")
	}
	doc.Reset()
	resolve(vdom.P("late"))
	if err := lp.Drain(); err != nil {
		t.Fatal(err)
	}
	if doc.Writes() != 0 || memdom.InnerHTML(root) != "" {
		t.Errorf("late result was applied: %v", doc.Records())
	}
}

func TestLateResultForUnmountedContainerIsDropped(t *testing.T) {
	lp := loop.New()
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)

	p, resolve, _ := lp.NewPromise()
	mountInto(t, r, root, vdom.Button(vdom.OnClick(func() *loop.Promise { return p })))
	if _, err := memdom.Click(root.Children()[0]); err != nil {
		t.Fatal(err)
	}
	if err := r.Unmount(root); err != nil {
		t.Fatal(err)
	}
	doc.Reset()
	resolve(vdom.P("late"))
	if err := lp.Drain(); err != nil {
		t.Fatal(err)
	}
	if doc.Writes() != 0 || memdom.InnerHTML(root) != "" {
		t.Errorf("late result re-populated the container: %s", memdom.InnerHTML(root))
	}
	if r.Bound(root) {
		t.Error("the container should stay unbound")
	}
}

func TestLateResultAfterReplaceIsDropped(t *testing.T) {
	lp := loop.New()
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)

	stale, resolveStale, _ := lp.NewPromise()
	mountInto(t, r, root, vdom.Button(vdom.OnClick(func() *loop.Promise { return stale })))
	if _, err := memdom.Click(root.Children()[0]); err != nil {
		t.Fatal(err)
	}
	err := r.Render(vdom.Button(vdom.OnClick(func() *vdom.VNode { return vdom.P("fresh") }), "new"), root, reconcile.RenderOptions{Replace: true})
	if err != nil {
		t.Fatal(err)
	}

	resolveStale(vdom.P("late"))
	if err := lp.Drain(); err != nil {
		t.Fatal(err)
	}
	if got := memdom.InnerHTML(root); got != "<button>new</button>" {
		t.Fatalf("late result applied after replace: %s", got)
	}

	if _, err := memdom.Click(root.Children()[0]); err != nil {
		t.Fatal(err)
	}
	if got := memdom.InnerHTML(root); got != "<p>fresh</p>" {
		t.Errorf("handlers mounted by the replacing render should still update: %s", got)
	}
}

func TestEventDuringPatchIsDeferred(t *testing.T) {
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)
	mountInto(t, r, root, vdom.Div(Counter(0), vdom.P("x")))
	button := root.Children()[0].Children()[0]

	fired := false
	var mid string
	doc.Observe(func(rec memdom.Record) {
		if fired || rec.Op != memdom.OpSetText || rec.Value != "y" {
			return
		}
		fired = true
		if _, err := memdom.Click(button); err != nil {
			t.Errorf("click: %v", err)
		}
		mid = memdom.InnerHTML(button)
	})

	mountInto(t, r, root, vdom.Div(Counter(0), vdom.P("y")))
	if !fired {
		t.Fatal("observer never fired")
	}
	if mid != "count 0" {
		t.Errorf("the click patched mid-render: %s", mid)
	}
	if got := memdom.InnerHTML(root); got != "<div><button>count 1</button><p>y</p></div>" {
		t.Errorf("html = %s", got)
	}
}

func TestComponentRenderErrorLeavesDOM(t *testing.T) {
	boom := errors.New("render failed")
	Broken := component.NewE("Broken", func(args ...any) (*vdom.VNode, error) {
		if args[0].(bool) {
			return nil, boom
		}
		return vdom.P("fine"), nil
	})
	Empty := component.New("Empty", func(args ...any) *vdom.VNode { return nil })
	Multi := component.New("Multi", func(args ...any) *vdom.VNode {
		return vdom.Fragment(vdom.P("a"), vdom.P("b"))
	})

	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)
	mountInto(t, r, root, vdom.Div(Broken(false)))
	doc.Reset()

	if err := r.Render(vdom.Div(Broken(true)), root, reconcile.RenderOptions{}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	var invalid *vdom.InvalidVnodeError
	if err := r.Render(vdom.Div(Empty()), root, reconcile.RenderOptions{}); !errors.As(err, &invalid) {
		t.Errorf("nil output: err = %v", err)
	}
	if err := r.Render(vdom.Div(Multi()), root, reconcile.RenderOptions{}); !errors.As(err, &invalid) {
		t.Errorf("fragment output: err = %v", err)
	}
	if doc.Writes() != 0 || memdom.InnerHTML(root) != "<div><p>fine</p></div>" {
		t.Errorf("DOM changed: %v", doc.Records())
	}
}

func TestKeyedComponents(t *testing.T) {
	Item := component.New("Item", func(args ...any) *vdom.VNode {
		return vdom.Li(args[0].(string))
	})
	list := func(keys ...string) *vdom.VNode {
		items := make([]any, len(keys))
		for i, k := range keys {
			items[i] = Item.Keyed(k, k)
		}
		return vdom.Ul(items...)
	}

	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)
	mountInto(t, r, root, list("a", "b"))
	ul := root.Children()[0]
	a := ul.Children()[0]
	boundary := r.Boundaries(a)[0]

	mountInto(t, r, root, list("b", "a"))
	if got := memdom.InnerHTML(ul); got != "<li>b</li><li>a</li>" {
		t.Fatalf("html = %s", got)
	}
	if ul.Children()[1] != a || r.Boundaries(a)[0] != boundary {
		t.Error("keyed component should keep its node and boundary")
	}

	mountInto(t, r, root, list("b"))
	if !boundary.Released() {
		t.Error("removed component should be released")
	}
}

func newNavEnv(t *testing.T) (*memdom.Window, *loop.Loop, *reconcile.Reconciler, *memdom.Element, *[]string) {
	t.Helper()
	doc := memdom.New()
	win, err := memdom.NewWindow(doc, "https://example.test/")
	if err != nil {
		t.Fatal(err)
	}
	lp := loop.New()
	rt := router.New(win, lp)
	var seen []string
	rt.OnNavigate(func(loc dom.Location) { seen = append(seen, loc.Path()) })
	r := reconcile.New(doc, reconcile.WithNavigator(rt))
	return win, lp, r, doc.CreateElement("main"), &seen
}

func TestLinkClickIsIntercepted(t *testing.T) {
	win, lp, r, root, seen := newNavEnv(t)
	var handled int
	mountInto(t, r, root, vdom.Nav(
		vdom.A(vdom.Href("/about"), "about"),
		vdom.A(vdom.Href("/docs?page=2"), vdom.OnClick(func() { handled++ }), "docs"),
	))
	links := root.Children()[0].Children()

	ev := dom.NewMouseEvent("click", 0)
	var prevented int
	ev.OnPreventDefault(func() { prevented++ })
	if err := memdom.Dispatch(links[0], ev); err != nil {
		t.Fatal(err)
	}
	if prevented != 1 {
		t.Errorf("preventDefault calls = %d, want 1", prevented)
	}
	if pushes, _ := win.HistoryCalls(); pushes != 1 {
		t.Errorf("pushes = %d, want 1", pushes)
	}
	if len(*seen) != 0 {
		t.Error("subscribers must run after the click, not during it")
	}
	if err := lp.Drain(); err != nil {
		t.Fatal(err)
	}
	if len(*seen) != 1 || (*seen)[0] != "/about" {
		t.Errorf("seen = %v", *seen)
	}

	if _, err := memdom.Click(links[1]); err != nil {
		t.Fatal(err)
	}
	if err := lp.Drain(); err != nil {
		t.Fatal(err)
	}
	if handled != 1 || win.Location().Path() != "/docs?page=2" {
		t.Errorf("handled = %d, location = %s", handled, win.Location().Path())
	}
}

func TestLinkClickNotIntercepted(t *testing.T) {
	tests := []struct {
		name  string
		link  *vdom.VNode
		event func() *dom.Event
	}{
		{"modifier", vdom.A(vdom.Href("/a")), func() *dom.Event {
			ev := dom.NewMouseEvent("click", 0)
			ev.MetaKey = true
			return ev
		}},
		{"middle button", vdom.A(vdom.Href("/a")), func() *dom.Event { return dom.NewMouseEvent("click", 1) }},
		{"new tab", vdom.A(vdom.Href("/a"), vdom.Target("_blank")), nil},
		{"download", vdom.A(vdom.Href("/a"), vdom.Download()), nil},
		{"other origin", vdom.A(vdom.Href("https://elsewhere.test/a")), nil},
		{"prevented by handler", vdom.A(vdom.Href("/a"), vdom.OnClick(func(ev *dom.Event) { ev.PreventDefault() })), nil},
		{"not cancelable", vdom.A(vdom.Href("/a")), func() *dom.Event {
			ev := dom.NewMouseEvent("click", 0)
			ev.Cancelable = false
			return ev
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win, lp, r, root, seen := newNavEnv(t)
			mountInto(t, r, root, tt.link)
			ev := dom.NewMouseEvent("click", 0)
			if tt.event != nil {
				ev = tt.event()
			}
			if err := memdom.Dispatch(root.Children()[0], ev); err != nil {
				t.Fatal(err)
			}
			if err := lp.Drain(); err != nil {
				t.Fatal(err)
			}
			if pushes, _ := win.HistoryCalls(); pushes != 0 || len(*seen) != 0 {
				t.Errorf("pushes = %d, seen = %v", pushes, *seen)
			}
		})
	}
}

func TestLinksWithoutNavigatorHaveNoListener(t *testing.T) {
	doc := memdom.New()
	root := doc.CreateElement("main")
	r := reconcile.New(doc)
	mountInto(t, r, root, vdom.A(vdom.Href("/x")))
	if n := root.Children()[0].(*memdom.Element).ListenerCount("click"); n != 0 {
		t.Errorf("listeners = %d", n)
	}
}
