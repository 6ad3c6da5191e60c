package live

import (
	"errors"
	"testing"

	"github.com/vango-dev/sprig/pkg/component"
	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/dom/memdom"
	"github.com/vango-dev/sprig/pkg/loop"
	"github.com/vango-dev/sprig/pkg/router"
	"github.com/vango-dev/sprig/pkg/vdom"
)

var counter component.Helper

func init() {
	counter = component.New("Counter", func(args ...any) *vdom.VNode {
		n := args[0].(int)
		return vdom.Button(
			vdom.OnClick(func() *vdom.VNode { return counter(n + 1) }),
			"count ", n,
		)
	})
}

const homeHTML = `<div><a href="/about">about</a><button>count 0</button></div>`

func testRoutes() *router.Routes {
	routes := router.NewRoutes()
	routes.Page("/", func(dom.Location, router.Params) *vdom.VNode {
		return vdom.Div(router.Link("/about", "about"), counter(0))
	})
	routes.Page("/about", func(dom.Location, router.Params) *vdom.VNode {
		return vdom.P("about page")
	})
	routes.NotFound(func(loc dom.Location, _ router.Params) *vdom.VNode {
		return vdom.P("missing ", loc.Pathname)
	})
	return routes
}

func newTestSession(t *testing.T, opts ...SessionOption) *Session {
	t.Helper()
	s, err := NewSession(testRoutes(), "https://example.test/", opts...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRendersFirstPage(t *testing.T) {
	s := newTestSession(t)
	if got := s.HTML(); got != homeHTML {
		t.Errorf("HTML = %s", got)
	}
	if len(s.ID()) != 32 {
		t.Errorf("ID = %q, want 32 hex chars", s.ID())
	}
	if _, ok := s.Flush(); ok {
		t.Error("the first render should not be reported as a change")
	}
	snap := s.Snapshot()
	if snap.Type != TypeRender || snap.URL != "/" || snap.HTML != homeHTML {
		t.Errorf("Snapshot = %+v", snap)
	}
}

func TestSessionClickByPath(t *testing.T) {
	s := newTestSession(t)
	err := s.Handle(ClientMessage{Type: TypeEvent, Event: "click", Path: []int{0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.HTML(); got != `<div><a href="/about">about</a><button>count 1</button></div>` {
		t.Errorf("HTML = %s", got)
	}

	msg, ok := s.Flush()
	if !ok {
		t.Fatal("Flush reported no changes")
	}
	if len(msg.Records) != 1 || msg.Records[0].Op != memdom.OpSetText || msg.Records[0].Value != "1" {
		t.Errorf("records = %+v, want one text write", msg.Records)
	}
	if _, ok := s.Flush(); ok {
		t.Error("second Flush should be empty")
	}
}

func TestSessionLinkAndHistory(t *testing.T) {
	s := newTestSession(t)
	if err := s.Handle(ClientMessage{Type: TypeEvent, Event: "click", Path: []int{0, 0}}); err != nil {
		t.Fatal(err)
	}
	if got := s.Location().Pathname; got != "/about" {
		t.Errorf("path = %s, want /about", got)
	}
	if got := s.HTML(); got != "<p>about page</p>" {
		t.Errorf("HTML = %s", got)
	}

	if err := s.Handle(ClientMessage{Type: TypeBack}); err != nil {
		t.Fatal(err)
	}
	if got := s.HTML(); got != homeHTML {
		t.Errorf("HTML after back = %s", got)
	}
	if err := s.Handle(ClientMessage{Type: TypeForward}); err != nil {
		t.Fatal(err)
	}
	if got := s.Location().Pathname; got != "/about" {
		t.Errorf("path after forward = %s", got)
	}

	if err := s.Handle(ClientMessage{Type: TypeNavigate, URL: "/nowhere"}); err != nil {
		t.Fatal(err)
	}
	if got := s.HTML(); got != "<p>missing /nowhere</p>" {
		t.Errorf("HTML = %s", got)
	}
}

func TestSessionErrors(t *testing.T) {
	s := newTestSession(t)
	if err := s.Handle(ClientMessage{Type: TypeEvent, Event: "click", Path: []int{0, 9}}); !errors.Is(err, ErrNoTarget) {
		t.Errorf("err = %v, want ErrNoTarget", err)
	}
	if err := s.Handle(ClientMessage{Type: "bogus"}); err == nil {
		t.Error("unknown message type should fail")
	}
	if got := s.HTML(); got != homeHTML {
		t.Errorf("HTML = %s", got)
	}
}

func TestSessionInputSetsValue(t *testing.T) {
	var got string
	routes := router.NewRoutes()
	routes.Page("/", func(dom.Location, router.Params) *vdom.VNode {
		return vdom.Input(vdom.OnInput(func(ev *dom.Event) { got = ev.Value }))
	})
	s, err := NewSession(routes, "https://example.test/")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Handle(ClientMessage{Type: TypeEvent, Event: "input", Path: []int{0}, Value: "hello"}); err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("handler saw %q", got)
	}
	input := s.Root().Children()[0].(*memdom.Element)
	if v := input.Property("value"); v != "hello" {
		t.Errorf("value property = %v", v)
	}
}

func TestSessionOnChangeAfterAsyncResult(t *testing.T) {
	var (
		pending *loop.Promise
		changes int
	)
	loader := component.New("Loader", func(args ...any) *vdom.VNode {
		return vdom.Button(vdom.OnClick(func() *loop.Promise { return pending }), "load")
	})
	routes := router.NewRoutes()
	routes.Page("/", func(dom.Location, router.Params) *vdom.VNode {
		return vdom.Div(loader())
	})
	s, err := NewSession(routes, "https://example.test/", WithOnChange(func() { changes++ }))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	p, resolve, _ := s.Loop().NewPromise()
	pending = p
	if err := s.Handle(ClientMessage{Type: TypeEvent, Event: "click", Path: []int{0, 0}}); err != nil {
		t.Fatal(err)
	}
	if changes != 0 {
		t.Fatalf("changes = %d before the result", changes)
	}

	resolve(vdom.P("loaded"))
	if err := s.Loop().RunPending(); err != nil {
		t.Fatal(err)
	}
	if s.HTML() != "<div><p>loaded</p></div>" {
		t.Errorf("HTML = %s", s.HTML())
	}
	if changes != 1 {
		t.Errorf("changes = %d, want 1", changes)
	}
}
