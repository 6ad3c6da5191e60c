package demo

import (
	"strings"
	"testing"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/dom/memdom"
	"github.com/vango-dev/sprig/pkg/live"
	"github.com/vango-dev/sprig/pkg/render"
)

func TestPagesRender(t *testing.T) {
	routes := Routes()
	tests := []struct {
		path  string
		found bool
		want  []string
	}{
		{"/", true, []string{`<a aria-current="page" class="active" href="/">Home</a>`, "<h1>sprig</h1>"}},
		{"/counter", true, []string{`<span class="count">0</span>`, `<span class="count">10</span>`}},
		{"/todos", true, []string{`<li class="done">`, "<p class=\"summary\">2 left</p>", `placeholder="What needs doing?"`}},
		{"/badge/ok", true, []string{`<svg aria-label="ok" height="20" viewBox="0 0 34 20" width="34">`, ">ok</text>"}},
		{"/about", true, []string{`rel="noopener noreferrer"`}},
		{"/missing", false, []string{"<code>/missing</code>"}},
	}
	for _, tt := range tests {
		v, ok := routes.Render(dom.Location{Origin: "http://localhost", Pathname: tt.path})
		if ok != tt.found {
			t.Errorf("%s: found = %v, want %v", tt.path, ok, tt.found)
		}
		html, err := render.ToHTMLString(v, render.Options{})
		if err != nil {
			t.Errorf("%s: %v", tt.path, err)
			continue
		}
		for _, want := range tt.want {
			if !strings.Contains(html, want) {
				t.Errorf("%s: missing %q in\n%s", tt.path, want, html)
			}
		}
	}
}

func start(t *testing.T, path string) *live.Session {
	t.Helper()
	s, err := live.NewSession(Routes(), "https://example.test"+path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func click(t *testing.T, s *live.Session, path ...int) {
	t.Helper()
	if err := s.Handle(live.ClientMessage{Type: live.TypeEvent, Event: "click", Path: path}); err != nil {
		t.Fatalf("click %v: %v", path, err)
	}
}

func TestCountersAreIndependent(t *testing.T) {
	s := start(t, "/counter")
	// body > #app > main > second counter > "+"
	click(t, s, 0, 1, 2, 2)
	click(t, s, 0, 1, 2, 2)
	click(t, s, 0, 1, 1, 0)

	html := s.HTML()
	if !strings.Contains(html, `<span class="count">-1</span>`) || !strings.Contains(html, `<span class="count">12</span>`) {
		t.Errorf("HTML = %s", html)
	}
}

func TestTodoList(t *testing.T) {
	s := start(t, "/todos")
	s.Flush()

	// body > #app > main > section > div > input
	err := s.Handle(live.ClientMessage{Type: live.TypeEvent, Event: "input", Path: []int{0, 1, 1, 0, 0}, Value: "Test it"})
	if err != nil {
		t.Fatal(err)
	}
	click(t, s, 0, 1, 1, 0, 1)
	html := s.HTML()
	if !strings.Contains(html, "<span>Test it</span>") || !strings.Contains(html, "3 left") {
		t.Fatalf("after add: %s", html)
	}
	s.Flush()

	click(t, s, 0, 1, 1, 0, 2)
	msg, ok := s.Flush()
	if !ok {
		t.Fatal("reverse changed nothing")
	}
	for _, r := range msg.Records {
		if r.Op == memdom.OpRemove || r.Op == memdom.OpReplace {
			t.Errorf("reverse should only move items, got %+v", r)
		}
	}
	first := strings.Index(msg.HTML, "Test it")
	last := strings.Index(msg.HTML, "Write the reconciler")
	if first < 0 || last < 0 || first > last {
		t.Errorf("order not reversed: %s", msg.HTML)
	}
}

func TestNavigationUpdatesActiveLink(t *testing.T) {
	s := start(t, "/")
	// body > #app > nav > "About"
	click(t, s, 0, 0, 4)
	if s.Location().Pathname != "/about" {
		t.Fatalf("location = %s", s.Location().Pathname)
	}
	if !strings.Contains(s.HTML(), `<a aria-current="page" class="active" href="/about">About</a>`) {
		t.Errorf("HTML = %s", s.HTML())
	}
}
