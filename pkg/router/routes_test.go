package router

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/vdom"
)

func page(name string) PageFunc {
	return func(loc dom.Location, params Params) *vdom.VNode {
		return vdom.Div(vdom.Data("page", name))
	}
}

func TestRoutesMatch(t *testing.T) {
	routes := NewRoutes()
	routes.Page("/", page("home"))
	routes.Page("/todos", page("todos"))
	routes.Page("/todos/new", page("new"))
	routes.Page("/todos/:id:int", page("todo"))
	routes.Page("/users/:name", page("user"))
	routes.Page("/docs/*path", page("docs"))

	tests := []struct {
		path    string
		pattern string
		params  Params
		ok      bool
	}{
		{"/", "/", Params{}, true},
		{"/todos/", "/todos", Params{}, true},
		{"/todos/new", "/todos/new", Params{}, true},
		{"/todos/42", "/todos/:id:int", Params{"id": "42"}, true},
		{"/todos/abc", "", nil, false},
		{"/users/J%C3%BCrgen", "/users/:name", Params{"name": "Jürgen"}, true},
		{"/docs/guide/intro", "/docs/*path", Params{"path": "guide/intro"}, true},
		{"/missing", "", nil, false},
	}

	for _, tt := range tests {
		route, params, ok := routes.Match(tt.path)
		if ok != tt.ok {
			t.Errorf("Match(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if route.Pattern != tt.pattern {
			t.Errorf("Match(%q) pattern = %q, want %q", tt.path, route.Pattern, tt.pattern)
		}
		if diff := cmp.Diff(tt.params, params); diff != "" {
			t.Errorf("Match(%q) params (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestRoutesRender(t *testing.T) {
	routes := NewRoutes()
	routes.Page("/about", page("about"), WithTitle("About"))

	v, ok := routes.Render(dom.Location{Pathname: "/about"})
	if !ok || v.Props["data-page"] != "about" {
		t.Errorf("Render(/about) = %v, %v", v, ok)
	}
	if v, ok := routes.Render(dom.Location{Pathname: "/nope"}); ok || v != nil {
		t.Errorf("Render(/nope) without not-found page = %v, %v", v, ok)
	}

	routes.NotFound(page("404"))
	v, ok = routes.Render(dom.Location{Pathname: "/nope"})
	if ok || v == nil || v.Props["data-page"] != "404" {
		t.Errorf("Render(/nope) = %v, %v", v, ok)
	}

	all := routes.All()
	if len(all) != 1 || all[0].Title != "About" || !all[0].Static() {
		t.Errorf("All = %+v", all)
	}
}

func TestParamsDecode(t *testing.T) {
	var target struct {
		ID    int      `param:"id"`
		Name  string   `param:"name"`
		Parts []string `param:"path"`
		Skip  string
	}
	p := Params{"id": "7", "name": "x", "path": "a/b"}
	if err := p.Decode(&target); err != nil {
		t.Fatal(err)
	}
	if target.ID != 7 || target.Name != "x" || len(target.Parts) != 2 {
		t.Errorf("decoded %+v", target)
	}
	if err := (Params{"id": "x"}).Decode(&target); err == nil {
		t.Error("expected an error for a non-integer id")
	}
	if err := p.Decode(target); err == nil {
		t.Error("expected an error for a non-pointer target")
	}
}

func TestLinks(t *testing.T) {
	loc := dom.Location{Origin: "https://app.test", Pathname: "/todos/3"}

	if l := Link("/todos", "Todos"); l.Tag != "a" || l.Props["href"] != "/todos" {
		t.Errorf("Link = %v", l)
	}
	if l := NavLink(loc, "/todos/3", "This"); l.Props["class"] != "active" {
		t.Errorf("NavLink on current path has props %v", l.Props)
	}
	if l := NavLink(loc, "/todos", "All"); l.Props["class"] != nil {
		t.Errorf("exact NavLink on parent path has props %v", l.Props)
	}
	if l := ActiveLink(loc, "/todos", "on", false, "All"); l.Props["class"] != "on" {
		t.Errorf("prefix ActiveLink has props %v", l.Props)
	}
	if IsActive(loc, "/", false) {
		t.Error("root must only match exactly")
	}
	if l := ExternalLink("https://go.dev", "Go"); l.Props["target"] != "_blank" {
		t.Errorf("ExternalLink = %v", l.Props)
	}
}

func TestValidateParam(t *testing.T) {
	tests := []struct {
		value, kind string
		ok          bool
	}{
		{"42", "int", true},
		{"-1", "int", true},
		{"x", "int", false},
		{"-1", "uint", false},
		{"7", "uint8", true},
		{"0b8f3a1c-2d4e-4f60-8a9b-c0d1e2f3a4b5", "uuid", true},
		{"0b8f3a1c-2d4e-4f60-8a9b-c0d1e2f3a4bZ", "uuid", false},
		{"0b8f3a1c2d4e4f608a9bc0d1e2f3a4b5", "uuid", false},
		{"anything", "string", true},
		{"anything", "slug", true},
	}
	for _, tt := range tests {
		err := ValidateParam(tt.value, tt.kind)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateParam(%q, %q) = %v, want ok=%v", tt.value, tt.kind, err, tt.ok)
		}
	}
}
