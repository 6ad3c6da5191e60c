package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/sprig/pkg/render"
	"github.com/vango-dev/sprig/pkg/vdom"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "vnode error",
			code:    "E101",
			wantMsg: "Invalid prop",
			wantCat: CategoryVNode,
		},
		{
			name:    "config error",
			code:    "E122",
			wantMsg: "Invalid port",
			wantCat: CategoryConfig,
		},
		{
			name:    "publish error",
			code:    "E161",
			wantMsg: "Missing credentials",
			wantCat: CategoryPublish,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "sprig.json")
	if err.Message != `file "sprig.json" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestSprigError_Error(t *testing.T) {
	if got, want := New("E122").Error(), "E122: Invalid port"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	wrapped := New("E160").Wrap(fmt.Errorf("denied"))
	if got, want := wrapped.Error(), "E160: Upload failed: denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := (&SprigError{Message: "plain"}).Error(); got != "plain" {
		t.Errorf("Error() = %q, want plain", got)
	}
}

func TestSprigError_WithLocation(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sprig.json")
	content := "{\n  \"server\": {\n    \"port\": 70000\n  }\n}\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("E122").WithLocation(file, 3, 13)
	if err.Location == nil || err.Location.Line != 3 || err.Location.Column != 13 {
		t.Fatalf("Location = %+v", err.Location)
	}
	if len(err.Context) != 5 {
		t.Errorf("Context = %q, want 5 lines", err.Context)
	}
	if err.Context[2] != `    "port": 70000` {
		t.Errorf("Context[2] = %q", err.Context[2])
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E141") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	se := New("E122")
	if FromError(fmt.Errorf("load: %w", se), "E141") != se {
		t.Error("FromError should find a wrapped SprigError")
	}

	propErr := vdom.Validate(vdom.Div(vdom.Props{"className": "x"}))
	if got := FromError(fmt.Errorf("render: %w", propErr), "E141"); got.Code != "E101" {
		t.Errorf("prop error code = %s, want E101", got.Code)
	}
	nodeErr := vdom.Validate(&vdom.VNode{Kind: vdom.KindElement})
	if got := FromError(nodeErr, "E141"); got.Code != "E100" {
		t.Errorf("vnode error code = %s, want E100", got.Code)
	}

	compErr := &render.ComponentError{Component: "Card", Err: stderrors.New("no data")}
	if got := FromError(fmt.Errorf("page: %w", compErr), "E141"); got.Code != "E102" {
		t.Errorf("component error code = %s, want E102", got.Code)
	}

	plain := stderrors.New("boom")
	got := FromError(plain, "E141")
	if got.Code != "E141" || !stderrors.Is(got, plain) {
		t.Errorf("FromError(plain) = %v", got)
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  *Location
		want string
	}{
		{nil, ""},
		{&Location{File: "sprig.json", Line: 10, Column: 5}, "sprig.json:10:5"},
		{&Location{File: "sprig.json", Line: 10}, "sprig.json:10"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	file := filepath.Join(t.TempDir(), "sprig.json")
	if err := os.WriteFile(file, []byte("{\n  \"port\": 0\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := New("E122").
		WithLocation(file, 2, 11).
		Wrap(stderrors.New("port 0 out of range")).
		Format()

	for _, want := range []string{
		"ERROR E122: Invalid port",
		file + ":2:11",
		"→    2 │   \"port\": 0",
		"^",
		"Cause: port 0 out of range",
		"Hint: Use a port between 1 and 65535",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E122")
	err.Location = &Location{File: "sprig.json", Line: 3}
	if got, want := err.FormatCompact(), "sprig.json:3: E122: Invalid port"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}

	wrapped := New("E160").Wrap(stderrors.New("denied"))
	if got, want := wrapped.FormatCompact(), "E160: Upload failed: denied"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	got := New("E120").FormatJSON()
	for _, want := range []string{`"code":"E120"`, `"category":"config"`, `"suggestion":`} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatJSON() = %s, missing %s", got, want)
		}
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 || codes[0] != "E100" {
		t.Errorf("codes = %v", codes)
	}
	for _, code := range codes {
		tmpl, _ := GetTemplate(code)
		if tmpl.Category == "" || tmpl.Message == "" {
			t.Errorf("%s has an incomplete template", code)
		}
	}

	Register("E199", ErrorTemplate{Category: CategoryRuntime, Message: "Custom"})
	defer delete(registry, "E199")
	if New("E199").Message != "Custom" {
		t.Error("registered template not used")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than 10", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("lines = %q", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should give no lines")
	}
}

func TestFprintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	FprintError(&b, fmt.Errorf("serve: %w", New("E140")))
	if !strings.Contains(b.String(), "ERROR E140: Port already in use") {
		t.Errorf("wrapped SprigError not formatted:\n%s", b.String())
	}

	b.Reset()
	FprintError(&b, stderrors.New("plain"))
	if strings.TrimSpace(b.String()) != "ERROR: plain" {
		t.Errorf("plain error = %q", b.String())
	}
}
