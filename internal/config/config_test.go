package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/sprig/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func code(err error) string {
	var se *errors.SprigError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()
	if cfg.Server.Port != DefaultPort || cfg.Server.Host != DefaultHost {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Export.Output != DefaultOutput || cfg.Publish.Target != TargetDir {
		t.Errorf("export = %+v publish = %+v", cfg.Export, cfg.Publish)
	}
	if cfg.LivePath() != "/_sprig/live" || cfg.MetricsPath() != "/metrics" {
		t.Errorf("live = %q metrics = %q", cfg.LivePath(), cfg.MetricsPath())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("SPRIG_PORT", "")
	t.Setenv("SPRIG_HOST", "")
	dir := t.TempDir()
	writeConfig(t, dir, `{
  "name": "demo",
  "server": {"port": 8080, "static": "public", "live": "-"},
  "page": {"styles": ["body{margin:0}"]},
  "export": {"paths": ["/extra"], "notFound": "404.html"},
  "publish": {"target": "s3", "bucket": "b", "region": "eu-west-1"}
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Name:   "demo",
		Server: ServerConfig{Host: DefaultHost, Port: 8080, Static: "public", Live: "-", Metrics: "/metrics"},
		Page:   PageConfig{Lang: "en", Styles: []string{"body{margin:0}"}},
		Export: ExportConfig{Output: DefaultOutput, Paths: []string{"/extra"}, NotFound: "404.html"},
		Publish: PublishConfig{
			Target: TargetS3, Bucket: "b", Region: "eu-west-1",
		},
	}
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("Load (-want +got):\n%s", diff)
	}
	if cfg.LivePath() != "" {
		t.Errorf("LivePath = %q, want disabled", cfg.LivePath())
	}
	if cfg.StaticPath() != filepath.Join(dir, "public") || cfg.OutputPath() != filepath.Join(dir, "dist") {
		t.Errorf("paths = %s, %s", cfg.StaticPath(), cfg.OutputPath())
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(t.TempDir()); code(err) != "E120" {
		t.Errorf("missing file: %v", err)
	}

	dir := t.TempDir()
	path := writeConfig(t, dir, "{\n  \"server\": {\n    \"port\": 80,\n  }\n}\n")
	_, err := LoadFile(path)
	if code(err) != "E121" {
		t.Fatalf("syntax error: %v", err)
	}
	var se *errors.SprigError
	stderrors.As(err, &se)
	if se.Location == nil || se.Location.Line != 4 {
		t.Errorf("Location = %+v, want line 4", se.Location)
	}

	writeConfig(t, dir, `{"server": {"port": "eighty"}}`)
	if _, err := Load(dir); code(err) != "E121" {
		t.Errorf("type error: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"server": {"port": 8080}}`)

	t.Setenv("SPRIG_PORT", "9090")
	t.Setenv("SPRIG_HOST", "0.0.0.0")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Address() != "0.0.0.0:9090" || cfg.URL() != "http://0.0.0.0:9090" {
		t.Errorf("Address = %s", cfg.Address())
	}

	t.Setenv("SPRIG_PORT", "abc")
	if _, err := Load(dir); code(err) != "E122" {
		t.Errorf("bad SPRIG_PORT: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "E122"},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, "E122"},
		{"relative export path", func(c *Config) { c.Export.Paths = []string{"about"} }, "E123"},
		{"parameter in export path", func(c *Config) { c.Export.Paths = []string{"/todos/:id"} }, "E123"},
		{"s3 without bucket", func(c *Config) { c.Publish.Target = TargetS3 }, "E124"},
		{"unknown target", func(c *Config) { c.Publish.Target = "ftp" }, "E125"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			if got := code(cfg.Validate()); got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("SPRIG_PORT", "")
	t.Setenv("SPRIG_HOST", "")
	dir := t.TempDir()
	cfg := New()
	if err := cfg.Save(); err == nil {
		t.Error("Save without a path should fail")
	}
	cfg.Name = "saved"
	cfg.Render.Pretty = true
	path := filepath.Join(dir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	if cfg.Path() != path || cfg.Dir() != dir {
		t.Errorf("Path = %s Dir = %s", cfg.Path(), cfg.Dir())
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, loaded, cmp.AllowUnexported(Config{})); diff != "" {
		t.Errorf("round trip (-saved +loaded):\n%s", diff)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{}`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot = %s, want %s", got, want)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists mismatch")
	}
}

func TestPosition(t *testing.T) {
	data := []byte("ab\ncd\nef")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{7, 3, 2},
		{100, 3, 3},
	}
	for _, tt := range tests {
		line, col := position(data, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}
