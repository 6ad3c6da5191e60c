package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/sprig/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "sprig.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default export directory.
	DefaultOutput = "dist"

	// Publish targets.
	TargetDir = "dir"
	TargetS3  = "s3"
)

// Config represents the complete sprig.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	Server  ServerConfig  `json:"server"`
	Render  RenderConfig  `json:"render"`
	Page    PageConfig    `json:"page"`
	Export  ExportConfig  `json:"export"`
	Publish PublishConfig `json:"publish"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// Static is the directory served under /static/.
	Static string `json:"static,omitempty"`

	// Live is the live session endpoint; "-" disables it.
	Live string `json:"live,omitempty"`

	// Metrics is the Prometheus endpoint; "-" disables it.
	Metrics string `json:"metrics,omitempty"`
}

// RenderConfig controls document output.
type RenderConfig struct {
	Pretty bool   `json:"pretty,omitempty"`
	Indent string `json:"indent,omitempty"`
}

// PageConfig contains settings applied to every page.
type PageConfig struct {
	Lang   string   `json:"lang,omitempty"`
	Styles []string `json:"styles,omitempty"`
}

// ExportConfig contains static export settings.
type ExportConfig struct {
	Output string `json:"output,omitempty"`

	// Paths lists extra paths to export besides the parameterless routes.
	Paths []string `json:"paths,omitempty"`

	// NotFound is the file name for the not-found page, e.g. "404.html".
	NotFound string `json:"notFound,omitempty"`
}

// PublishConfig selects where exports go.
type PublishConfig struct {
	// Target is "dir" (default) or "s3".
	Target       string `json:"target,omitempty"`
	Bucket       string `json:"bucket,omitempty"`
	Prefix       string `json:"prefix,omitempty"`
	Region       string `json:"region,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"`
	PathStyle    bool   `json:"pathStyle,omitempty"`
	CacheControl string `json:"cacheControl,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory.
// It looks for sprig.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path and applies
// environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E120").
				WithDetail("No sprig.json found in " + filepath.Dir(path))
		}
		return nil, errors.New("E121").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		se := errors.New("E121").Wrap(err)
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case stderrors.As(err, &syntaxErr):
			line, col := position(data, syntaxErr.Offset)
			se.WithLocation(path, line, col)
		case stderrors.As(err, &typeErr):
			line, col := position(data, typeErr.Offset)
			se.WithLocation(path, line, col)
		}
		return nil, se
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}

// ApplyEnv applies SPRIG_HOST and SPRIG_PORT.
func (c *Config) ApplyEnv() error {
	if host := os.Getenv("SPRIG_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SPRIG_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return errors.New("E122").
				WithDetail("SPRIG_PORT is not a number: " + port)
		}
		c.Server.Port = n
	}
	return nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E121").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E121").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Live == "" {
		c.Server.Live = "/_sprig/live"
	}
	if c.Server.Metrics == "" {
		c.Server.Metrics = "/metrics"
	}
	if c.Page.Lang == "" {
		c.Page.Lang = "en"
	}
	if c.Export.Output == "" {
		c.Export.Output = DefaultOutput
	}
	if c.Publish.Target == "" {
		c.Publish.Target = TargetDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 1 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	for _, p := range c.Export.Paths {
		if !strings.HasPrefix(p, "/") || strings.ContainsAny(p, ":*?#") {
			return errors.New("E123").WithDetail("Invalid export path " + strconv.Quote(p))
		}
	}
	switch c.Publish.Target {
	case TargetDir:
	case TargetS3:
		if c.Publish.Bucket == "" || c.Publish.Region == "" {
			return errors.New("E124")
		}
	default:
		return errors.New("E125").
			WithDetail(`publish.target must be "dir" or "s3", got ` + strconv.Quote(c.Publish.Target))
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// LivePath returns the live endpoint, or "" when disabled.
func (c *Config) LivePath() string {
	if c.Server.Live == "-" {
		return ""
	}
	return c.Server.Live
}

// MetricsPath returns the metrics endpoint, or "" when disabled.
func (c *Config) MetricsPath() string {
	if c.Server.Metrics == "-" {
		return ""
	}
	return c.Server.Metrics
}

// resolve makes path relative to the config directory.
func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// OutputPath returns the path of the export directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Export.Output)
}

// StaticPath returns the path of the static directory, or "" when unset.
func (c *Config) StaticPath() string {
	return c.resolve(c.Server.Static)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing sprig.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E120").
				WithDetail("No sprig.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
