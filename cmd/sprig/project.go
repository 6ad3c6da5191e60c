package main

import (
	stderrors "errors"
	"os"

	"github.com/vango-dev/sprig/internal/config"
	"github.com/vango-dev/sprig/internal/demo"
	"github.com/vango-dev/sprig/internal/errors"
	"github.com/vango-dev/sprig/pkg/site"
)

// loadConfig loads the configuration named by --config, or the nearest
// sprig.json. Without one the defaults are used.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.config != "" {
		cfg, err = config.LoadFile(g.config)
	} else {
		var wd, root string
		wd, err = os.Getwd()
		if err == nil {
			root, err = config.FindProjectRoot(wd)
		}
		if err == nil {
			cfg, err = config.Load(root)
		}
		var se *errors.SprigError
		if stderrors.As(err, &se) && se.Code == "E120" {
			g.warn("No %s found, using defaults", config.ConfigFileName)
			cfg = config.New()
			err = cfg.ApplyEnv()
		}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSite builds the demo site from cfg.
func newSite(cfg *config.Config) *site.Server {
	sc := site.DefaultConfig()
	sc.Address = cfg.Address()
	sc.Lang = cfg.Page.Lang
	sc.Render.Pretty = cfg.Render.Pretty
	sc.Render.Indent = cfg.Render.Indent
	sc.Styles = append([]string{demo.Styles}, cfg.Page.Styles...)
	sc.StaticDir = cfg.StaticPath()
	sc.LivePath = cfg.LivePath()
	sc.MetricsPath = cfg.MetricsPath()
	return site.New(demo.Routes(), sc)
}
