package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sprig/internal/config"
	"github.com/vango-dev/sprig/internal/errors"
)

func initCmd(g *globalFlags) *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default sprig.json",
		Long: `Write a sprig.json with the default settings into dir, or the
current directory.

Examples:
  sprig init
  sprig init site --name=docs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			dir, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if config.Exists(dir) && !force {
				return errors.New("E143").WithDetail("Found " + filepath.Join(dir, config.ConfigFileName))
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.New("E121").Wrap(err)
			}

			cfg := config.New()
			cfg.Name = name
			if cfg.Name == "" {
				cfg.Name = filepath.Base(dir)
			}
			path := filepath.Join(dir, config.ConfigFileName)
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			g.success("Created %s", path)
			g.info("Run 'sprig serve' to start the server")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (default: directory name)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing sprig.json")
	return cmd
}
