package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sprig/internal/config"
	"github.com/vango-dev/sprig/internal/demo"
	"github.com/vango-dev/sprig/internal/errors"
	"github.com/vango-dev/sprig/pkg/publish"
)

func exportCmd(g *globalFlags) *cobra.Command {
	var (
		out    string
		target string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render every static page to files",
		Long: `Render every page without parameters, plus the paths listed in
sprig.json, and publish the documents.

The "dir" target writes a tree like dist/about/index.html; the "s3"
target uploads the same keys to the configured bucket.

Examples:
  sprig export
  sprig export --out=public_html
  sprig export --target=s3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if out != "" {
				cfg.Export.Output = out
			}
			if target != "" {
				cfg.Publish.Target = target
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			pub := publisher(cfg)
			paths := append(publish.StaticPaths(demo.Routes()), cfg.Export.Paths...)
			var opts []publish.ExportOption
			if cfg.Export.NotFound != "" {
				opts = append(opts, publish.WithNotFound(cfg.Export.NotFound))
			}

			report, err := publish.Export(cmd.Context(), newSite(cfg), paths, pub, opts...)
			for _, key := range report.Published {
				g.success("%s", key)
			}
			if err != nil {
				return exportError(g, report)
			}
			g.info("Exported %d pages", len(report.Published))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory for the dir target (default from sprig.json)")
	cmd.Flags().StringVarP(&target, "target", "t", "", `Publish target: "dir" or "s3"`)
	return cmd
}

func publisher(cfg *config.Config) publish.Publisher {
	if cfg.Publish.Target == config.TargetS3 {
		client := publish.NewS3Client(publish.S3Config{
			Region:    cfg.Publish.Region,
			Endpoint:  cfg.Publish.Endpoint,
			PathStyle: cfg.Publish.PathStyle,
		})
		pub := publish.NewS3Publisher(client, cfg.Publish.Bucket, cfg.Publish.Prefix)
		if cfg.Publish.CacheControl != "" {
			pub.WithCacheControl(cfg.Publish.CacheControl)
		}
		return pub
	}
	return publish.DirPublisher{Dir: cfg.OutputPath()}
}

// exportError reports every failed path and returns the error for the
// command: the single failure's own code, or E142 when several failed.
func exportError(g *globalFlags, report publish.Report) error {
	paths := make([]string, 0, len(report.Failed))
	for p := range report.Failed {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var last *errors.SprigError
	for _, p := range paths {
		last = errors.FromError(report.Failed[p], "E142")
		g.warn("%s: %s", p, last.FormatCompact())
	}
	if len(paths) == 1 {
		return last
	}
	return errors.New("E142").WithDetail(fmt.Sprintf("%d pages failed.", len(paths)))
}
