package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sprig/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┬─┐┬┌─┐
  └─┐├─┘├┬┘││ ┬
  └─┘┴  ┴└─┴└─┘
`

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and reports a failure on stderr, as JSON
// when --json is set. It returns the exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	se := errors.FromError(err, "E144")
	if asJSON, _ := cmd.PersistentFlags().GetBool("json"); asJSON {
		fmt.Fprintln(stderr, se.FormatJSON())
	} else {
		errors.FprintError(stderr, se)
	}
	return 1
}

type globalFlags struct {
	config  string
	verbose bool
	json    bool
	out     io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	g := &globalFlags{out: out}
	rootCmd := &cobra.Command{
		Use:   "sprig",
		Short: "A declarative UI runtime for Go",
		Long: `sprig renders component trees to HTML on the server and keeps
them up to date in place.

  • Server-side rendering of full documents
  • Live sessions over WebSocket
  • Static export to a directory or an S3 bucket`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&g.config, "config", "c", "", "Path to sprig.json (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&g.json, "json", false, "Report errors as JSON on stderr")

	rootCmd.AddCommand(
		initCmd(g),
		serveCmd(g),
		exportCmd(g),
		routesCmd(g),
		versionCmd(g),
	)
	return rootCmd
}

// success prints a success message.
func (g *globalFlags) success(format string, args ...any) {
	fmt.Fprintf(g.out, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func (g *globalFlags) info(format string, args ...any) {
	fmt.Fprintf(g.out, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func (g *globalFlags) warn(format string, args ...any) {
	fmt.Fprintf(g.out, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
