package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd(g *globalFlags) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version, commit, and build information for the sprig CLI.`,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(g.out, version)
				return
			}

			fmt.Fprint(g.out, banner)
			fmt.Fprintln(g.out)
			fmt.Fprintf(g.out, "  Version:    %s\n", version)
			fmt.Fprintf(g.out, "  Commit:     %s\n", commit)
			fmt.Fprintf(g.out, "  Built:      %s\n", date)
			fmt.Fprintf(g.out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(g.out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintln(g.out)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	return cmd
}
