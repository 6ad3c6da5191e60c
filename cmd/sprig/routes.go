package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sprig/internal/demo"
)

func routesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the application's pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(g.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATTERN\tTITLE\tEXPORTED")
			for _, r := range demo.Routes().All() {
				fmt.Fprintf(w, "%s\t%s\t%v\n", r.Pattern, r.Title, r.Static())
			}
			return w.Flush()
		},
	}
}
