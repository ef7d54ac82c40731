// Command proftrace is a headless driver for the facade package: it
// loads a profile capture, prints its state snapshot, or writes a JSON
// or SVG export. It is deliberately not the interactive viewer — no
// file chooser, no toolbars, no sidebars — just enough surface to
// exercise every façade command from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "proftrace",
		Short: "Headless driver for the proftrace profile-visualization façade",
	}
	root.AddCommand(newLoadCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newExportCmd())
	return root
}
