package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	export := &cobra.Command{
		Use:   "export",
		Short: "Export a loaded profile to JSON or SVG",
	}
	export.AddCommand(newExportJSONCmd())
	export.AddCommand(newExportSVGCmd())
	return export
}

func newExportJSONCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "json <file>",
		Short: "Export a profile capture to the stable JSON schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, h, err := loadFile(args[0])
			if err != nil {
				return err
			}
			data, err := f.ExportJSON(h)
			if err != nil {
				return fmt.Errorf("export json: %w", err)
			}
			return writeOutput(cmd, out, data)
		},
	}
	cmd.Flags().StringVar(&out, "out", "-", "output path, or - for stdout")
	return cmd
}

func newExportSVGCmd() *cobra.Command {
	var out string
	var width, height float64
	cmd := &cobra.Command{
		Use:   "svg <file>",
		Short: "Export a profile capture to a stand-alone SVG document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, h, err := loadFile(args[0])
			if err != nil {
				return err
			}
			svg, err := f.ExportSVG(h, width, height)
			if err != nil {
				return fmt.Errorf("export svg: %w", err)
			}
			return writeOutput(cmd, out, []byte(svg))
		},
	}
	cmd.Flags().StringVar(&out, "out", "-", "output path, or - for stdout")
	cmd.Flags().Float64Var(&width, "width", 1600, "document width in CSS pixels")
	cmd.Flags().Float64Var(&height, "height", 900, "document height in CSS pixels")
	return cmd
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
