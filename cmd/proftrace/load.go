package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Load a profile capture and print its state snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := loadFile(args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(f.GetState(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal state: %w", err)
			}
			cmd.Println(string(out))
			return nil
		},
	}
}
