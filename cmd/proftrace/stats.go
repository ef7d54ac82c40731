package main

import (
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Print summary statistics for a profile capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, h, err := loadFile(args[0])
			if err != nil {
				return err
			}
			p := f.Session.Profile(h)

			var spanCount int
			for _, t := range p.Threads {
				spanCount += t.SpanCount
			}

			cmd.Printf("format:       %s\n", p.Format)
			cmd.Printf("threads:      %d\n", len(p.Threads))
			cmd.Printf("spans:        %d\n", spanCount)
			cmd.Printf("counters:     %d\n", len(p.Counters))
			cmd.Printf("markers:      %d\n", len(p.Markers))
			cmd.Printf("async spans:  %d\n", len(p.AsyncSpans))
			cmd.Printf("frames:       %d\n", len(p.Frames))
			cmd.Printf("duration_us:  %d\n", p.EndTimeUS-p.StartTimeUS)
			return nil
		},
	}
}
