package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newRelabelCmd() *cobra.Command {
	var typeID string
	cmd := &cobra.Command{
		Use:   "relabel",
		Short: "Recompute and store the labels of stored concepts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			l, closeFn, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			stats, err := l.Relabel(cmd.Context(), typeID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: %d concepts, %d written in %s\n", stats.RunID, stats.Concepts, stats.Written, stats.Duration)
			stages := make([]string, 0, len(stats.Stages))
			for s := range stats.Stages {
				stages = append(stages, s)
			}
			sort.Strings(stages)
			for _, s := range stages {
				fmt.Fprintf(out, "  %-10s %d\n", s, stats.Stages[s])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&typeID, "type", "", "only relabel concepts of this type")
	return cmd
}
