package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/knetlabel/internal/conceptfile"
)

func newImportCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store the concepts of a file in Memgraph",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			concepts, err := conceptfile.Load(input)
			if err != nil {
				return err
			}

			l, closeFn, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := l.BuildIndices(cmd.Context()); err != nil {
				l.Log.Warn("failed to build indices", "error", err)
			}
			for _, c := range concepts {
				if err := l.SaveConcept(cmd.Context(), c); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d concepts\n", len(concepts))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "concept file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
