package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agenthands/knetlabel/internal/conceptfile"
	"github.com/agenthands/knetlabel/internal/core"
	"github.com/agenthands/knetlabel/internal/core/labels"
	"github.com/agenthands/knetlabel/internal/core/model"
	"github.com/agenthands/knetlabel/internal/logger"
)

func newLabelCmd() *cobra.Command {
	var (
		input            string
		filterAccessions bool
		maxLen           int
		asJSON           bool
	)
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Print the label of every concept in a file",
		Long:  "Resolves labels offline from a YAML or JSON concept file. No graph store is used.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			concepts, err := conceptfile.Load(input)
			if err != nil {
				return err
			}

			var opts []labels.Option
			if cmd.Flags().Changed("filter-accessions") {
				opts = append(opts, labels.WithAccessionFiltering(filterAccessions))
			}
			if cmd.Flags().Changed("max-len") {
				opts = append(opts, labels.WithMaxLen(maxLen))
			}

			l := core.NewLabeler(nil, cfg, logger.Nop())
			results, err := l.LabelAll(cmd.Context(), concepts, opts...)
			if err != nil {
				return err
			}
			return writeLabels(cmd.OutOrStdout(), results, asJSON)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "concept file (YAML or JSON)")
	cmd.Flags().BoolVar(&filterAccessions, "filter-accessions", false, "drop names that duplicate an accession")
	cmd.Flags().IntVar(&maxLen, "max-len", labels.DefaultMaxLen, "abbreviate labels longer than this, 0 disables")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func writeLabels(w io.Writer, results []model.ConceptLabel, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tSTAGE\tACCESSION")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ConceptID, r.Label, r.Stage, r.Accession)
	}
	return tw.Flush()
}
