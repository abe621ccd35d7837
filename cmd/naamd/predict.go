package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"naamd/pkg/naam"
	"naamd/pkg/types"
)

func newPredictCmd() *cobra.Command {
	var (
		input    string
		lang     string
		latest   bool
		modelDir string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict religion for a single name and print the result table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return usageError{err: errors.New(`required flag "input" not set`)}
			}
			log := newLogger(logLevel)
			cache := newCache(modelDir, "", 0, 0, log)
			preds, err := cache.Predict(cmd.Context(), naam.Single(input), types.Lang(lang), latest)
			if err != nil {
				return err
			}
			printTable(cmd.OutOrStdout(), preds)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Name to analyze (single name as string)")
	cmd.Flags().StringVar(&lang, "lang", string(types.LangEnglish), "Language of input name (eng or hin)")
	cmd.Flags().BoolVar(&latest, "latest", false, "Download latest model version")
	cmd.Flags().StringVar(&modelDir, "model-dir", defaultModelDir(), "Directory holding downloaded model bundles")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	return cmd
}

// printTable renders the three result columns without an index column.
func printTable(out io.Writer, preds []types.Prediction) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "name\tpred_label\tpred_prob_muslim")
	for _, p := range preds {
		fmt.Fprintf(w, "%s\t%s\t%.1f\n", p.Name, p.PredLabel, p.PredProbMuslim)
	}
	w.Flush()
}
