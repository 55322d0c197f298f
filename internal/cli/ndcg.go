package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/happyhackingspace/lambdarank"
	"github.com/happyhackingspace/lambdarank/rank"
	"github.com/spf13/cobra"
)

func (c *CLI) newNdcgCommand() *cobra.Command {
	var scoresPath string
	var ksFlag string
	var truncation int

	cmd := &cobra.Command{
		Use:   "ndcg <dataset.json>",
		Short: "Evaluate mean NDCG@k for a dataset and score file",
		Args:  cobra.ExactArgs(1),
		Example: `  lambdarank ndcg valid.json --scores scores.json --ks 1,3,10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsPath := args[0]
			slog.Info("Loading dataset", "path", dsPath)
			ds, err := lambdarank.LoadDataset(dsPath)
			if err != nil {
				return err
			}
			scores, err := lambdarank.LoadScores(scoresPath)
			if err != nil {
				return err
			}

			ks, err := parseKs(ksFlag)
			if err != nil {
				return fmt.Errorf("lambdarank: %w", err)
			}

			gain := rank.DefaultGainTable(maxLabel(ds) + 1)
			dcg, err := rank.NewDCGTables(ds, gain, truncation, nil, false)
			if err != nil {
				return fmt.Errorf("lambdarank: %w", err)
			}

			test := rank.NewNdcgTest(ds, dcg, ks)

			start := time.Now()
			results := test.Compute(scores)
			slog.Debug("NDCG computed", "duration", time.Since(start))

			out := make(map[string]float64, len(results))
			for _, r := range results {
				out[r.Name] = r.Value
			}
			encoded, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("lambdarank: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVar(&scoresPath, "scores", "scores.json", "Path to a JSON array of per-document scores")
	cmd.Flags().StringVar(&ksFlag, "ks", "1,3,5,10", "Comma-separated list of NDCG truncation levels to report")
	cmd.Flags().IntVar(&truncation, "truncation", 10, "DCG@k truncation level used to build the ideal-DCG tables")
	return cmd
}

func parseKs(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ks := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		k, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid --ks value %q: %w", p, err)
		}
		ks = append(ks, k)
	}
	return ks, nil
}

func maxLabel(ds *rank.Dataset) int {
	max := 0
	for _, l := range ds.Labels {
		if l > max {
			max = l
		}
	}
	return max
}
