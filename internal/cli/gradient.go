package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/happyhackingspace/lambdarank"
	"github.com/spf13/cobra"
)

func (c *CLI) newGradientCommand() *cobra.Command {
	var scoresPath string
	var sigma float64
	var truncation int
	var shiftedNDCG bool

	cmd := &cobra.Command{
		Use:   "gradient <dataset.json>",
		Short: "Compute LambdaRank gradients and weights for a dataset and score file",
		Args:  cobra.ExactArgs(1),
		Example: `  lambdarank gradient train.json --scores scores.json
  lambdarank gradient train.json --scores scores.json --sigma 2.0`,
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

			cfg := lambdarank.DefaultConfig()
			cfg.Sigma = sigma
			cfg.NDCGTruncation = truncation
			cfg.UseShiftedNDCG = shiftedNDCG

			obj, err := lambdarank.New(ds, cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			gradient, weights, err := obj.GetGradient(context.Background(), scores)
			if err != nil {
				return err
			}
			slog.Debug("Gradient computed", "duration", time.Since(start))

			out, err := json.MarshalIndent(map[string]any{
				"gradient": gradient,
				"weights":  weights,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("lambdarank: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&scoresPath, "scores", "scores.json", "Path to a JSON array of per-document scores")
	cmd.Flags().Float64Var(&sigma, "sigma", 1.0, "Sigmoid parameter (doubles as learning_rate)")
	cmd.Flags().IntVar(&truncation, "truncation", 10, "DCG@k truncation level")
	cmd.Flags().BoolVar(&shiftedNDCG, "shifted-ndcg", false, "Enable shifted-NDCG duplicate suppression")
	return cmd
}
