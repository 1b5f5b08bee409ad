package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tictactoe/agent"
	"tictactoe/config"
	"tictactoe/experiments"
	"tictactoe/experiments/metrics"
)

func experimentCommand(cfg *config.Config) *cobra.Command {
	var counts []int
	var games int

	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Compare greedy play against a random opponent after different training lengths",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := experiments.RunEpisodesExperiment(cmd.Context(), experiments.Config{
				EpisodeCounts: counts,
				Games:         games,
				Seed:          cfg.Seed,
				Options: []agent.Option{
					agent.WithAlpha(cfg.Alpha),
					agent.WithGamma(cfg.Gamma),
					agent.WithEpsilon(cfg.Epsilon),
				},
			})
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "episodes=%d games=%d win_rate=%.3f draws=%d losses=%d states=%d\n",
					r.TrainingEpisodes, r.Games, r.WinRate(), r.Draws, r.HumanWins, r.StatesLearned)
			}
			if cfg.RecordsDir == "" {
				return nil
			}
			w, err := metrics.NewWriter(cfg.RecordsDir, "evaluation")
			if err != nil {
				return err
			}
			if err := w.WriteEvaluationRecords(records); err != nil {
				return err
			}
			log.Info().Str("dir", w.Dir()).Msg("stored evaluation records")
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&counts, "counts", experiments.DefaultEpisodeCounts, "Training lengths to compare")
	cmd.Flags().IntVar(&games, "games", experiments.NumGames, "Evaluation games per training length")
	cmd.Flags().StringVar(&cfg.RecordsDir, "records", cfg.RecordsDir, "Directory for evaluation records (empty disables them)")
	return cmd
}
