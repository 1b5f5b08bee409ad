package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tictactoe/config"
)

func trainCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Run self-play training and store the records",
		RunE: func(cmd *cobra.Command, args []string) error {
			learner := newLearner(cfg)
			summary, err := train(cmd.Context(), learner, cfg.Episodes, cfg.RecordsDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"episodes=%d agent_wins=%d human_wins=%d draws=%d win_rate=%.3f states=%d\n",
				summary.Episodes, summary.AgentWins, summary.HumanWins, summary.Draws,
				summary.WinRate(), learner.Size())
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.RecordsDir, "records", cfg.RecordsDir, "Directory for training records (empty disables them)")
	return cmd
}
