package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tictactoe/agent"
	"tictactoe/config"
	"tictactoe/experiments/metrics"
	"tictactoe/player"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cfg, err := config.Load(".env")
	if err != nil {
		// Flags can still fix what the environment got wrong.
		fmt.Fprintln(os.Stderr, err)
		cfg = config.Default()
	}

	cmd := &cobra.Command{
		Use:           "tictactoe",
		Short:         "Tic-tac-toe against a tabular Q-learning agent",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			level, _ := zerolog.ParseLevel(cfg.LogLevel)
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "Learning rate")
	flags.Float64Var(&cfg.Gamma, "gamma", cfg.Gamma, "Discount factor")
	flags.Float64Var(&cfg.Epsilon, "epsilon", cfg.Epsilon, "Exploration probability (0 keeps the agent greedy)")
	flags.IntVar(&cfg.Episodes, "episodes", cfg.Episodes, "Number of self-play training episodes")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")

	cmd.AddCommand(trainCommand(&cfg), playCommand(&cfg), experimentCommand(&cfg))
	return cmd
}

func newLearner(cfg *config.Config) *agent.QLearning {
	options := []agent.Option{
		agent.WithAlpha(cfg.Alpha),
		agent.WithGamma(cfg.Gamma),
		agent.WithEpsilon(cfg.Epsilon),
	}
	if cfg.Seed != 0 {
		options = append(options, agent.WithSeed(cfg.Seed))
	}
	return agent.NewQLearning(options...)
}

// train runs self-play and, when recordsDir is set, stores the episode
// records, the summary and the learning curve.
func train(ctx context.Context, learner *agent.QLearning, episodes int, recordsDir string) (metrics.TrainingMetric, error) {
	collector := metrics.NewCollector()
	trainer := player.NewTrainer(learner, player.WithCollector(collector))
	summary, err := trainer.Run(ctx, episodes)
	if err != nil {
		return summary, err
	}
	if recordsDir == "" {
		return summary, nil
	}

	w, err := metrics.NewWriter(recordsDir, "training")
	if err != nil {
		return summary, err
	}
	if err := w.WriteEpisodeRecords(collector.Episodes()); err != nil {
		return summary, err
	}
	if err := w.WriteSummary(summary); err != nil {
		return summary, err
	}
	path, err := w.PlotLearningCurve(collector.Episodes())
	if err != nil {
		return summary, err
	}
	log.Info().Str("dir", w.Dir()).Str("plot", path).Msg("stored training records")
	return summary, nil
}
