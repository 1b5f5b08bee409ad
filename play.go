package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tictactoe/config"
	"tictactoe/engine"
	"tictactoe/game"
)

func playCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Train, then play against the agent in the terminal",
		Long: "Enter a cell 0-8 (row by row) to move, 'r' to restart or 'q' to quit.\n" +
			"The agent keeps learning from every game.",
		RunE: func(cmd *cobra.Command, args []string) error {
			learner := newLearner(cfg)
			if _, err := train(cmd.Context(), learner, cfg.Episodes, ""); err != nil {
				return err
			}
			s := engine.NewSession(learner, engine.WithDelay(cfg.Delay))
			return repl(cmd, s)
		},
	}
	cmd.Flags().DurationVar(&cfg.Delay, "delay", cfg.Delay, "Pause before the agent replies")
	return cmd
}

func repl(cmd *cobra.Command, s *engine.Session) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	render(out, s, "Your turn - you are X")

	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			continue
		case "q", "quit":
			return nil
		case "r", "restart":
			s.Reset()
			render(out, s, "Your turn - you are X")
			continue
		}

		cell, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(out, "not a cell: %q\n", line)
			continue
		}
		turn, err := s.PlayHuman(cmd.Context(), cell)
		switch {
		case errors.Is(err, game.ErrIllegalMove):
			fmt.Fprintf(out, "cell %d is not available\n", cell)
			continue
		case errors.Is(err, engine.ErrGameOver):
			fmt.Fprintln(out, "game is over - 'r' to restart")
			continue
		case err != nil:
			return err
		}
		render(out, s, status(turn))
	}
	return in.Err()
}

func status(turn engine.Turn) string {
	switch turn.Outcome {
	case game.WonHuman:
		return "You won! - 'r' to restart"
	case game.WonAgent:
		return fmt.Sprintf("The agent took cell %d and won - 'r' to restart", turn.Agent)
	case game.Drawn:
		return "Draw - 'r' to restart"
	}
	return fmt.Sprintf("The agent took cell %d - your turn", turn.Agent)
}

// render prints the board next to the agent's scores for the current position.
func render(out io.Writer, s *engine.Session, msg string) {
	rows := strings.Split(s.Board().String(), "\n")
	scores := s.Scores()
	fmt.Fprintln(out)
	for r, row := range rows {
		fmt.Fprintf(out, "  %s    ", row)
		for c := 0; c < 3; c++ {
			fmt.Fprintf(out, " %d:%+.4f", r*3+c, scores[r*3+c])
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "states learned: %d  game: %d\n%s\n", s.StatesLearned(), s.Games(), msg)
}
