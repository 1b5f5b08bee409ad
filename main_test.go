package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestTrainCommand(t *testing.T) {
	dir := t.TempDir()
	out := execute(t, "", "train", "--episodes", "20", "--seed", "3", "--records", dir, "--log-level", "warn")
	require.Contains(t, out, "episodes=20")

	runs, err := filepath.Glob(filepath.Join(dir, "training", "*"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	for _, name := range []string{"episodes.csv", "summary.csv", "learning_curve.png"} {
		_, err := os.Stat(filepath.Join(runs[0], name))
		require.NoError(t, err, name)
	}
}

func TestPlayCommand(t *testing.T) {
	out := execute(t, "4\nx\nr\nq\n", "play", "--episodes", "5", "--seed", "3", "--delay", "0", "--log-level", "warn")
	require.Contains(t, out, "states learned")
	require.Contains(t, out, "The agent took cell")
	require.Contains(t, out, `not a cell: "x"`)
	require.Contains(t, out, "game: 2")
}

func TestRejectsInvalidFlags(t *testing.T) {
	cmd := rootCommand()
	cmd.SetArgs([]string{"train", "--gamma", "2", "--records", ""})
	cmd.SetOut(&bytes.Buffer{})
	require.ErrorContains(t, cmd.ExecuteContext(context.Background()), "gamma")
}

func TestExperimentCommand(t *testing.T) {
	dir := t.TempDir()
	out := execute(t, "", "experiment", "--counts", "0,20", "--games", "10", "--seed", "5", "--records", dir, "--log-level", "warn")
	require.Contains(t, out, "episodes=0 games=10")
	require.Contains(t, out, "episodes=20 games=10")

	files, err := filepath.Glob(filepath.Join(dir, "evaluation", "*", "evaluation.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)
}
