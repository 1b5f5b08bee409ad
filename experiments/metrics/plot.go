package metrics

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"tictactoe/game"
)

// LearningCurve returns the running agent win rate and running mean reward
// after each episode.
func LearningCurve(records []EpisodeMetric) (winRate, meanReward plotter.XYs) {
	winRate = make(plotter.XYs, len(records))
	meanReward = make(plotter.XYs, len(records))
	wins, total := 0, 0.0
	for i, r := range records {
		if r.Outcome == game.WonAgent {
			wins++
		}
		total += r.Reward
		n := float64(i + 1)
		winRate[i].X, winRate[i].Y = n, float64(wins)/n
		meanReward[i].X, meanReward[i].Y = n, total/n
	}
	return winRate, meanReward
}

// PlotLearningCurve saves the learning curve as learning_curve.png.
func (w *Writer) PlotLearningCurve(records []EpisodeMetric) (string, error) {
	p := plot.New()
	p.Title.Text = "Self-play training"
	p.X.Label.Text = "episode"
	p.Y.Label.Text = "running average"
	p.Add(plotter.NewGrid())

	winRate, meanReward := LearningCurve(records)
	for i, series := range []struct {
		name string
		xys  plotter.XYs
		dash []vg.Length
	}{
		{"agent win rate", winRate, nil},
		{"mean reward", meanReward, []vg.Length{vg.Points(4), vg.Points(2)}},
	} {
		if len(series.xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(series.xys)
		if err != nil {
			return "", fmt.Errorf("failed to build %s line: %w", series.name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = series.dash
		p.Add(line)
		p.Legend.Add(series.name, line)
	}

	path := filepath.Join(w.baseDir, "learning_curve.png")
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save learning curve: %w", err)
	}
	return path, nil
}
