package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates the folder root/name/<current timestamp>.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// Dir is the directory records are written to.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeMetric) error {
	header := []string{"episode", "outcome", "agent_moves", "reward", "states_learned", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Episode),
			record.Outcome.String(),
			strconv.Itoa(record.AgentMoves),
			strconv.FormatFloat(record.Reward, 'f', -1, 64),
			strconv.Itoa(record.StatesLearned),
			record.Duration.String(),
		})
	}
	return w.write("episodes.csv", header, rows)
}

func (w *Writer) WriteSummary(m TrainingMetric) error {
	header := []string{"episodes", "agent_wins", "human_wins", "draws", "win_rate", "mean_reward", "stddev_reward", "states_learned", "duration"}
	row := []string{
		strconv.Itoa(m.Episodes),
		strconv.Itoa(m.AgentWins),
		strconv.Itoa(m.HumanWins),
		strconv.Itoa(m.Draws),
		strconv.FormatFloat(m.WinRate(), 'f', 4, 64),
		strconv.FormatFloat(m.MeanReward, 'f', 4, 64),
		strconv.FormatFloat(m.StdDevReward, 'f', 4, 64),
		strconv.Itoa(m.StatesLearned),
		m.Duration.String(),
	}
	return w.write("summary.csv", header, [][]string{row})
}

func (w *Writer) WriteEvaluationRecords(records []EvaluationRecord) error {
	header := []string{"training_episodes", "games", "agent_wins", "human_wins", "draws", "win_rate", "states_learned"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.TrainingEpisodes),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.AgentWins),
			strconv.Itoa(record.HumanWins),
			strconv.Itoa(record.Draws),
			strconv.FormatFloat(record.WinRate(), 'f', 4, 64),
			strconv.Itoa(record.StatesLearned),
		})
	}
	return w.write("evaluation.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
