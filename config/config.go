package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"tictactoe/meta"
)

// Config holds the learning constants and runtime settings fixed at start.
type Config struct {
	Alpha      float64
	Gamma      float64
	Epsilon    float64
	Episodes   int
	Seed       uint64 // 0 picks a random seed
	Delay      time.Duration
	RecordsDir string // Empty disables training records
	LogLevel   string
}

func Default() Config {
	return Config{
		Alpha:      meta.ALPHA,
		Gamma:      meta.GAMMA,
		Epsilon:    meta.EPSILON,
		Episodes:   meta.EPISODES,
		Delay:      meta.AGENT_DELAY,
		RecordsDir: meta.RECORDS_DIR,
		LogLevel:   zerolog.InfoLevel.String(),
	}
}

// Load starts from the defaults, loads the given dotenv files (missing files
// are skipped) and applies TTT_* environment variables on top.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	c := Default()
	var errs []error
	parseFloat := func(name string, dst *float64) {
		if v, ok := lookup(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", meta.ENV_PREFIX, name, err))
				return
			}
			*dst = f
		}
	}
	parseFloat("ALPHA", &c.Alpha)
	parseFloat("GAMMA", &c.Gamma)
	parseFloat("EPSILON", &c.Epsilon)
	if v, ok := lookup("EPISODES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sEPISODES: %w", meta.ENV_PREFIX, err))
		}
		c.Episodes = n
	}
	if v, ok := lookup("SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", meta.ENV_PREFIX, err))
		}
		c.Seed = n
	}
	if v, ok := lookup("DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sDELAY: %w", meta.ENV_PREFIX, err))
		}
		c.Delay = d
	}
	if v, ok := lookup("RECORDS_DIR"); ok {
		c.RecordsDir = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return c, nil
}

func lookup(name string) (string, bool) {
	return os.LookupEnv(meta.ENV_PREFIX + name)
}

// Validate reports every setting that is out of range.
func (c Config) Validate() error {
	var errs []error
	if !(c.Alpha > 0) || math.IsInf(c.Alpha, 0) {
		errs = append(errs, fmt.Errorf("alpha must be positive, got %v", c.Alpha))
	}
	if !(c.Gamma >= 0 && c.Gamma <= 1) {
		errs = append(errs, fmt.Errorf("gamma must be in [0, 1], got %v", c.Gamma))
	}
	if !(c.Epsilon >= 0 && c.Epsilon <= 1) {
		errs = append(errs, fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon))
	}
	if c.Episodes < 0 {
		errs = append(errs, fmt.Errorf("episodes must not be negative, got %d", c.Episodes))
	}
	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative, got %s", c.Delay))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}
