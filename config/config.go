// Package config loads the gridnav command configuration from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// ErrInvalid indicates a configuration value that cannot be used.
var ErrInvalid = errors.New("config: invalid value")

// Environment variable names.
const (
	EnvLayout      = "GRIDNAV_LAYOUT"
	EnvScript      = "GRIDNAV_SCRIPT"
	EnvPollTimeout = "GRIDNAV_POLL_TIMEOUT"
	EnvScanDegrees = "GRIDNAV_SCAN_DEGREES"
	EnvFootprint   = "GRIDNAV_FOOTPRINT"
	EnvMaxScans    = "GRIDNAV_MAX_SCANS"
	EnvLogLevel    = "GRIDNAV_LOG_LEVEL"
	EnvLogDir      = "GRIDNAV_LOG_DIR"
	EnvMetricsAddr = "GRIDNAV_METRICS_ADDR"
)

// Config holds everything the command needs to set up a run.
type Config struct {
	LayoutPath  string        // grid layout (YAML or JSON)
	ScriptPath  string        // simulated sightings; empty means none
	PollTimeout time.Duration // bound on each observer poll
	ScanDegrees float64       // in-place turn while searching for the goal
	Footprint   float64       // default object half-extent, physical units
	MaxScans    int           // 0 = unbounded
	LogLevel    slog.Level    // minimum level of the text handler
	LogDir      string        // JSONL run logs; empty disables
	MetricsAddr string        // /metrics listen address; empty disables
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		PollTimeout: 5 * time.Second,
		ScanDegrees: 30,
		Footprint:   50,
		MaxScans:    12,
		LogLevel:    slog.LevelInfo,
	}
}

// Load reads envFile into the process environment (a missing file is not an
// error; variables already set win) and then builds a Config from the
// GRIDNAV_* variables. Every malformed value is reported.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config using lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	var err error

	if v, ok := lookup(EnvLayout); ok {
		c.LayoutPath = v
	}
	if v, ok := lookup(EnvScript); ok {
		c.ScriptPath = v
	}
	if v, ok := lookup(EnvLogDir); ok {
		c.LogDir = v
	}
	if v, ok := lookup(EnvMetricsAddr); ok {
		c.MetricsAddr = v
	}
	if v, ok := lookup(EnvPollTimeout); ok {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvPollTimeout, v, perr))
		}
		c.PollTimeout = d
	}
	if v, ok := lookup(EnvScanDegrees); ok {
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvScanDegrees, v, perr))
		}
		c.ScanDegrees = f
	}
	if v, ok := lookup(EnvFootprint); ok {
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvFootprint, v, perr))
		}
		c.Footprint = f
	}
	if v, ok := lookup(EnvMaxScans); ok {
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvMaxScans, v, perr))
		}
		c.MaxScans = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		if perr := c.LogLevel.UnmarshalText([]byte(strings.TrimSpace(v))); perr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvLogLevel, v, perr))
		}
	}
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate reports every unusable field at once.
func (c Config) Validate() error {
	var err error
	if c.LayoutPath == "" {
		err = multierr.Append(err, fmt.Errorf("%w: layout path is empty (set %s or pass it as an argument)", ErrInvalid, EnvLayout))
	}
	if c.PollTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: poll timeout %v must be positive", ErrInvalid, c.PollTimeout))
	}
	if c.ScanDegrees == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: scan angle must be non-zero", ErrInvalid))
	}
	if c.Footprint < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: footprint %v must be non-negative", ErrInvalid, c.Footprint))
	}
	if c.MaxScans < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: max scans %d must be non-negative", ErrInvalid, c.MaxScans))
	}
	return err
}
