package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

const (
	SeedingRandom = "random"
	SeedingBuild  = "build"
	SeedingEmpty  = "empty"

	ModeAuto   = "auto"
	ModeManual = "manual"
)

// CellPlacement marks one cell alive
type CellPlacement struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// PatternPlacement puts a preset with its top-left corner at (X, Y)
type PatternPlacement struct {
	Name string `json:"name" yaml:"name"`
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
}

// Duration accepts either a Go duration string ("150ms") or a number of milliseconds
type Duration time.Duration

func (d *Duration) set(raw string) error {
	raw = strings.TrimSpace(raw)
	if v, err := time.ParseDuration(raw); err == nil {
		*d = Duration(v)
		return nil
	}
	var ms int64
	if err := json.Unmarshal([]byte(raw), &ms); err != nil {
		return errors.Errorf("duration %q is neither a duration nor milliseconds", raw)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(b []byte) error {
	return d.set(strings.Trim(string(b), `"`))
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.set(node.Value)
}

// Config holds the configuration for the game
type Config struct {
	Width    int `json:"width" yaml:"width"`
	Height   int `json:"height" yaml:"height"`
	MaxCells int `json:"max_cells" yaml:"max_cells"`

	Seeding  string             `json:"seeding" yaml:"seeding"`
	Density  float64            `json:"density" yaml:"density"`
	Seed     uint64             `json:"seed" yaml:"seed"`
	Cells    []CellPlacement    `json:"cells" yaml:"cells"`
	Patterns []PatternPlacement `json:"patterns" yaml:"patterns"`

	Mode           string   `json:"mode" yaml:"mode"`
	Interval       Duration `json:"interval" yaml:"interval"`
	MaxGenerations int      `json:"max_generations" yaml:"max_generations"`
	RenderMode     string   `json:"render_mode" yaml:"render_mode"`

	StabilityDetection bool `json:"stability_detection" yaml:"stability_detection"`
	StabilityThreshold int  `json:"stability_threshold" yaml:"stability_threshold"`
	CycleWindow        int  `json:"cycle_window" yaml:"cycle_window"`

	AutoRestart bool `json:"auto_restart" yaml:"auto_restart"`
	MaxRestarts int  `json:"max_restarts" yaml:"max_restarts"`
	Interactive bool `json:"interactive" yaml:"interactive"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:              40,
		Height:             20,
		MaxCells:           1000 * 1000,
		Seeding:            SeedingRandom,
		Density:            0.5,
		Mode:               ModeAuto,
		Interval:           Duration(150 * time.Millisecond),
		MaxGenerations:     0,
		RenderMode:         "clear",
		StabilityDetection: true,
		StabilityThreshold: 10,
		CycleWindow:        0,
		AutoRestart:        false,
		MaxRestarts:        0,
		Interactive:        false,
		LogLevel:           "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, picked by extension
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		err = json.Unmarshal(data, &config)
	default:
		err = yaml.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "board %dx%d must be positive", c.Width, c.Height)
	case c.MaxCells > 0 && c.Width > c.MaxCells/c.Height:
		return errors.Wrapf(ErrInvalidConfig, "board %dx%d exceeds %d cells", c.Width, c.Height, c.MaxCells)
	case c.Seeding != SeedingRandom && c.Seeding != SeedingBuild && c.Seeding != SeedingEmpty:
		return errors.Wrapf(ErrInvalidConfig, "seeding %q must be random, build or empty", c.Seeding)
	case c.Density < 0 || c.Density > 1:
		return errors.Wrapf(ErrInvalidConfig, "density %v must be within [0,1]", c.Density)
	case c.Mode != ModeAuto && c.Mode != ModeManual:
		return errors.Wrapf(ErrInvalidConfig, "mode %q must be auto or manual", c.Mode)
	case c.Interval < 0:
		return errors.Wrapf(ErrInvalidConfig, "interval %v must not be negative", time.Duration(c.Interval))
	case c.MaxGenerations < 0 || c.MaxRestarts < 0 || c.CycleWindow < 0:
		return errors.Wrap(ErrInvalidConfig, "max_generations, max_restarts and cycle_window must not be negative")
	case c.StabilityThreshold <= 0:
		return errors.Wrapf(ErrInvalidConfig, "stability_threshold %d must be positive", c.StabilityThreshold)
	}
	return nil
}
