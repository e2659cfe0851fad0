package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sheikhrachel/gol-console/model"
	"github.com/sheikhrachel/gol-console/utils"
)

// loadConfig reads the config file, if any, then applies flags the user set
func loadConfig(cmd *cobra.Command) (utils.Config, error) {
	flags := cmd.Flags()

	config := utils.DefaultConfig()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if config, err = utils.LoadConfig(path); err != nil {
			return config, err
		}
	}

	setInt := func(name string, dst *int) {
		if flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}
	setString := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}

	setInt("width", &config.Width)
	setInt("height", &config.Height)
	setInt("max-cells", &config.MaxCells)
	setString("seeding", &config.Seeding)
	setString("mode", &config.Mode)
	setString("render", &config.RenderMode)
	setString("log-level", &config.LogLevel)
	setInt("max-generations", &config.MaxGenerations)
	setInt("stability-threshold", &config.StabilityThreshold)
	setInt("cycle-window", &config.CycleWindow)
	setInt("max-restarts", &config.MaxRestarts)
	setBool("stability", &config.StabilityDetection)
	setBool("auto-restart", &config.AutoRestart)
	setBool("interactive", &config.Interactive)

	if flags.Changed("density") {
		config.Density, _ = flags.GetFloat64("density")
	}
	if flags.Changed("seed") {
		config.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("interval") {
		d, _ := flags.GetDuration("interval")
		config.Interval = utils.Duration(d)
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "[loadConfig]")
	}
	return config, nil
}

func newLogger(config utils.Config) (*slog.Logger, error) {
	logger, err := utils.NewLogger(os.Stderr, config.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "[newLogger]")
	}
	return logger, nil
}

// newRenderer falls back to plain output when stdout is not a terminal and
// warns when the board is wider than the terminal.
func newRenderer(cmd *cobra.Command, config utils.Config, logger *slog.Logger) (*model.TerminalRenderer, error) {
	mode, err := model.ParseRenderMode(config.RenderMode)
	if err != nil {
		return nil, errors.Wrap(err, "[newRenderer]")
	}

	out := cmd.OutOrStdout()
	file, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		if mode != model.RenderPlain {
			logger.Debug("output is not a terminal, rendering plain frames", "requested", mode)
		}
		return model.NewTerminalRenderer(out, model.RenderPlain), nil
	}

	if cols, rows, err := term.GetSize(int(file.Fd())); err == nil {
		if config.Width > cols || config.Height+2 > rows {
			logger.Warn("board is larger than the terminal",
				"board", []int{config.Width, config.Height},
				"terminal", []int{cols, rows},
			)
		}
		if config.Width*config.Height > 50*50 && time.Duration(config.Interval) < 50*time.Millisecond {
			logger.Info("large boards take longer to print than the requested interval")
		}
	}
	return model.NewTerminalRenderer(out, mode), nil
}
