package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sheikhrachel/gol-console/game"
	"github.com/sheikhrachel/gol-console/model"
)

var rootCmd = &cobra.Command{
	Use:   "gol",
	Short: "Conway's Game of Life in the terminal",
	Long: `Runs Conway's Game of Life on a fixed, non-wrapping board. Boards start
random, empty, or built from cells and preset patterns, and advance either on
a timer (auto) or one generation per Enter (manual) until they settle.`,
	SilenceUsage: true,
	RunE:         runGame,
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the preset patterns and their menu numbers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return model.RenderCatalog(cmd.OutOrStdout())
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringP("config", "c", "", "JSON or YAML config file")
	f.Int("width", 0, "board width")
	f.Int("height", 0, "board height")
	f.Int("max-cells", 0, "largest allowed width*height")
	f.String("seeding", "", "initial board: random, build or empty")
	f.Float64("density", 0, "chance of a cell starting alive when seeding is random")
	f.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	f.StringP("mode", "m", "", "update mode: auto or manual")
	f.Duration("interval", 0, "delay between generations in auto mode")
	f.Int("max-generations", 0, "stop after this many generations (0 = no limit)")
	f.String("render", "", "render mode: clear, cursor or plain")
	f.Bool("stability", true, "end the run when population and survivors repeat")
	f.Int("stability-threshold", 0, "matching generations in a row that end the run")
	f.Int("cycle-window", 0, "also end the run when the board repeats within this many generations")
	f.Bool("auto-restart", false, "start a new board when a run ends")
	f.Int("max-restarts", 0, "restart limit with --auto-restart (0 = no limit)")
	f.BoolP("interactive", "i", false, "prompt for settings, placements and restarts")
	f.String("log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(patternsCmd)
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	renderer, err := newRenderer(cmd, cfg, logger)
	if err != nil {
		return err
	}

	console := game.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	session, err := game.NewSession(cfg, console, renderer, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return session.Run(ctx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
