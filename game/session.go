package game

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-console/model"
	"github.com/sheikhrachel/gol-console/utils"
)

// Session plays one or more games with the same settings, restarting on
// request, and recycles grids between rounds.
type Session struct {
	cfg      utils.Config
	console  *Console
	renderer model.Renderer
	pool     *model.GridPool
	logger   *slog.Logger
}

// NewSession validates cfg and prepares a grid pool sized for it
func NewSession(cfg utils.Config, console *Console, renderer model.Renderer, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "[NewSession]")
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Session{
		cfg:      cfg,
		console:  console,
		renderer: renderer,
		pool:     model.NewGridPool(cfg.MaxCells),
		logger:   logger,
	}, nil
}

// Run plays until the user declines a restart, restarts run out, or ctx is done.
// Cancellation and closed input are clean stops, not errors.
func (s *Session) Run(ctx context.Context) error {
	if s.cfg.Interactive {
		cfg, err := PromptConfig(ctx, s.console, s.cfg)
		if err != nil {
			return s.stopped(err)
		}
		s.cfg = cfg
	}

	for round := 0; ; round++ {
		res, err := s.play(ctx, round)
		if err != nil {
			return s.stopped(err)
		}
		s.console.Printf("Game lasted for: %d generations (%s)\n", res.Generations, res.Reason)
		if res.Reason == ReasonQuit {
			return nil
		}

		again, err := s.restart(ctx, round)
		if err != nil {
			return s.stopped(err)
		}
		if !again {
			return nil
		}
		s.logger.Info("restarting", "round", round+1)
	}
}

func (s *Session) stopped(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		s.logger.Info("shutting down")
		return nil
	case errors.Is(err, io.EOF):
		s.logger.Info("input closed, shutting down")
		return nil
	}
	return err
}

func (s *Session) restart(ctx context.Context, round int) (bool, error) {
	if s.cfg.AutoRestart {
		return s.cfg.MaxRestarts == 0 || round < s.cfg.MaxRestarts, nil
	}
	if s.cfg.Interactive {
		return PromptRestart(ctx, s.console)
	}
	return false, nil
}

func (s *Session) play(ctx context.Context, round int) (Result, error) {
	grid, err := s.pool.Get(s.cfg.Width, s.cfg.Height)
	if err != nil {
		return Result{}, errors.Wrap(err, "[Session.play]")
	}
	defer model.GridToPool(grid, s.pool)

	if err := s.seed(ctx, model.NewBoardBuilder(grid), round); err != nil {
		return Result{}, errors.Wrap(err, "[Session.play] seed board")
	}

	engine := model.NewEngine(grid,
		model.WithStabilityDetection(s.cfg.StabilityDetection),
		model.WithStabilityThreshold(s.cfg.StabilityThreshold),
		model.WithCycleDetection(s.cfg.CycleWindow),
		model.WithLogger(s.logger),
	)
	s.logger.Info("starting run",
		"round", round,
		"width", grid.GetWidth(),
		"height", grid.GetHeight(),
		"mode", s.cfg.Mode,
		"alive", engine.AliveCount(),
	)

	runner := NewRunner(engine, s.renderer, s.logger, time.Duration(s.cfg.Interval), s.cfg.MaxGenerations)
	if s.cfg.Mode == utils.ModeManual {
		return runner.RunConsole(ctx, s.console)
	}
	return runner.RunAuto(ctx)
}

func (s *Session) seed(ctx context.Context, b *model.BoardBuilder, round int) error {
	switch s.cfg.Seeding {
	case utils.SeedingRandom:
		seed := s.cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return b.Random(model.NewRNG(seed+uint64(round)), s.cfg.Density)
	case utils.SeedingBuild:
		for _, c := range s.cfg.Cells {
			if err := b.Cell(c.X, c.Y); err != nil {
				return err
			}
		}
		for _, p := range s.cfg.Patterns {
			if err := b.Pattern(p.Name, p.X, p.Y); err != nil {
				return err
			}
		}
		if s.cfg.Interactive {
			return PromptBoard(ctx, s.console, b, s.renderer)
		}
	}
	return nil
}
