package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-console/model"
	"github.com/sheikhrachel/gol-console/utils"
)

// Reason explains why a run stopped
type Reason string

const (
	ReasonStable         Reason = "stable"
	ReasonCycle          Reason = "cycle"
	ReasonMaxGenerations Reason = "max generations"
	ReasonQuit           Reason = "quit"
)

// Result summarizes a finished run
type Result struct {
	Generations int
	Alive       int
	Reason      Reason
}

// Runner drives an engine and renders after every step
type Runner struct {
	engine         *model.Engine
	renderer       model.Renderer
	logger         *slog.Logger
	interval       time.Duration
	maxGenerations int
	stats          *utils.Stats
}

// NewRunner wires an engine to a renderer. maxGenerations of zero means no limit.
func NewRunner(engine *model.Engine, renderer model.Renderer, logger *slog.Logger, interval time.Duration, maxGenerations int) *Runner {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Runner{
		engine:         engine,
		renderer:       renderer,
		logger:         logger,
		interval:       interval,
		maxGenerations: maxGenerations,
		stats:          utils.NewStats(),
	}
}

// Stats returns the run's performance counters
func (r *Runner) Stats() *utils.Stats { return r.stats }

func (r *Runner) done() (Reason, bool) {
	if r.engine.IsEnded() {
		if r.engine.EndReason() == model.EndCycle {
			return ReasonCycle, true
		}
		return ReasonStable, true
	}
	if r.maxGenerations > 0 && r.engine.Generation() >= r.maxGenerations {
		return ReasonMaxGenerations, true
	}
	return "", false
}

func (r *Runner) result(reason Reason) Result {
	res := Result{
		Generations: r.engine.Generation(),
		Alive:       r.engine.AliveCount(),
		Reason:      reason,
	}
	r.logger.Info("run finished",
		"reason", res.Reason,
		"generations", res.Generations,
		"alive", res.Alive,
		"avg_population", r.stats.AveragePopulation,
		"peak_population", r.stats.PeakPopulation,
		"gen_per_sec", r.stats.GenerationsPerSecond,
		"runtime", r.stats.Elapsed().Round(time.Millisecond),
	)
	return res
}

func (r *Runner) advance(start time.Time) error {
	if err := r.renderer.Render(r.engine); err != nil {
		return errors.Wrap(err, "[Runner] render")
	}
	r.stats.Update(r.engine.Generation(), r.engine.AliveCount(), time.Since(start))
	r.logger.Debug("generation",
		"generation", r.engine.Generation(),
		"alive", r.engine.AliveCount(),
		"survivors", r.engine.StateChangeCount(),
		"streak", r.engine.StabilityStreak(),
		"bounding_box", r.engine.Grid().GetBoundingBoxSize(),
	)
	return nil
}

// RunAuto steps, waits the interval, then renders, until the run ends or ctx is done
func (r *Runner) RunAuto(ctx context.Context) (Result, error) {
	if err := r.renderer.Render(r.engine); err != nil {
		return Result{}, errors.Wrap(err, "[Runner.RunAuto] render")
	}
	for {
		if reason, ok := r.done(); ok {
			return r.result(reason), nil
		}
		start := time.Now()
		r.engine.Step()
		if err := sleep(ctx, r.interval); err != nil {
			return r.result(ReasonQuit), err
		}
		if err := r.advance(start); err != nil {
			return Result{}, err
		}
	}
}

// RunManual steps once per trigger. A closed trigger channel means the user quit.
func (r *Runner) RunManual(ctx context.Context, triggers <-chan struct{}) (Result, error) {
	if err := r.renderer.Render(r.engine); err != nil {
		return Result{}, errors.Wrap(err, "[Runner.RunManual] render")
	}
	for {
		if reason, ok := r.done(); ok {
			return r.result(reason), nil
		}
		select {
		case <-ctx.Done():
			return r.result(ReasonQuit), ctx.Err()
		case _, ok := <-triggers:
			if !ok {
				return r.result(ReasonQuit), nil
			}
		}
		start := time.Now()
		r.engine.Step()
		if err := r.advance(start); err != nil {
			return Result{}, err
		}
	}
}

// RunConsole runs manual mode with one step per line read from the console
func (r *Runner) RunConsole(ctx context.Context, console *Console) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		res      Result
		triggers = make(chan struct{})
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		var err error
		res, err = r.RunManual(gctx, triggers)
		return err
	})
	g.Go(func() error {
		defer close(triggers)
		return console.forwardTriggers(gctx, triggers)
	})
	return res, g.Wait()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
