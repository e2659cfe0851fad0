package model

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-console/rules"
)

// DefaultStabilityThreshold is the number of consecutive matching steps that end a run
const DefaultStabilityThreshold = 10

// EndReason explains why an engine stopped
type EndReason string

const (
	EndNone   EndReason = ""
	EndStable EndReason = "stable"
	EndCycle  EndReason = "cycle"
)

// Engine advances a Grid one generation at a time and decides when the run
// has settled. It is not safe for concurrent use.
type Engine struct {
	grid *Grid

	generation               int
	aliveCount               int
	previousAliveCount       int
	stateChangeCount         int
	previousStateChangeCount int
	stabilityStreak          int
	ended                    bool
	endReason                EndReason

	stabilityDetection bool
	stabilityThreshold int
	cycleWindow        int
	history            []string

	logger *slog.Logger
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithStabilityDetection turns the population/churn heuristic on or off
func WithStabilityDetection(enabled bool) EngineOption {
	return func(e *Engine) { e.stabilityDetection = enabled }
}

// WithStabilityThreshold sets how many matching steps in a row end the run
func WithStabilityThreshold(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.stabilityThreshold = n
		}
	}
}

// WithCycleDetection ends the run when the grid repeats any of the last
// window generations exactly. Zero disables it.
func WithCycleDetection(window int) EngineOption {
	return func(e *Engine) { e.cycleWindow = max(0, window) }
}

// WithLogger sets the engine's logger
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine takes ownership of an already seeded grid
func NewEngine(grid *Grid, opts ...EngineOption) *Engine {
	if grid == nil {
		panic(errors.Wrap(ErrInvariantViolation, "[NewEngine] nil grid"))
	}
	grid.checkInvariants()

	e := &Engine{
		grid:               grid,
		stabilityDetection: true,
		stabilityThreshold: DefaultStabilityThreshold,
		endReason:          EndNone,
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rebaseline()
	return e
}

// rebaseline treats the seeded board as if it had survived unchanged from a
// prior generation, so a still life starts matching on its first step.
func (e *Engine) rebaseline() {
	e.aliveCount = e.grid.CountLivingCells()
	e.previousAliveCount = e.aliveCount
	e.stateChangeCount = e.aliveCount
	e.previousStateChangeCount = e.aliveCount
	e.stabilityStreak = 0
	e.history = e.history[:0]
	if e.cycleWindow > 0 {
		e.history = append(e.history, e.grid.GetGridHash())
	}
}

// Grid exposes the owned grid for read access
func (e *Engine) Grid() *Grid { return e.grid }

// IsEnded reports whether the run has settled
func (e *Engine) IsEnded() bool { return e.ended }

// EndReason reports which detector ended the run
func (e *Engine) EndReason() EndReason { return e.endReason }

// Generation returns the number of steps taken
func (e *Engine) Generation() int { return e.generation }

// AliveCount returns the population after the latest step
func (e *Engine) AliveCount() int { return e.aliveCount }

// StateChangeCount returns how many live cells survived the latest step
func (e *Engine) StateChangeCount() int { return e.stateChangeCount }

// StabilityStreak returns the current run of steps meeting the stability heuristic
func (e *Engine) StabilityStreak() int { return e.stabilityStreak }

// Place writes a preset into the grid and restarts stability tracking
func (e *Engine) Place(p Pattern, x, y int) error {
	if e.ended {
		return errors.Wrap(ErrInvariantViolation, "[Engine.Place] engine has ended")
	}
	if err := e.grid.Apply(p, x, y); err != nil {
		return errors.Wrap(err, "[Engine.Place]")
	}
	e.rebaseline()
	return nil
}

// Step advances one generation. It does nothing once the engine has ended.
func (e *Engine) Step() {
	if e.ended {
		return
	}

	g := e.grid
	g.Snapshot()

	alive, survivors := 0, 0
	for y := range g.height {
		row := y * g.width
		for x := range g.width {
			idx := row + x
			wasAlive := g.previous[idx] == cellAlive
			next := rules.ApplyConwayRules(g.CountNeighbors(Previous, x, y), wasAlive)
			g.current[idx] = toCell(next)
			if next {
				alive++
				if wasAlive {
					survivors++
				}
			}
		}
	}

	e.previousAliveCount = e.aliveCount
	e.previousStateChangeCount = e.stateChangeCount
	e.aliveCount = alive
	e.stateChangeCount = survivors
	e.generation++

	e.checkStability()
	e.checkCycle()
}

func (e *Engine) checkStability() {
	if !e.stabilityDetection {
		return
	}
	if e.aliveCount == e.previousAliveCount &&
		e.stateChangeCount == e.previousStateChangeCount &&
		e.stateChangeCount == e.aliveCount {
		e.stabilityStreak++
	} else {
		e.stabilityStreak = 0
	}
	if e.stabilityStreak >= e.stabilityThreshold {
		e.end(EndStable)
	}
}

func (e *Engine) checkCycle() {
	if e.cycleWindow == 0 || e.ended {
		return
	}
	hash := e.grid.GetGridHash()
	for _, h := range e.history {
		if h == hash {
			e.end(EndCycle)
			return
		}
	}
	e.history = append(e.history, hash)
	if len(e.history) > e.cycleWindow {
		e.history = e.history[1:]
	}
}

func (e *Engine) end(reason EndReason) {
	e.ended = true
	e.endReason = reason
	e.logger.Debug("simulation ended",
		"reason", reason,
		"generation", e.generation,
		"alive", e.aliveCount,
	)
}
