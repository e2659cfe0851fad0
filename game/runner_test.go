package game

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/gol-console/model"
)

type recordingRenderer struct {
	generations []int
}

func (r *recordingRenderer) Render(f model.Frame) error {
	r.generations = append(r.generations, f.Generation())
	return nil
}

func newEngine(t *testing.T, pattern string, opts ...model.EngineOption) *model.Engine {
	t.Helper()
	g, err := model.NewGrid(8, 8)
	require.NoError(t, err)
	require.NoError(t, model.NewBoardBuilder(g).Pattern(pattern, 2, 2))
	return model.NewEngine(g, opts...)
}

func TestRunAutoEndsWhenStable(t *testing.T) {
	r := &recordingRenderer{}
	runner := NewRunner(newEngine(t, "block"), r, nil, 0, 0)

	res, err := runner.RunAuto(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Generations: 10, Alive: 4, Reason: ReasonStable}, res)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, r.generations)
	assert.Equal(t, 10, runner.Stats().TotalGenerations)
}

func TestRunAutoReportsCycle(t *testing.T) {
	runner := NewRunner(newEngine(t, "blinker", model.WithCycleDetection(2)), &recordingRenderer{}, nil, 0, 0)

	res, err := runner.RunAuto(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ReasonCycle, res.Reason)
	assert.Equal(t, 2, res.Generations)
}

func TestRunAutoMaxGenerations(t *testing.T) {
	runner := NewRunner(newEngine(t, "blinker"), &recordingRenderer{}, nil, 0, 5)

	res, err := runner.RunAuto(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ReasonMaxGenerations, res.Reason)
	assert.Equal(t, 5, res.Generations)
}

func TestRunAutoCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(newEngine(t, "blinker"), &recordingRenderer{}, nil, 0, 0)
	res, err := runner.RunAuto(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ReasonQuit, res.Reason)
}

func TestRunManual(t *testing.T) {
	triggers := make(chan struct{}, 3)
	for range 3 {
		triggers <- struct{}{}
	}
	close(triggers)

	r := &recordingRenderer{}
	runner := NewRunner(newEngine(t, "blinker"), r, nil, 0, 0)
	res, err := runner.RunManual(context.Background(), triggers)
	require.NoError(t, err)
	assert.Equal(t, Result{Generations: 3, Alive: 3, Reason: ReasonQuit}, res)
	assert.Equal(t, []int{0, 1, 2, 3}, r.generations)
}

func TestRunConsoleQuits(t *testing.T) {
	console := NewConsole(strings.NewReader("\n\n\nq\n\n\n"), io.Discard)
	runner := NewRunner(newEngine(t, "blinker"), &recordingRenderer{}, nil, 0, 0)

	res, err := runner.RunConsole(context.Background(), console)
	require.NoError(t, err)
	assert.Equal(t, ReasonQuit, res.Reason)
	assert.Equal(t, 3, res.Generations)
}

func TestRunConsoleStopsWhenStable(t *testing.T) {
	console := NewConsole(strings.NewReader(strings.Repeat("\n", 10)), io.Discard)
	runner := NewRunner(newEngine(t, "block", model.WithStabilityThreshold(2)), &recordingRenderer{}, nil, 0, 0)

	res, err := runner.RunConsole(context.Background(), console)
	require.NoError(t, err)
	assert.Equal(t, ReasonStable, res.Reason)
	assert.Equal(t, 2, res.Generations)
}

func TestRunConsoleEndOfInput(t *testing.T) {
	console := NewConsole(strings.NewReader("step\n"), io.Discard)
	runner := NewRunner(newEngine(t, "blinker"), &recordingRenderer{}, nil, 0, 0)

	res, err := runner.RunConsole(context.Background(), console)
	require.NoError(t, err)
	assert.Equal(t, ReasonQuit, res.Reason)
	assert.Equal(t, 1, res.Generations)
}

func TestRunConsoleKeepsUnusedInput(t *testing.T) {
	console := NewConsole(strings.NewReader("\n\nnext\n"), io.Discard)
	runner := NewRunner(newEngine(t, "block", model.WithStabilityThreshold(2)), &recordingRenderer{}, nil, 0, 0)

	res, err := runner.RunConsole(context.Background(), console)
	require.NoError(t, err)
	assert.Equal(t, ReasonStable, res.Reason)

	line, err := console.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "next", line)
}
