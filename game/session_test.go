package game

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/gol-console/model"
	"github.com/sheikhrachel/gol-console/utils"
)

func testConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.Width, cfg.Height = 10, 8
	cfg.Interval = 0
	cfg.Seeding = utils.SeedingBuild
	return cfg
}

func runSession(t *testing.T, cfg utils.Config, input string) string {
	t.Helper()
	var out bytes.Buffer
	console := NewConsole(strings.NewReader(input), &out)
	s, err := NewSession(cfg, console, model.NewTerminalRenderer(&out, model.RenderPlain), nil)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func TestSessionAutoFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Patterns = []utils.PatternPlacement{{Name: "block", X: 1, Y: 1}}
	cfg.Cells = []utils.CellPlacement{{X: 6, Y: 5}, {X: 7, Y: 5}, {X: 6, Y: 6}, {X: 7, Y: 6}}

	out := runSession(t, cfg, "")
	assert.Contains(t, out, "Generation: 0 | Alive: 8")
	assert.Contains(t, out, "Generation: 10 | Alive: 8")
	assert.Contains(t, out, "Game lasted for: 10 generations (stable)")
}

func TestSessionAutoRestart(t *testing.T) {
	cfg := testConfig()
	cfg.Patterns = []utils.PatternPlacement{{Name: "tub", X: 3, Y: 3}}
	cfg.AutoRestart = true
	cfg.MaxRestarts = 2

	out := runSession(t, cfg, "")
	assert.Equal(t, 3, strings.Count(out, "Game lasted for: 10 generations"))
}

func TestSessionRandomMaxGenerations(t *testing.T) {
	cfg := testConfig()
	cfg.Seeding = utils.SeedingRandom
	cfg.Seed = 99
	cfg.MaxGenerations = 5

	out := runSession(t, cfg, "")
	assert.Contains(t, out, "Game lasted for: 5 generations (max generations)")
}

func TestSessionManual(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = utils.ModeManual
	cfg.Patterns = []utils.PatternPlacement{{Name: "blinker", X: 4, Y: 3}}

	out := runSession(t, cfg, "\n\nq\n")
	assert.Contains(t, out, "Generation: 2 | Alive: 3")
	assert.Contains(t, out, "Game lasted for: 2 generations (quit)")
}

func TestSessionInteractive(t *testing.T) {
	cfg := testConfig()
	cfg.Interactive = true

	input := strings.Join([]string{
		"abc",
		"12 8",
		"soup",
		"build",
		"auto",
		"0",
		"pattern block 2 2",
		"cell 40 40",
		"done",
		"maybe",
		"n",
	}, "\n") + "\n"

	out := runSession(t, cfg, input)
	assert.Contains(t, out, `"abc" is not a number`)
	assert.Contains(t, out, "please enter one of: random, build, empty")
	assert.Contains(t, out, "out of bounds")
	assert.Contains(t, out, "Game lasted for: 10 generations (stable)")
	assert.Equal(t, 2, strings.Count(out, "Restart? (y/n)"))
}

func TestSessionInteractiveManualRestartAnswer(t *testing.T) {
	input := strings.Join([]string{
		"10 8",
		"build",
		"manual",
		"pattern block 2 2",
		"done",
		"",
		"",
		"n",
	}, "\n") + "\n"

	for range 50 {
		cfg := testConfig()
		cfg.Interactive = true
		cfg.StabilityThreshold = 2

		out := runSession(t, cfg, input)
		require.Contains(t, out, "Game lasted for: 2 generations (stable)")
		require.Equal(t, 1, strings.Count(out, "Restart? (y/n)"))
	}
}

func TestSessionEndOfInputIsCleanStop(t *testing.T) {
	cfg := testConfig()
	cfg.Interactive = true

	for _, input := range []string{
		"",
		"12 8\nbuild\nauto\n0\npattern block 2 2\n",
		"12 8\nbuild\nauto\n0\ndone\n",
	} {
		console := NewConsole(strings.NewReader(input), io.Discard)
		s, err := NewSession(cfg, console, model.NewTerminalRenderer(io.Discard, model.RenderPlain), nil)
		require.NoError(t, err)
		assert.NoError(t, s.Run(context.Background()), input)
	}
}

func TestSessionBadPlacement(t *testing.T) {
	cfg := testConfig()
	cfg.Patterns = []utils.PatternPlacement{{Name: "glider", X: 9, Y: 0}}

	console := NewConsole(strings.NewReader(""), io.Discard)
	s, err := NewSession(cfg, console, model.NewTerminalRenderer(io.Discard, model.RenderPlain), nil)
	require.NoError(t, err)
	require.ErrorIs(t, s.Run(context.Background()), model.ErrOutOfBounds)
}

func TestSessionCanceled(t *testing.T) {
	cfg := testConfig()
	cfg.Seeding = utils.SeedingRandom
	cfg.Seed = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	console := NewConsole(strings.NewReader(""), io.Discard)
	s, err := NewSession(cfg, console, model.NewTerminalRenderer(io.Discard, model.RenderPlain), nil)
	require.NoError(t, err)
	assert.NoError(t, s.Run(ctx))
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = "turbo"
	_, err := NewSession(cfg, NewConsole(strings.NewReader(""), io.Discard), &recordingRenderer{}, nil)
	require.ErrorIs(t, err, utils.ErrInvalidConfig)
}
