package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
)

const (
	gridPosAlive = "#"
	gridPosDead  = "."

	aliveColor = "10"
)

// RenderMode selects how frames replace each other on screen
type RenderMode string

const (
	// RenderClear wipes the screen before every frame
	RenderClear RenderMode = "clear"
	// RenderCursor homes the cursor and draws over the last frame, clearing
	// only on the first frame or when the board size changes
	RenderCursor RenderMode = "cursor"
	// RenderPlain appends frames one after another
	RenderPlain RenderMode = "plain"
)

// ParseRenderMode validates a render mode name
func ParseRenderMode(s string) (RenderMode, error) {
	switch m := RenderMode(strings.ToLower(s)); m {
	case RenderClear, RenderCursor, RenderPlain:
		return m, nil
	}
	return "", errors.Errorf("[ParseRenderMode] unknown render mode %q", s)
}

// Frame is what a renderer reads: a grid plus the counters shown above it
type Frame interface {
	Grid() *Grid
	Generation() int
	AliveCount() int
}

// Renderer draws one frame
type Renderer interface {
	Render(f Frame) error
}

// TerminalRenderer implements text rendering on a terminal
type TerminalRenderer struct {
	out   *termenv.Output
	mode  RenderMode
	alive string
	dead  string

	// size of the last frame drawn in cursor mode
	lastWidth, lastHeight int
}

// NewTerminalRenderer renders to w; alive cells are colored when w supports it
func NewTerminalRenderer(w io.Writer, mode RenderMode) *TerminalRenderer {
	out := termenv.NewOutput(w)
	return &TerminalRenderer{
		out:   out,
		mode:  mode,
		alive: out.String(gridPosAlive).Foreground(out.Color(aliveColor)).String(),
		dead:  gridPosDead,
	}
}

// Render draws the generation header and the grid, row-major
func (r *TerminalRenderer) Render(f Frame) error {
	g := f.Grid()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generation: %d | Alive: %d\n\n", f.Generation(), f.AliveCount())
	for y := range g.GetHeight() {
		for x := range g.GetWidth() {
			alive, err := g.Get(x, y)
			if err != nil {
				return errors.Wrap(err, "[TerminalRenderer.Render]")
			}
			if alive {
				sb.WriteString(r.alive)
			} else {
				sb.WriteString(r.dead)
			}
		}
		sb.WriteByte('\n')
	}

	switch r.mode {
	case RenderClear:
		r.out.ClearScreen()
	case RenderCursor:
		if g.GetWidth() != r.lastWidth || g.GetHeight() != r.lastHeight {
			r.out.ClearScreen()
			r.lastWidth, r.lastHeight = g.GetWidth(), g.GetHeight()
		} else {
			r.out.MoveCursor(1, 1)
		}
	}
	if _, err := io.WriteString(r.out, sb.String()); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Render] write frame")
	}
	return nil
}

// RenderCatalog writes every preset with its menu number, grouped by category
func RenderCatalog(w io.Writer) error {
	var (
		sb   strings.Builder
		last Category
	)
	for i, p := range Patterns {
		if p.Category != last {
			fmt.Fprintf(&sb, "%s\n", strings.ToUpper(string(p.Category)))
			last = p.Category
		}
		fmt.Fprintf(&sb, "  %2d %s (%dx%d)\n", i+1, p.Name, p.Width, p.Height)
		for _, row := range p.Rows() {
			fmt.Fprintf(&sb, "     %s\n", row)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "[RenderCatalog]")
}
