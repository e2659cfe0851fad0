package model

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Category groups presets the way the pattern menu lists them
type Category string

const (
	CategoryStill      Category = "still"
	CategoryOscillator Category = "oscillator"
	CategoryMethuselah Category = "methuselah"
	CategorySpaceship  Category = "spaceship"
)

// Offset is one cell of a pattern relative to its placement origin
type Offset struct {
	DX, DY int
	Alive  bool
}

// Pattern is a named preset shape. Cells covers the whole bounding box, so
// placing a pattern also clears the dead cells inside it.
type Pattern struct {
	Name     string
	Category Category
	Width    int
	Height   int
	Cells    []Offset
}

// Rows renders the pattern as '#'/'.' strings, one per row
func (p Pattern) Rows() []string {
	rows := make([][]byte, p.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", p.Width))
	}
	for _, c := range p.Cells {
		if c.Alive {
			rows[c.DY][c.DX] = '#'
		}
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = string(r)
	}
	return out
}

// AliveCount returns the number of live cells in the pattern
func (p Pattern) AliveCount() (n int) {
	for _, c := range p.Cells {
		if c.Alive {
			n++
		}
	}
	return
}

func mustPattern(name string, category Category, rows ...string) Pattern {
	p := Pattern{Name: name, Category: category, Height: len(rows)}
	for dy, row := range rows {
		p.Width = max(p.Width, len(row))
		for dx, ch := range row {
			switch ch {
			case '#':
				p.Cells = append(p.Cells, Offset{DX: dx, DY: dy, Alive: true})
			case '.':
				p.Cells = append(p.Cells, Offset{DX: dx, DY: dy})
			default:
				panic("model: bad pattern row " + strconv.Quote(row) + " in " + name)
			}
		}
	}
	return p
}

// Patterns is the preset catalog in menu order; menu number is index+1
var Patterns = []Pattern{
	mustPattern("block", CategoryStill,
		"##",
		"##"),
	mustPattern("beehive", CategoryStill,
		".##.",
		"#..#",
		".##."),
	mustPattern("loaf", CategoryStill,
		".##.",
		"#..#",
		".#.#",
		"..#."),
	mustPattern("boat", CategoryStill,
		"##.",
		"#.#",
		".#."),
	mustPattern("tub", CategoryStill,
		".#.",
		"#.#",
		".#."),
	mustPattern("blinker", CategoryOscillator,
		"#",
		"#",
		"#"),
	mustPattern("toad", CategoryOscillator,
		".###",
		"###."),
	mustPattern("beacon", CategoryOscillator,
		"##..",
		"##..",
		"..##",
		"..##"),
	mustPattern("pentadecathlon", CategoryOscillator,
		".#.",
		".#.",
		"#.#",
		".#.",
		".#.",
		".#.",
		".#.",
		"#.#",
		".#.",
		".#."),
	mustPattern("r-pentomino", CategoryMethuselah,
		".##",
		"##.",
		".#."),
	mustPattern("diehard", CategoryMethuselah,
		"......#.",
		"##......",
		".#...###"),
	mustPattern("acorn", CategoryMethuselah,
		".#.....",
		"...#...",
		"##..###"),
	mustPattern("glider", CategorySpaceship,
		".#.",
		"..#",
		"###"),
	mustPattern("lwss", CategorySpaceship,
		"#..#.",
		"....#",
		"#...#",
		".####"),
	mustPattern("mwss", CategorySpaceship,
		"..#...",
		"#...#.",
		".....#",
		"#....#",
		".#####"),
}

// LookupPattern finds a preset by name (case-insensitive) or menu number
func LookupPattern(key string) (Pattern, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= len(Patterns) {
			return Patterns[n-1], nil
		}
		return Pattern{}, errors.Wrapf(ErrUnknownPattern, "[LookupPattern] menu number %d not in 1-%d", n, len(Patterns))
	}
	for _, p := range Patterns {
		if p.Name == key {
			return p, nil
		}
	}
	return Pattern{}, errors.Wrapf(ErrUnknownPattern, "[LookupPattern] %q, choose one of: %s", key, strings.Join(PatternNames(), ", "))
}

// PatternNames lists the catalog names in menu order
func PatternNames() []string {
	names := make([]string, len(Patterns))
	for i, p := range Patterns {
		names[i] = p.Name
	}
	return names
}

// Apply writes a pattern with its top-left corner at (x, y). Nothing is
// written if any part of the pattern falls outside the grid.
func (g *Grid) Apply(p Pattern, x, y int) error {
	if !g.inBounds(x, y) || !g.inBounds(x+p.Width-1, y+p.Height-1) {
		return errors.Wrapf(ErrOutOfBounds, "[Grid.Apply] %s (%dx%d) at (%d,%d) does not fit %dx%d",
			p.Name, p.Width, p.Height, x, y, g.width, g.height)
	}
	for _, c := range p.Cells {
		g.current[(y+c.DY)*g.width+x+c.DX] = toCell(c.Alive)
	}
	return nil
}
