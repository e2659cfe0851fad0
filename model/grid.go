package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// DefaultMaxCells caps a grid at 1000x1000 cells unless a caller asks otherwise
const DefaultMaxCells = 1000 * 1000

const (
	cellDead  uint8 = 0
	cellAlive uint8 = 1
)

// Buffer selects one of the grid's two generation buffers
type Buffer int

const (
	// Current is the authoritative state
	Current Buffer = iota
	// Previous is the snapshot read while the next generation is written
	Previous
)

// Grid is a fixed rectangle of binary cells with two generation buffers.
// Cells are stored row-major at index y*width+x. Off-grid neighbors are dead.
type Grid struct {
	width    int
	height   int
	current  []uint8
	previous []uint8
}

// NewGrid creates an all-dead grid bounded by DefaultMaxCells
func NewGrid(width, height int) (*Grid, error) {
	return NewGridWithLimit(width, height, DefaultMaxCells)
}

// NewGridWithLimit creates an all-dead grid holding at most maxCells cells
func NewGridWithLimit(width, height, maxCells int) (*Grid, error) {
	if err := checkDimensions(width, height, maxCells); err != nil {
		return nil, errors.Wrap(err, "[NewGrid]")
	}
	size := width * height
	return &Grid{
		width:    width,
		height:   height,
		current:  make([]uint8, size),
		previous: make([]uint8, size),
	}, nil
}

func checkDimensions(width, height, maxCells int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "%dx%d must be positive", width, height)
	}
	// width > maxCells/height catches both overflow and the ceiling
	if maxCells > 0 && width > maxCells/height {
		return errors.Wrapf(ErrInvalidDimension, "%dx%d exceeds %d cells", width, height, maxCells)
	}
	return nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Reset resizes the grid to new dimensions and kills every cell
func (g *Grid) Reset(width, height int) {
	size := width * height
	g.width = width
	g.height = height
	if cap(g.current) < size || cap(g.previous) < size {
		g.current = make([]uint8, size)
		g.previous = make([]uint8, size)
		return
	}
	g.current = g.current[:size]
	g.previous = g.previous[:size]
	g.Clear()
}

// Clear kills every cell in both buffers
func (g *Grid) Clear() {
	clear(g.current)
	clear(g.previous)
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) outOfBounds(x, y int) error {
	return errors.Wrapf(ErrOutOfBounds, "(%d,%d) outside %dx%d", x, y, g.width, g.height)
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(x, y int, alive bool) error {
	if !g.inBounds(x, y) {
		return errors.Wrap(g.outOfBounds(x, y), "[Grid.Set]")
	}
	g.current[y*g.width+x] = toCell(alive)
	return nil
}

// Get returns the state of a cell
func (g *Grid) Get(x, y int) (bool, error) {
	if !g.inBounds(x, y) {
		return false, errors.Wrap(g.outOfBounds(x, y), "[Grid.Get]")
	}
	return g.current[y*g.width+x] == cellAlive, nil
}

func (g *Grid) buffer(b Buffer) []uint8 {
	switch b {
	case Current:
		return g.current
	case Previous:
		return g.previous
	}
	panic(errors.Wrapf(ErrInvariantViolation, "[Grid.buffer] unknown buffer %d", b))
}

// CountNeighbors sums the live Moore neighbors of (x, y) in the given buffer.
// Neighbors outside the grid contribute nothing.
func (g *Grid) CountNeighbors(b Buffer, x, y int) int {
	cells := g.buffer(b)
	count := 0

	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		row := ny * g.width
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			count += int(cells[row+nx])
		}
	}

	return count
}

// Snapshot copies the current generation into the previous buffer
func (g *Grid) Snapshot() {
	g.checkInvariants()
	copy(g.previous, g.current)
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:    g.width,
		height:   g.height,
		current:  append([]uint8(nil), g.current...),
		previous: append([]uint8(nil), g.previous...),
	}
}

// Equal reports whether two grids have the same size and current generation
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.current {
		if g.current[i] != other.current[i] {
			return false
		}
	}
	return true
}

func (g *Grid) checkInvariants() {
	size := g.width * g.height
	if len(g.current) != size || len(g.previous) != size {
		panic(errors.Wrapf(ErrInvariantViolation,
			"[Grid] buffers %d/%d do not match %dx%d", len(g.current), len(g.previous), g.width, g.height))
	}
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.current {
		count += int(c)
	}
	return
}

// LivingCells lists the coordinates of living cells in row-major order
func (g *Grid) LivingCells() [][2]int {
	var cells [][2]int
	for i, c := range g.current {
		if c == cellAlive {
			cells = append(cells, [2]int{i % g.width, i / g.width})
		}
	}
	return cells
}

// BoundingBox returns the smallest rectangle holding every living cell
func (g *Grid) BoundingBox() (minX, minY, maxX, maxY int, ok bool) {
	for i, c := range g.current {
		if c != cellAlive {
			continue
		}
		x, y := i%g.width, i/g.width
		if !ok {
			minX, maxX, minY, maxY, ok = x, x, y, y, true
			continue
		}
		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}
	return
}

// GetBoundingBoxSize returns the size of the active region
func (g *Grid) GetBoundingBoxSize() int {
	minX, minY, maxX, maxY, ok := g.BoundingBox()
	if !ok {
		return 0
	}
	return (maxX - minX + 1) * (maxY - minY + 1)
}

// GetGridHash returns an MD5 hash of the current generation
func (g *Grid) GetGridHash() string {
	sum := md5.Sum(g.current)
	return fmt.Sprintf("%x", sum[:])
}

// Randomize makes each cell independently alive with the given probability
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for i := range g.current {
		g.current[i] = toCell(rng.Float64() < density)
	}
}

func toCell(alive bool) uint8 {
	if alive {
		return cellAlive
	}
	return cellDead
}
