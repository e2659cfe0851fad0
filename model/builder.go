package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// DefaultDensity is the probability of a cell starting alive on a random board
const DefaultDensity = 0.5

// NewRNG returns a deterministic PCG source for the given seed
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// BoardBuilder seeds a grid before an engine takes it over
type BoardBuilder struct {
	grid *Grid
}

// NewBoardBuilder wraps a grid for seeding
func NewBoardBuilder(grid *Grid) *BoardBuilder {
	return &BoardBuilder{grid: grid}
}

// Random makes each cell alive with probability density
func (b *BoardBuilder) Random(rng *rand.Rand, density float64) error {
	if density < 0 || density > 1 {
		return errors.Errorf("[BoardBuilder.Random] density %v not in [0,1]", density)
	}
	b.grid.Randomize(rng, density)
	return nil
}

// Cell marks a single cell alive
func (b *BoardBuilder) Cell(x, y int) error {
	return errors.Wrap(b.grid.Set(x, y, true), "[BoardBuilder.Cell]")
}

// Pattern places a preset by name or menu number with its corner at (x, y)
func (b *BoardBuilder) Pattern(key string, x, y int) error {
	p, err := LookupPattern(key)
	if err != nil {
		return errors.Wrap(err, "[BoardBuilder.Pattern]")
	}
	return errors.Wrap(b.grid.Apply(p, x, y), "[BoardBuilder.Pattern]")
}

// Grid returns the grid being built
func (b *BoardBuilder) Grid() *Grid { return b.grid }

// Generation is always zero while a board is being built
func (b *BoardBuilder) Generation() int { return 0 }

// AliveCount returns the number of cells placed so far
func (b *BoardBuilder) AliveCount() int { return b.grid.CountLivingCells() }
