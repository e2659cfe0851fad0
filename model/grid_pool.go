package model

import (
	"sync"

	"github.com/pkg/errors"
)

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles grid buffers between restarts
type GridPool struct {
	pool     sync.Pool
	maxCells int
}

// NewGridPool creates a pool whose grids hold at most maxCells cells
func NewGridPool(maxCells int) *GridPool {
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	return &GridPool{
		maxCells: maxCells,
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an all-dead grid of the requested size
func (p *GridPool) Get(width, height int) (*Grid, error) {
	if err := checkDimensions(width, height, p.maxCells); err != nil {
		return nil, errors.Wrap(err, "[GridPool.Get]")
	}
	g := p.pool.Get().(*Grid)
	g.Reset(width, height)
	return g, nil
}

// Put returns a grid to the pool, clearing its state
func (p *GridPool) Put(g *Grid) {
	g.Clear()
	p.pool.Put(g)
}
