package model

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"small", 3, 2, false},
		{"max", 1000, 1000, false},
		{"zero width", 0, 5, true},
		{"negative height", 5, -1, true},
		{"over ceiling", 1001, 1000, true},
		{"overflow", math.MaxInt, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.width, tt.height)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDimension))
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width, g.GetWidth())
			assert.Equal(t, tt.height, g.GetHeight())
			assert.Zero(t, g.CountLivingCells())
		})
	}
}

func TestNewGridWithLimit(t *testing.T) {
	_, err := NewGridWithLimit(10, 10, 99)
	require.ErrorIs(t, err, ErrInvalidDimension)

	g, err := NewGridWithLimit(10, 10, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, g.GetWidth())
}

func TestGridSetGet(t *testing.T) {
	g, err := NewGrid(4, 3)
	require.NoError(t, err)

	require.NoError(t, g.Set(3, 2, true))
	alive, err := g.Get(3, 2)
	require.NoError(t, err)
	assert.True(t, alive)

	require.NoError(t, g.Set(3, 2, false))
	alive, err = g.Get(3, 2)
	require.NoError(t, err)
	assert.False(t, alive)

	for _, xy := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		require.ErrorIs(t, g.Set(xy[0], xy[1], true), ErrOutOfBounds, "set %v", xy)
		_, err := g.Get(xy[0], xy[1])
		require.ErrorIs(t, err, ErrOutOfBounds, "get %v", xy)
	}
	assert.Zero(t, g.CountLivingCells())
}

func TestCountNeighbors(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	for y := range 3 {
		for x := range 3 {
			require.NoError(t, g.Set(x, y, true))
		}
	}

	// Previous is still empty until a snapshot
	assert.Equal(t, 0, g.CountNeighbors(Previous, 1, 1))
	g.Snapshot()

	for _, b := range []Buffer{Current, Previous} {
		assert.Equal(t, 8, g.CountNeighbors(b, 1, 1), "center")
		assert.Equal(t, 3, g.CountNeighbors(b, 0, 0), "corner")
		assert.Equal(t, 3, g.CountNeighbors(b, 2, 2), "corner")
		assert.Equal(t, 5, g.CountNeighbors(b, 1, 0), "edge")
		assert.Equal(t, 5, g.CountNeighbors(b, 2, 1), "edge")
	}
}

func TestCountNeighborsIgnoresSelf(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	require.NoError(t, g.Set(1, 1, true))
	assert.Equal(t, 0, g.CountNeighbors(Current, 1, 1))
	assert.Equal(t, 1, g.CountNeighbors(Current, 0, 0))
}

func TestCloneAndEqual(t *testing.T) {
	g, err := NewGrid(5, 5)
	require.NoError(t, err)
	require.NoError(t, g.Set(2, 2, true))

	c := g.Clone()
	assert.True(t, g.Equal(c))
	assert.Equal(t, g.GetGridHash(), c.GetGridHash())

	require.NoError(t, c.Set(0, 0, true))
	assert.False(t, g.Equal(c))
	assert.NotEqual(t, g.GetGridHash(), c.GetGridHash())

	other, err := NewGrid(5, 4)
	require.NoError(t, err)
	assert.False(t, other.Equal(g))
	assert.False(t, g.Equal(nil))
}

func TestBoundingBox(t *testing.T) {
	g, err := NewGrid(10, 10)
	require.NoError(t, err)
	assert.Zero(t, g.GetBoundingBoxSize())

	require.NoError(t, g.Set(2, 3, true))
	require.NoError(t, g.Set(5, 7, true))
	minX, minY, maxX, maxY, ok := g.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, []int{2, 3, 5, 7}, []int{minX, minY, maxX, maxY})
	assert.Equal(t, 4*5, g.GetBoundingBoxSize())
	assert.Equal(t, [][2]int{{2, 3}, {5, 7}}, g.LivingCells())
}

func TestRandomizeIsDeterministic(t *testing.T) {
	a, err := NewGrid(20, 20)
	require.NoError(t, err)
	b := a.Clone()

	a.Randomize(NewRNG(42), 0.5)
	b.Randomize(NewRNG(42), 0.5)
	assert.True(t, a.Equal(b))

	n := a.CountLivingCells()
	assert.Greater(t, n, 100)
	assert.Less(t, n, 300)

	a.Randomize(NewRNG(1), 0)
	assert.Zero(t, a.CountLivingCells())
	a.Randomize(NewRNG(1), 1)
	assert.Equal(t, 400, a.CountLivingCells())
}

func TestGridReset(t *testing.T) {
	g, err := NewGrid(4, 4)
	require.NoError(t, err)
	require.NoError(t, g.Set(1, 1, true))

	g.Reset(2, 3)
	assert.Equal(t, 2, g.GetWidth())
	assert.Equal(t, 3, g.GetHeight())
	assert.Zero(t, g.CountLivingCells())

	g.Reset(8, 8)
	require.NoError(t, g.Set(7, 7, true))
	assert.Equal(t, 1, g.CountLivingCells())
}

func TestSnapshotPanicsOnMismatchedBuffers(t *testing.T) {
	g := &Grid{width: 2, height: 2, current: make([]uint8, 4), previous: make([]uint8, 3)}
	assert.Panics(t, g.Snapshot)
}
