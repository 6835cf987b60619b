// Package grid assigns every cell of a width x height map to its nearest
// biome seed in a single pass.
package grid

import (
	"errors"
	"fmt"

	"github.com/automoto/tilegen/biome"
)

var (
	ErrEmptySeedSet = errors.New("empty seed set")
	ErrInvalidSize  = errors.New("invalid grid size")
)

// Empty marks a cell that no seed has claimed.
const Empty uint32 = 0

// Grid is a row-major table of GIDs.
type Grid struct {
	Width, Height int
	Cells         []uint32
}

// New allocates a grid with every cell set to Empty.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}
	return &Grid{Width: width, Height: height, Cells: make([]uint32, width*height)}, nil
}

// InBounds checks if a cell is within the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the GID at a cell, or Empty outside the grid.
func (g *Grid) At(x, y int) uint32 {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.Cells[y*g.Width+x]
}

// Row returns the cells of row y. The slice aliases the grid.
func (g *Grid) Row(y int) []uint32 {
	return g.Cells[y*g.Width : (y+1)*g.Width]
}

// Assign fills a fresh grid with the GID of the nearest point to each cell.
// Distance is Euclidean; when several points are equally near, the one
// earliest in points wins.
func Assign(width, height int, points []biome.Point) (*Grid, error) {
	if len(points) == 0 {
		return nil, ErrEmptySeedSet
	}
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Cells[y*width+x] = points[Nearest(x, y, points)].GID
		}
	}
	return g, nil
}

// Nearest returns the index of the point closest to (x, y). Squared
// distances order the same way as Euclidean ones and stay exact.
func Nearest(x, y int, points []biome.Point) int {
	best, bestDist := 0, distSq(x, y, points[0])
	for i := 1; i < len(points); i++ {
		if d := distSq(x, y, points[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func distSq(x, y int, p biome.Point) int {
	dx := x - p.X
	dy := y - p.Y
	return dx*dx + dy*dy
}
