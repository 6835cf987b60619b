// Package biome produces the seed points that drive region assignment and
// binds each of them to a tile GID.
package biome

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedPoint  = errors.New("malformed point")
	ErrPointOutOfRange = errors.New("point out of range")
	ErrTooManyPoints   = errors.New("more points requested than grid cells")
	ErrNoTileRefs      = errors.New("no tile references")
	ErrInvalidCount    = errors.New("negative point count")
)

// Source is the randomness consumed by random seeding and tile shuffling.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Coord is a raw seed coordinate. Negative values count from the far edge.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point is a normalized seed bound to a tile.
type Point struct {
	X, Y int
	GID  uint32
}

// ParseCoord parses "x,y". Anything other than exactly two integers fails.
func ParseCoord(s string) (Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coord{}, fmt.Errorf("%q: want x,y: %w", s, ErrMalformedPoint)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coord{}, fmt.Errorf("%q: x: %w", s, ErrMalformedPoint)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coord{}, fmt.Errorf("%q: y: %w", s, ErrMalformedPoint)
	}
	return Coord{X: x, Y: y}, nil
}

// ParseCoords parses a list of "x,y" pairs, stopping at the first bad one.
func ParseCoords(pairs []string) ([]Coord, error) {
	coords := make([]Coord, 0, len(pairs))
	for i, p := range pairs {
		c, err := ParseCoord(p)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i+1, err)
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// Validate checks X in [-width, width) and Y in [-height, height).
func Validate(c Coord, width, height int) error {
	if c.X < -width || c.X >= width || c.Y < -height || c.Y >= height {
		return fmt.Errorf("(%d,%d) on %dx%d grid: %w", c.X, c.Y, width, height, ErrPointOutOfRange)
	}
	return nil
}

// Normalize rewrites negative components as offsets from the far edge,
// so -1 on a width-10 grid becomes 9. Apply it once per raw coordinate.
func Normalize(c Coord, width, height int) Coord {
	if c.X < 0 {
		c.X = width + c.X
	}
	if c.Y < 0 {
		c.Y = height + c.Y
	}
	return c
}

// Random draws n coordinates uniformly from [0,width)x[0,height) and drops
// exact repeats, so the result may hold fewer than n points. Drawing stops
// early once every cell has been taken.
func Random(rng Source, n, width, height int) ([]Coord, error) {
	if n < 0 {
		return nil, fmt.Errorf("%d points: %w", n, ErrInvalidCount)
	}
	if width < 1 || height < 1 {
		return nil, nil
	}
	cells := width * height
	coords := make([]Coord, 0, min(n, cells))
	seen := make(map[Coord]bool, min(n, cells))
	for i := 0; i < n && len(coords) < cells; i++ {
		c := Coord{X: rng.IntN(width), Y: rng.IntN(height)}
		if seen[c] {
			continue
		}
		seen[c] = true
		coords = append(coords, c)
	}
	return coords, nil
}

// RandomUnique keeps drawing until it has exactly n distinct coordinates.
func RandomUnique(rng Source, n, width, height int) ([]Coord, error) {
	if n < 0 {
		return nil, fmt.Errorf("%d points: %w", n, ErrInvalidCount)
	}
	if n > width*height {
		return nil, fmt.Errorf("%d points on %dx%d grid: %w", n, width, height, ErrTooManyPoints)
	}
	coords := make([]Coord, 0, n)
	seen := make(map[Coord]bool, n)
	for len(coords) < n {
		c := Coord{X: rng.IntN(width), Y: rng.IntN(height)}
		if seen[c] {
			continue
		}
		seen[c] = true
		coords = append(coords, c)
	}
	return coords, nil
}
