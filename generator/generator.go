// Package generator runs the full pipeline: tileset registry, biome
// seeding, grid assignment and TMX encoding.
package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/automoto/tilegen/biome"
	"github.com/automoto/tilegen/grid"
	"github.com/automoto/tilegen/tileset"
	"github.com/automoto/tilegen/tmx"
)

var ErrUnknownMode = errors.New("unknown seeding mode")

// Mode selects how seed points are produced.
type Mode string

const (
	ModeExplicit Mode = "explicit"
	ModeRandom   Mode = "random"
)

// Seeding describes the biome seed points: literal coordinates, or a count
// of random draws. Exact asks for exactly Count distinct random points
// instead of up to Count.
type Seeding struct {
	Mode   Mode          `json:"mode"`
	Points []biome.Coord `json:"points,omitempty"`
	Count  int           `json:"count,omitempty"`
	Exact  bool          `json:"exact,omitempty"`
}

// Request is everything needed to produce one document. Atlas sizes in
// Sources must already be known.
type Request struct {
	Sources     []tileset.Source       `json:"tilesets"`
	Tiles       []tileset.LocalTileRef `json:"tiles"`
	TileWidth   int                    `json:"tile_width"`
	TileHeight  int                    `json:"tile_height"`
	Width       int                    `json:"width"`
	Height      int                    `json:"height"`
	Orientation string                 `json:"orientation"`
	LayerName   string                 `json:"layer_name"`
	Seeding     Seeding                `json:"seeding"`
}

// Result is a finished generation.
type Result struct {
	Document string
	Registry *tileset.Registry
	Grid     *grid.Grid
	Points   []biome.Point
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate produces the TMX document for req. It fails as a whole: no
// partial document is returned alongside an error.
func Generate(req Request, rng biome.Source) (*Result, error) {
	if req.Width < 1 || req.Height < 1 {
		return nil, fmt.Errorf("map %dx%d: %w", req.Width, req.Height, grid.ErrInvalidSize)
	}

	// 1. Resolve tilesets into GID ranges
	reg, err := tileset.Resolve(req.Sources, req.TileWidth, req.TileHeight)
	if err != nil {
		return nil, fmt.Errorf("resolving tilesets: %w", err)
	}

	// 2. Produce raw seed coordinates
	coords, err := seedCoords(req, rng)
	if err != nil {
		return nil, fmt.Errorf("seeding biomes: %w", err)
	}

	// 3. Normalize seeds and bind each to a tile
	points, err := biome.Place(coords, req.Tiles, reg, req.Width, req.Height, rng)
	if err != nil {
		return nil, fmt.Errorf("placing biomes: %w", err)
	}

	// 4. Nearest-seed assignment, one pass
	g, err := grid.Assign(req.Width, req.Height, points)
	if err != nil {
		return nil, fmt.Errorf("assigning grid: %w", err)
	}

	// 5. Build output
	doc, err := tmx.Encode(reg, g, tmx.Map{
		Orientation: req.Orientation,
		LayerName:   req.LayerName,
		Width:       req.Width,
		Height:      req.Height,
		TileWidth:   req.TileWidth,
		TileHeight:  req.TileHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	return &Result{Document: doc, Registry: reg, Grid: g, Points: points}, nil
}

func seedCoords(req Request, rng biome.Source) ([]biome.Coord, error) {
	s := req.Seeding
	switch s.Mode {
	case ModeExplicit:
		return s.Points, nil
	case ModeRandom:
		if s.Exact {
			return biome.RandomUnique(rng, s.Count, req.Width, req.Height)
		}
		return biome.Random(rng, s.Count, req.Width, req.Height)
	default:
		return nil, fmt.Errorf("%q: %w", s.Mode, ErrUnknownMode)
	}
}
