// Package tileset resolves an ordered list of atlas images into contiguous
// global tile ID (GID) ranges. It is pure data: no file access, no logging.
package tileset

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("invalid tileset dimensions")
	ErrDuplicateName     = errors.New("duplicate tileset name")
	ErrUnknownTileset    = errors.New("unknown tileset")
	ErrTileOutOfRange    = errors.New("tile position outside atlas")
)

// MaxGID is the largest GID Tiled can store; the top three bits of a GID
// are flip flags.
const MaxGID = 0x1FFFFFFF

// Source is one catalog entry whose atlas size has already been probed.
type Source struct {
	Name        string `json:"name"`
	ImagePath   string `json:"image"`
	AtlasWidth  int    `json:"atlas_width"`
	AtlasHeight int    `json:"atlas_height"`
}

// Descriptor is a resolved tileset with its slice of the GID space.
type Descriptor struct {
	Name        string
	ImagePath   string
	AtlasWidth  int
	AtlasHeight int
	TileWidth   int
	TileHeight  int
	FirstGID    uint32
	Columns     int // AtlasWidth / TileWidth
	Rows        int // AtlasHeight / TileHeight
	TotalTiles  int
}

// LastGID returns the highest GID owned by the descriptor.
func (d Descriptor) LastGID() uint32 {
	return d.FirstGID + uint32(d.TotalTiles) - 1
}

// Contains reports whether gid falls in the descriptor's range.
func (d Descriptor) Contains(gid uint32) bool {
	return gid >= d.FirstGID && gid <= d.LastGID()
}

// LocalTileRef addresses one tile inside an atlas by column and row.
type LocalTileRef struct {
	Tileset string `json:"tileset"`
	Col     int    `json:"col"`
	Row     int    `json:"row"`
}

func (r LocalTileRef) String() string {
	return fmt.Sprintf("%s[%d,%d]", r.Tileset, r.Col, r.Row)
}

// Registry is the immutable result of Resolve.
type Registry struct {
	descriptors []Descriptor
	byName      map[string]int
}

// Resolve builds descriptors in input order. The first tileset starts at
// GID 1 and every following one starts right after the previous range.
func Resolve(sources []Source, tileWidth, tileHeight int) (*Registry, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("tile size %dx%d: %w", tileWidth, tileHeight, ErrInvalidDimensions)
	}

	reg := &Registry{
		descriptors: make([]Descriptor, 0, len(sources)),
		byName:      make(map[string]int, len(sources)),
	}

	next := uint32(1)
	for i, src := range sources {
		if src.AtlasWidth < tileWidth || src.AtlasHeight < tileHeight {
			return nil, fmt.Errorf("tileset %q atlas %dx%d smaller than tile %dx%d: %w",
				src.Name, src.AtlasWidth, src.AtlasHeight, tileWidth, tileHeight, ErrInvalidDimensions)
		}
		if prev, ok := reg.byName[src.Name]; ok {
			return nil, fmt.Errorf("tileset %q at index %d and %d: %w", src.Name, prev, i, ErrDuplicateName)
		}

		cols := src.AtlasWidth / tileWidth
		rows := src.AtlasHeight / tileHeight
		if last := uint64(next) + uint64(cols)*uint64(rows) - 1; last > MaxGID {
			return nil, fmt.Errorf("tileset %q would end at gid %d, past %d: %w",
				src.Name, last, MaxGID, ErrInvalidDimensions)
		}
		d := Descriptor{
			Name:        src.Name,
			ImagePath:   src.ImagePath,
			AtlasWidth:  src.AtlasWidth,
			AtlasHeight: src.AtlasHeight,
			TileWidth:   tileWidth,
			TileHeight:  tileHeight,
			FirstGID:    next,
			Columns:     cols,
			Rows:        rows,
			TotalTiles:  cols * rows,
		}

		reg.byName[src.Name] = len(reg.descriptors)
		reg.descriptors = append(reg.descriptors, d)
		next += uint32(d.TotalTiles)
	}

	return reg, nil
}

// Descriptors returns a copy of the descriptors in registry order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

func (r *Registry) Len() int { return len(r.descriptors) }

// Lookup finds a descriptor by name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// LastGID returns the highest GID in use, or 0 for an empty registry.
func (r *Registry) LastGID() uint32 {
	if len(r.descriptors) == 0 {
		return 0
	}
	return r.descriptors[len(r.descriptors)-1].LastGID()
}

// GID resolves a local tile reference: FirstGID + Col + Row*Columns.
// Columns is the width-derived divisor, the same one written to the
// document's columns attribute, so Tiled addresses the same sub-image.
func (r *Registry) GID(ref LocalTileRef) (uint32, error) {
	d, ok := r.Lookup(ref.Tileset)
	if !ok {
		return 0, fmt.Errorf("tile %s: %w", ref, ErrUnknownTileset)
	}
	if ref.Col < 0 || ref.Col >= d.Columns || ref.Row < 0 || ref.Row >= d.Rows {
		return 0, fmt.Errorf("tile %s in %dx%d atlas: %w", ref, d.Columns, d.Rows, ErrTileOutOfRange)
	}
	return d.FirstGID + uint32(ref.Col+ref.Row*d.Columns), nil
}

// Owner returns the descriptor whose range contains gid.
func (r *Registry) Owner(gid uint32) (Descriptor, bool) {
	for _, d := range r.descriptors {
		if d.Contains(gid) {
			return d, true
		}
	}
	return Descriptor{}, false
}
