package tmx

import "sort"

// Summary is what Load reads back from a TMX file.
type Summary struct {
	Orientation string
	Width       int
	Height      int
	TileWidth   int
	TileHeight  int
	Tilesets    []TilesetRange
	Layers      []LayerData
	Histogram   map[uint32]int // GID -> cell count over all layers
}

// TilesetRange is one tileset's slice of the GID space.
type TilesetRange struct {
	Name      string
	FirstGID  uint32
	TileCount int
	Columns   int
	Image     string
}

// LayerData holds a tile layer's GIDs in row-major order, 0 for empty.
type LayerData struct {
	Name string
	GIDs []uint32
}

// GIDs returns the distinct GIDs in use, ascending.
func (s *Summary) GIDs() []uint32 {
	out := make([]uint32, 0, len(s.Histogram))
	for gid := range s.Histogram {
		out = append(out, gid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Tileset returns the range that owns gid.
func (s *Summary) Tileset(gid uint32) (TilesetRange, bool) {
	for _, r := range s.Tilesets {
		if gid >= r.FirstGID && gid < r.FirstGID+uint32(r.TileCount) {
			return r, true
		}
	}
	return TilesetRange{}, false
}
