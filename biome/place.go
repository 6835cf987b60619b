package biome

import (
	"fmt"

	"github.com/automoto/tilegen/tileset"
)

// Place normalizes each coordinate and binds it to a tile. refs are
// shuffled (the caller's slice is left alone) and paired with coords by
// index; coords beyond len(refs) draw a random ref with replacement.
func Place(coords []Coord, refs []tileset.LocalTileRef, reg *tileset.Registry, width, height int, rng Source) ([]Point, error) {
	if len(refs) == 0 {
		return nil, ErrNoTileRefs
	}

	shuffled := make([]tileset.LocalTileRef, len(refs))
	copy(shuffled, refs)
	Shuffle(rng, shuffled)

	points := make([]Point, 0, len(coords))
	for i, raw := range coords {
		if err := Validate(raw, width, height); err != nil {
			return nil, fmt.Errorf("point %d: %w", i+1, err)
		}

		var ref tileset.LocalTileRef
		if i < len(shuffled) {
			ref = shuffled[i]
		} else {
			ref = shuffled[rng.IntN(len(shuffled))]
		}
		gid, err := reg.GID(ref)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i+1, err)
		}

		c := Normalize(raw, width, height)
		points = append(points, Point{X: c.X, Y: c.Y, GID: gid})
	}
	return points, nil
}

// Shuffle is a Fisher-Yates shuffle driven by rng.
func Shuffle[T any](rng Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
