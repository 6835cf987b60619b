package biome

import (
	"errors"
	"testing"

	"github.com/automoto/tilegen/tileset"
)

// seqSource replays a fixed sequence of draws, each reduced modulo n.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in      string
		want    Coord
		wantErr bool
	}{
		{"3,4", Coord{3, 4}, false},
		{" -1 , 2 ", Coord{-1, 2}, false},
		{"0,-7", Coord{0, -7}, false},
		{"3", Coord{}, true},
		{"1,2,3", Coord{}, true},
		{"a,2", Coord{}, true},
		{"1.5,2", Coord{}, true},
		{"", Coord{}, true},
	}
	for _, tt := range tests {
		got, err := ParseCoord(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedPoint) {
				t.Errorf("ParseCoord(%q) err = %v, want ErrMalformedPoint", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseCoord(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParseCoordsStopsAtFirstBad(t *testing.T) {
	_, err := ParseCoords([]string{"1,1", "2;2", "3,3"})
	if !errors.Is(err, ErrMalformedPoint) {
		t.Fatalf("err = %v, want ErrMalformedPoint", err)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(Coord{-1, -1}, 10, 6); got != (Coord{9, 5}) {
		t.Fatalf("Normalize(-1,-1) = %v, want (9,5)", got)
	}
	if got := Normalize(Coord{3, 2}, 10, 6); got != (Coord{3, 2}) {
		t.Fatalf("non-negative coords changed: %v", got)
	}

	const dim = 7
	hitNeg := make(map[int]bool)
	for c := -dim; c < dim; c++ {
		n := Normalize(Coord{c, c}, dim, dim)
		if n.X < 0 || n.X >= dim {
			t.Fatalf("Normalize(%d) = %d, outside [0,%d)", c, n.X, dim)
		}
		if c < 0 {
			if hitNeg[n.X] {
				t.Fatalf("two negative inputs normalized to %d", n.X)
			}
			hitNeg[n.X] = true
		}
	}
	if len(hitNeg) != dim {
		t.Fatalf("negative inputs covered %d cells, want %d", len(hitNeg), dim)
	}
}

func TestValidate(t *testing.T) {
	for _, c := range []Coord{{0, 0}, {-10, -5}, {9, 4}} {
		if err := Validate(c, 10, 5); err != nil {
			t.Errorf("Validate(%v): %v", c, err)
		}
	}
	for _, c := range []Coord{{10, 0}, {-11, 0}, {0, 5}, {0, -6}} {
		if err := Validate(c, 10, 5); !errors.Is(err, ErrPointOutOfRange) {
			t.Errorf("Validate(%v) err = %v, want ErrPointOutOfRange", c, err)
		}
	}
}

func TestRandomMayUnderDeliver(t *testing.T) {
	rng := &seqSource{vals: []int{1, 1, 1, 1, 2, 3}}
	got, err := Random(rng, 3, 10, 10)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	want := []Coord{{1, 1}, {2, 3}}
	if len(got) != len(want) {
		t.Fatalf("Random = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Random = %v, want %v", got, want)
		}
	}
}

func TestRandomStopsWhenGridIsFull(t *testing.T) {
	rng := &seqSource{vals: []int{0, 0, 0, 1, 1, 0, 1, 1}}
	got, err := Random(rng, 1_000_000_000, 2, 2)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d points, want all 4 cells", len(got))
	}
	if rng.i != 8 {
		t.Fatalf("made %d draws after the grid filled", rng.i)
	}
}

func TestNegativeCount(t *testing.T) {
	rng := &seqSource{vals: []int{0}}
	if _, err := Random(rng, -1, 4, 4); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("Random err = %v, want ErrInvalidCount", err)
	}
	if _, err := RandomUnique(rng, -1, 4, 4); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("RandomUnique err = %v, want ErrInvalidCount", err)
	}
}

func TestRandomUniqueDeliversExactly(t *testing.T) {
	rng := &seqSource{vals: []int{1, 1, 1, 1, 2, 3, 4, 5}}
	got, err := RandomUnique(rng, 3, 10, 10)
	if err != nil {
		t.Fatalf("RandomUnique: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d points, want 3", len(got))
	}
	seen := make(map[Coord]bool)
	for _, c := range got {
		if seen[c] {
			t.Fatalf("duplicate %v", c)
		}
		seen[c] = true
		if c.X < 0 || c.X >= 10 || c.Y < 0 || c.Y >= 10 {
			t.Fatalf("%v outside grid", c)
		}
	}

	if _, err := RandomUnique(rng, 5, 2, 2); !errors.Is(err, ErrTooManyPoints) {
		t.Fatalf("err = %v, want ErrTooManyPoints", err)
	}
}

func testRegistry(t *testing.T) *tileset.Registry {
	t.Helper()
	reg, err := tileset.Resolve([]tileset.Source{
		{Name: "grass", AtlasWidth: 64, AtlasHeight: 32},
		{Name: "water", AtlasWidth: 32, AtlasHeight: 32},
	}, 16, 16)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return reg
}

func TestPlace(t *testing.T) {
	reg := testRegistry(t)
	refs := []tileset.LocalTileRef{
		{Tileset: "grass", Col: 0, Row: 0}, // gid 1
		{Tileset: "water", Col: 1, Row: 1}, // gid 12
	}
	// Shuffle swaps the two refs (j=0), then the third point draws index 1.
	rng := &seqSource{vals: []int{0, 1}}

	points, err := Place([]Coord{{0, 0}, {-1, -1}, {2, 2}}, refs, reg, 5, 5, rng)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	want := []Point{{0, 0, 12}, {4, 4, 1}, {2, 2, 1}}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, points[i], want[i])
		}
	}
	if refs[0].Tileset != "grass" {
		t.Errorf("caller refs were reordered")
	}
}

func TestPlaceErrors(t *testing.T) {
	reg := testRegistry(t)
	rng := &seqSource{vals: []int{0}}
	refs := []tileset.LocalTileRef{{Tileset: "grass"}}

	if _, err := Place([]Coord{{0, 0}}, nil, reg, 5, 5, rng); !errors.Is(err, ErrNoTileRefs) {
		t.Errorf("no refs err = %v", err)
	}
	if _, err := Place([]Coord{{5, 0}}, refs, reg, 5, 5, rng); !errors.Is(err, ErrPointOutOfRange) {
		t.Errorf("out of range err = %v", err)
	}
	bad := []tileset.LocalTileRef{{Tileset: "lava"}}
	if _, err := Place([]Coord{{0, 0}}, bad, reg, 5, 5, rng); !errors.Is(err, tileset.ErrUnknownTileset) {
		t.Errorf("unknown tileset err = %v", err)
	}
}

func TestShufflePermutes(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	Shuffle(&seqSource{vals: []int{3, 1, 0, 1}}, items)
	sum := 0
	for _, v := range items {
		sum += v
	}
	if sum != 15 || len(items) != 5 {
		t.Fatalf("Shuffle lost items: %v", items)
	}
}
