package tmx

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/automoto/tilegen/grid"
	"github.com/automoto/tilegen/tileset"
)

func sampleRegistry(t *testing.T) *tileset.Registry {
	t.Helper()
	reg, err := tileset.Resolve([]tileset.Source{
		{Name: "grass", ImagePath: "tiles/grass.png", AtlasWidth: 64, AtlasHeight: 32},
		{Name: "water", ImagePath: "tiles/water.png", AtlasWidth: 32, AtlasHeight: 32},
	}, 16, 16)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return reg
}

func sampleGrid() *grid.Grid {
	return &grid.Grid{Width: 3, Height: 2, Cells: []uint32{1, 1, 9, 1, 9, 12}}
}

func sampleMap() Map {
	return Map{Orientation: "orthogonal", LayerName: "Ground", Width: 3, Height: 2, TileWidth: 16, TileHeight: 16}
}

func TestEncodeLayout(t *testing.T) {
	doc, err := Encode(sampleRegistry(t), sampleGrid(), sampleMap())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := "<?xml version='1.0' encoding='UTF-8'?>\n" +
		"<map version='1.0' tiledversion='2018.04.18' orientation='orthogonal' renderorder='left-up' width='3' height='2' tilewidth='16' tileheight='16' infinite='0' nextobjectid='1'>\n" +
		"<tileset firstgid='1' name='grass' tilewidth='16' tileheight='16' tilecount='8' columns='4'>\n" +
		"<image source='tiles/grass.png' trans='ff00ff' width='64' height='32'/>\n" +
		"</tileset>\n" +
		"<tileset firstgid='9' name='water' tilewidth='16' tileheight='16' tilecount='4' columns='2'>\n" +
		"<image source='tiles/water.png' trans='ff00ff' width='32' height='32'/>\n" +
		"</tileset>\n" +
		"<layer name='Ground' width='3' height='2'>\n" +
		"<data encoding='csv'>\n" +
		"1,1,9,\n" +
		"1,9,12\n" +
		"</data>\n" +
		"</layer>\n" +
		"</map>\n"
	if doc != want {
		t.Fatalf("document mismatch\ngot:\n%s\nwant:\n%s", doc, want)
	}
}

func TestEncodeCSVShape(t *testing.T) {
	cases := []struct{ w, h int }{{1, 1}, {1, 4}, {5, 1}, {7, 3}}
	for _, c := range cases {
		g, err := grid.New(c.w, c.h)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for i := range g.Cells {
			g.Cells[i] = uint32(i + 1)
		}

		csv := EncodeCSV(g)
		if strings.HasSuffix(csv, ",") || strings.HasSuffix(csv, "\n") {
			t.Fatalf("%dx%d: trailing separator in %q", c.w, c.h, csv)
		}
		lines := strings.Split(csv, "\n")
		if len(lines) != c.h {
			t.Fatalf("%dx%d: %d lines, want %d", c.w, c.h, len(lines), c.h)
		}
		for i, line := range lines {
			line = strings.TrimSuffix(line, ",")
			if n := len(strings.Split(line, ",")); n != c.w {
				t.Fatalf("%dx%d: line %d has %d values, want %d", c.w, c.h, i, n, c.w)
			}
		}
	}
}

func TestEncodeEscapesAttributes(t *testing.T) {
	m := sampleMap()
	m.LayerName = `it's <mine> & "yours"`
	doc, err := Encode(sampleRegistry(t), sampleGrid(), m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(doc, "it's") || strings.Contains(doc, "<mine>") {
		t.Fatalf("layer name not escaped:\n%s", doc)
	}
}

func TestEncodeGridMismatch(t *testing.T) {
	m := sampleMap()
	m.Width = 4
	if _, err := Encode(sampleRegistry(t), sampleGrid(), m); !errors.Is(err, ErrGridMismatch) {
		t.Fatalf("err = %v, want ErrGridMismatch", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	m := sampleMap()
	m.LayerName = "Biomes & more"
	doc, err := Encode(sampleRegistry(t), sampleGrid(), m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	fsys := fstest.MapFS{"maps/first.tmx": {Data: []byte(doc)}}
	s, err := Load(fsys, "maps/first.tmx")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.Orientation != "orthogonal" || s.Width != 3 || s.Height != 2 || s.TileWidth != 16 {
		t.Fatalf("summary header = %+v", s)
	}
	if len(s.Tilesets) != 2 || s.Tilesets[1].FirstGID != 9 || s.Tilesets[1].Columns != 2 {
		t.Fatalf("tilesets = %+v", s.Tilesets)
	}
	if s.Tilesets[0].Image != "tiles/grass.png" {
		t.Fatalf("image source = %q", s.Tilesets[0].Image)
	}
	if len(s.Layers) != 1 || s.Layers[0].Name != "Biomes & more" {
		t.Fatalf("layers = %+v", s.Layers)
	}

	want := sampleGrid().Cells
	for i, gid := range s.Layers[0].GIDs {
		if gid != want[i] {
			t.Fatalf("cell %d = %d, want %d", i, gid, want[i])
		}
	}
	if s.Histogram[1] != 3 || s.Histogram[9] != 2 || s.Histogram[12] != 1 {
		t.Fatalf("histogram = %v", s.Histogram)
	}
	if gids := s.GIDs(); len(gids) != 3 || gids[0] != 1 || gids[2] != 12 {
		t.Fatalf("GIDs = %v", gids)
	}
	if r, ok := s.Tileset(12); !ok || r.Name != "water" {
		t.Fatalf("Tileset(12) = %+v, %v", r, ok)
	}
}

func TestLoadAll(t *testing.T) {
	doc, err := Encode(sampleRegistry(t), sampleGrid(), sampleMap())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	fsys := fstest.MapFS{
		"out/b.tmx":   {Data: []byte(doc)},
		"out/a.tmx":   {Data: []byte(doc)},
		"out/out.png": {Data: []byte("not a map")},
	}

	maps, names, err := LoadAll(fsys, "out")
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names = %v", names)
	}
	if maps["a"].Width != 3 {
		t.Fatalf("maps[a] = %+v", maps["a"])
	}
}
