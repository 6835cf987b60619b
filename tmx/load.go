package tmx

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Load parses a TMX file and summarizes its tilesets and tile layers. It
// takes an fs.FS so callers can pass os.DirFS or an in-memory FS.
func Load(fsys fs.FS, tmxPath string) (*Summary, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	s := &Summary{
		Orientation: levelMap.Orientation,
		Width:       levelMap.Width,
		Height:      levelMap.Height,
		TileWidth:   levelMap.TileWidth,
		TileHeight:  levelMap.TileHeight,
		Histogram:   make(map[uint32]int),
	}

	for _, ts := range levelMap.Tilesets {
		r := TilesetRange{
			Name:      ts.Name,
			FirstGID:  ts.FirstGID,
			TileCount: ts.TileCount,
			Columns:   ts.Columns,
		}
		if ts.Image != nil {
			r.Image = ts.Image.Source
		}
		s.Tilesets = append(s.Tilesets, r)
	}

	for _, layer := range levelMap.Layers {
		data := LayerData{
			Name: layer.Name,
			GIDs: make([]uint32, len(layer.Tiles)),
		}
		for i, tile := range layer.Tiles {
			if tile.IsNil() {
				continue
			}
			gid := tile.Tileset.FirstGID + tile.ID
			data.GIDs[i] = gid
			s.Histogram[gid]++
		}
		s.Layers = append(s.Layers, data)
	}

	return s, nil
}

// LoadAll discovers all .tmx files in dir within fsys and summarizes each,
// returning a map keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, dir string) (map[string]*Summary, []string, error) {
	pattern := path.Join(dir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	maps := make(map[string]*Summary, len(matches))
	names := make([]string, 0, len(matches))

	for _, p := range matches {
		s, err := Load(fsys, p)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		stem := strings.TrimSuffix(path.Base(p), ".tmx")
		maps[stem] = s
		names = append(names, stem)
	}

	sort.Strings(names)
	return maps, names, nil
}
