package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/automoto/tilegen/tileset"
)

var ErrEmptyCatalog = errors.New("catalog has no tilesets or no tiles")

// Catalog is the JSON tileset catalog:
//
//	{
//	  "tileset_location": "tiles/",
//	  "tilesets": [{"name": "grass", "src": "grass.png"}],
//	  "tiles": [{"tileset": "grass", "position": {"x": 0, "y": 1}}]
//	}
//
// Tile positions are column/row indexes inside the atlas, not pixels.
type Catalog struct {
	TilesetLocation string           `json:"tileset_location"`
	Tilesets        []CatalogTileset `json:"tilesets"`
	Tiles           []CatalogTile    `json:"tiles"`
}

type CatalogTileset struct {
	Name string `json:"name"`
	Src  string `json:"src"`
}

type CatalogTile struct {
	Tileset  string       `json:"tileset"`
	Position TilePosition `json:"position"`
}

type TilePosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Prober reports the pixel size of an image.
type Prober interface {
	Probe(path string) (width, height int, format string, err error)
}

// LoadCatalog reads and parses a catalog file from fsys.
func LoadCatalog(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", name, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", name, err)
	}
	return c, nil
}

// ParseCatalog decodes catalog JSON and checks it is usable.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Tilesets) == 0 || len(c.Tiles) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &c, nil
}

// ImagePath joins the tileset location with a tileset's src.
func (c *Catalog) ImagePath(ts CatalogTileset) string {
	return path.Join(c.TilesetLocation, ts.Src)
}

// Refs returns the catalog tiles as local tile references.
func (c *Catalog) Refs() []tileset.LocalTileRef {
	refs := make([]tileset.LocalTileRef, len(c.Tiles))
	for i, t := range c.Tiles {
		refs[i] = tileset.LocalTileRef{Tileset: t.Tileset, Col: t.Position.X, Row: t.Position.Y}
	}
	return refs
}

// Sources probes every tileset image and returns the registry input, in
// catalog order.
func (c *Catalog) Sources(p Prober) ([]tileset.Source, error) {
	sources := make([]tileset.Source, 0, len(c.Tilesets))
	for _, ts := range c.Tilesets {
		imgPath := c.ImagePath(ts)
		w, h, _, err := p.Probe(imgPath)
		if err != nil {
			return nil, fmt.Errorf("tileset %q: %w", ts.Name, err)
		}
		sources = append(sources, tileset.Source{
			Name:        ts.Name,
			ImagePath:   imgPath,
			AtlasWidth:  w,
			AtlasHeight: h,
		})
	}
	return sources, nil
}
