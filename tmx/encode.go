// Package tmx writes and reads the Tiled (TMX) documents tilegen produces.
package tmx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/automoto/tilegen/grid"
	"github.com/automoto/tilegen/tileset"
)

var ErrGridMismatch = errors.New("grid does not match map size")

// Map holds the map-level attributes of the document.
type Map struct {
	Orientation string
	LayerName   string
	Width       int
	Height      int
	TileWidth   int
	TileHeight  int
}

type document struct {
	Map
	Tilesets []tileset.Descriptor
	CSV      string
}

var documentTemplate = template.Must(template.New("tmx").Funcs(template.FuncMap{
	"attr": escapeAttr,
}).Parse("" +
	"<?xml version='1.0' encoding='UTF-8'?>\n" +
	"<map version='1.0' tiledversion='2018.04.18' orientation='{{attr .Orientation}}' renderorder='left-up' " +
	"width='{{.Width}}' height='{{.Height}}' tilewidth='{{.TileWidth}}' tileheight='{{.TileHeight}}' infinite='0' nextobjectid='1'>\n" +
	"{{range .Tilesets}}" +
	"<tileset firstgid='{{.FirstGID}}' name='{{attr .Name}}' tilewidth='{{.TileWidth}}' tileheight='{{.TileHeight}}' " +
	"tilecount='{{.TotalTiles}}' columns='{{.Columns}}'>\n" +
	"<image source='{{attr .ImagePath}}' trans='ff00ff' width='{{.AtlasWidth}}' height='{{.AtlasHeight}}'/>\n" +
	"</tileset>\n" +
	"{{end}}" +
	"<layer name='{{attr .LayerName}}' width='{{.Width}}' height='{{.Height}}'>\n" +
	"<data encoding='csv'>\n" +
	"{{.CSV}}\n" +
	"</data>\n" +
	"</layer>\n" +
	"</map>\n"))

// Encode renders the tilesets and the finished grid as one TMX document.
func Encode(reg *tileset.Registry, g *grid.Grid, m Map) (string, error) {
	if g.Width != m.Width || g.Height != m.Height {
		return "", fmt.Errorf("grid %dx%d, map %dx%d: %w", g.Width, g.Height, m.Width, m.Height, ErrGridMismatch)
	}

	var sb strings.Builder
	err := documentTemplate.Execute(&sb, document{
		Map:      m,
		Tilesets: reg.Descriptors(),
		CSV:      EncodeCSV(g),
	})
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return sb.String(), nil
}

// EncodeCSV writes Width comma-separated GIDs per row. Every row but the
// last ends with a comma so the values stay one continuous CSV list.
func EncodeCSV(g *grid.Grid) string {
	buf := make([]byte, 0, len(g.Cells)*4)
	for i, gid := range g.Cells {
		if i > 0 {
			buf = append(buf, ',')
			if i%g.Width == 0 {
				buf = append(buf, '\n')
			}
		}
		buf = strconv.AppendUint(buf, uint64(gid), 10)
	}
	return string(buf)
}

func escapeAttr(s string) string {
	var sb strings.Builder
	// strings.Builder never fails a write
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
