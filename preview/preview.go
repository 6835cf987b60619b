// Package preview renders a generated TMX map to an image using its atlas
// images.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"io/fs"

	"github.com/disintegration/imaging"
	"github.com/lafriks/go-tiled"
	"github.com/lafriks/go-tiled/render"
)

var ErrUnsupportedOrientation = errors.New("preview supports orthogonal maps only")

// Render draws every tile layer of the map at tmxPath. Atlas paths in the
// map are resolved relative to the map inside fsys. A scale other than 1
// resizes the result with nearest-neighbour sampling.
func Render(fsys fs.FS, tmxPath string, scale float64) (*image.NRGBA, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.Orientation != "orthogonal" {
		return nil, fmt.Errorf("%s is %q: %w", tmxPath, levelMap.Orientation, ErrUnsupportedOrientation)
	}
	// Tiles never overlap on an orthogonal grid, so draw order does not
	// change the picture; the renderer only walks right-down.
	levelMap.RenderOrder = "right-down"

	renderer, err := render.NewRendererWithFileSystem(levelMap, fsys)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	out := image.NewNRGBA(image.Rect(0, 0, levelMap.Width*levelMap.TileWidth, levelMap.Height*levelMap.TileHeight))
	for i := range levelMap.Layers {
		if err := renderer.RenderLayer(i); err != nil {
			return nil, fmt.Errorf("render layer %d: %w", i, err)
		}
		draw.Draw(out, out.Bounds(), renderer.Result, image.Point{}, draw.Over)
		renderer.Clear()
	}

	if scale > 0 && scale != 1 {
		w := int(float64(out.Bounds().Dx()) * scale)
		h := int(float64(out.Bounds().Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %.3f collapses %dx%d image", scale, out.Bounds().Dx(), out.Bounds().Dy())
		}
		out = imaging.Resize(out, w, h, imaging.NearestNeighbor)
	}
	return out, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}
