// Package probe reads the pixel dimensions of atlas images without decoding
// their pixel data.
package probe

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Prober reads image headers from a file system.
type Prober struct {
	FS fs.FS
}

func NewProber(fsys fs.FS) *Prober {
	return &Prober{FS: fsys}
}

// Probe returns the size of the image at path along with its format name.
func (p *Prober) Probe(path string) (width, height int, format string, err error) {
	f, err := p.FS.Open(path)
	if err != nil {
		return 0, 0, "", fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", fmt.Errorf("probe image %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, format, nil
}
