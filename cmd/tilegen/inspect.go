package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/automoto/tilegen/preview"
	"github.com/automoto/tilegen/tmx"
	"github.com/automoto/tilegen/viewer"
)

func runInspect(args []string) error {
	fset := flag.NewFlagSet("inspect", flag.ExitOnError)
	_ = fset.Parse(args)
	if fset.NArg() == 0 {
		return errors.New("expected TMX files or directories")
	}

	for _, arg := range fset.Args() {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			s, err := tmx.Load(os.DirFS(filepath.Dir(arg)), filepath.Base(arg))
			if err != nil {
				return err
			}
			printSummary(os.Stdout, arg, s)
			continue
		}

		maps, names, err := tmx.LoadAll(os.DirFS(arg), ".")
		if err != nil {
			return err
		}
		for _, name := range names {
			printSummary(os.Stdout, filepath.Join(arg, name+".tmx"), maps[name])
		}
	}
	return nil
}

func printSummary(w io.Writer, name string, s *tmx.Summary) {
	fmt.Fprintf(w, "%s: %s %dx%d tiles of %dx%d px\n", name, s.Orientation, s.Width, s.Height, s.TileWidth, s.TileHeight)
	for _, ts := range s.Tilesets {
		fmt.Fprintf(w, "  tileset %-12s firstgid=%-4d tiles=%-4d columns=%-3d %s\n",
			ts.Name, ts.FirstGID, ts.TileCount, ts.Columns, ts.Image)
	}
	for _, l := range s.Layers {
		fmt.Fprintf(w, "  layer %q: %d cells\n", l.Name, len(l.GIDs))
	}
	for _, gid := range s.GIDs() {
		owner := "?"
		if ts, ok := s.Tileset(gid); ok {
			owner = fmt.Sprintf("%s#%d", ts.Name, gid-ts.FirstGID)
		}
		fmt.Fprintf(w, "  gid %-4d %-16s %d cells\n", gid, owner, s.Histogram[gid])
	}
}

func runPreview(args []string) error {
	fset := flag.NewFlagSet("preview", flag.ExitOnError)
	out := fset.String("o", "", "output PNG (defaults to the map name with .png)")
	scale := fset.Float64("scale", 1, "resize factor")
	_ = fset.Parse(args)
	if fset.NArg() != 1 {
		return errors.New("expected one TMX file")
	}

	mapPath := fset.Arg(0)
	img, err := preview.Render(os.DirFS(filepath.Dir(mapPath)), filepath.Base(mapPath), *scale)
	if err != nil {
		return err
	}

	output := *out
	if output == "" {
		output = strings.TrimSuffix(mapPath, filepath.Ext(mapPath)) + ".png"
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := preview.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d)\n", output, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func runView(args []string) error {
	fset := flag.NewFlagSet("view", flag.ExitOnError)
	_ = fset.Parse(args)
	if fset.NArg() != 1 {
		return errors.New("expected one TMX file")
	}

	mapPath := fset.Arg(0)
	fsys := os.DirFS(filepath.Dir(mapPath))
	s, err := tmx.Load(fsys, filepath.Base(mapPath))
	if err != nil {
		return err
	}
	img, err := preview.Render(fsys, filepath.Base(mapPath), 1)
	if err != nil {
		return err
	}

	info := []string{
		filepath.Base(mapPath),
		fmt.Sprintf("%dx%d tiles, %d tilesets, %d distinct tiles", s.Width, s.Height, len(s.Tilesets), len(s.Histogram)),
		"arrows/WASD pan  +/- zoom  0 reset  H hide  Esc quit",
	}
	return viewer.Run(img, "tilegen - "+filepath.Base(mapPath), info)
}
