package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/automoto/tilegen/biome"
	"github.com/automoto/tilegen/config"
	"github.com/automoto/tilegen/generator"
	"github.com/automoto/tilegen/probe"
	"github.com/automoto/tilegen/settings"
)

// mapFlags are the generation options shared by the CLI commands.
type mapFlags struct {
	width, height int
	tileW, tileH  int
	orientation   string
	layer         string
	points        string
	count         int
	exact         bool
}

func (m *mapFlags) register(fset *flag.FlagSet) {
	gen := config.Generate
	fset.IntVar(&m.width, "width", gen.MapWidth, "map width in tiles")
	fset.IntVar(&m.height, "height", gen.MapHeight, "map height in tiles")
	fset.IntVar(&m.tileW, "tile-width", gen.TileWidth, "tile width in pixels")
	fset.IntVar(&m.tileH, "tile-height", gen.TileHeight, "tile height in pixels")
	fset.StringVar(&m.orientation, "orientation", gen.Orientation,
		fmt.Sprintf("map orientation (%s)", strings.Join(gen.Orientations, ", ")))
	fset.StringVar(&m.layer, "layer", gen.LayerName, "tile layer name")
	fset.StringVar(&m.points, "points", "", `explicit biome seeds "x,y;x,y" (negative values count from the far edge)`)
	fset.IntVar(&m.count, "count", gen.BiomeCount, "number of random biome seeds")
	fset.BoolVar(&m.exact, "exact", false, "require exactly -count distinct random seeds")
}

func (m *mapFlags) seeding() (generator.Seeding, error) {
	if m.points == "" {
		return generator.Seeding{Mode: generator.ModeRandom, Count: m.count, Exact: m.exact}, nil
	}
	coords, err := parsePoints(m.points)
	if err != nil {
		return generator.Seeding{}, err
	}
	return generator.Seeding{Mode: generator.ModeExplicit, Points: coords}, nil
}

// parsePoints reads "x,y;x,y". Empty entries are skipped.
func parsePoints(s string) ([]biome.Coord, error) {
	var pairs []string
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p != "" {
			pairs = append(pairs, p)
		}
	}
	return biome.ParseCoords(pairs)
}

// buildRequest loads the catalog and probes its atlas images. Image paths
// are relative to fsys.
func buildRequest(fsys fs.FS, catalog string, m mapFlags) (generator.Request, error) {
	cat, err := config.LoadCatalog(fsys, catalog)
	if err != nil {
		return generator.Request{}, err
	}
	sources, err := cat.Sources(probe.NewProber(fsys))
	if err != nil {
		return generator.Request{}, err
	}
	seeding, err := m.seeding()
	if err != nil {
		return generator.Request{}, err
	}

	return generator.Request{
		Sources:     sources,
		Tiles:       cat.Refs(),
		TileWidth:   m.tileW,
		TileHeight:  m.tileH,
		Width:       m.width,
		Height:      m.height,
		Orientation: m.orientation,
		LayerName:   m.layer,
		Seeding:     seeding,
	}, nil
}

func pickSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return rand.Uint64()
}

func runGenerate(args []string) error {
	fset := flag.NewFlagSet("generate", flag.ExitOnError)
	catalog := fset.String("catalog", config.Generate.CatalogPath, "tileset catalog JSON")
	out := fset.String("o", config.Generate.OutputPath, "output TMX path; relative paths are taken from the catalog directory")
	seed := fset.Uint64("seed", 0, "random seed (0 picks one)")
	var m mapFlags
	m.register(fset)
	_ = fset.Parse(args)

	dir := filepath.Dir(*catalog)
	req, err := buildRequest(os.DirFS(dir), filepath.Base(*catalog), m)
	if err != nil {
		return err
	}
	return generateAndWrite(req, pickSeed(*seed), outputPath(dir, *out))
}

// outputPath places a relative output next to the catalog so atlas paths in
// the document resolve. Absolute paths are used as given.
func outputPath(catalogDir, out string) string {
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(catalogDir, out)
}

func runRegenerate(args []string) error {
	fset := flag.NewFlagSet("regenerate", flag.ExitOnError)
	out := fset.String("o", "", "output TMX path (defaults to the previous output)")
	seed := fset.Uint64("seed", 0, "random seed (0 picks one)")
	_ = fset.Parse(args)

	store, _ := settings.Open()
	last, err := store.LoadLastRun()
	if err != nil {
		return err
	}
	if last == nil {
		return errors.New("no previous generate to repeat")
	}

	output := last.Output
	if *out != "" {
		output = *out
	}
	return generateAndWrite(last.Request, pickSeed(*seed), output)
}

func generateAndWrite(req generator.Request, seed uint64, output string) error {
	log.Printf("[tilegen] generating %dx%d map (seed=%d)", req.Width, req.Height, seed)

	res, err := generator.Generate(req, generator.NewRand(seed))
	if err != nil {
		return err
	}
	if req.Seeding.Mode == generator.ModeRandom && len(res.Points) < req.Seeding.Count {
		log.Printf("[tilegen] Warning: asked for %d biome seeds, placed %d distinct (use -exact to require all)",
			req.Seeding.Count, len(res.Points))
	}

	if err := os.WriteFile(output, []byte(res.Document), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	log.Printf("[tilegen] wrote %s (%d tilesets, %d biome seeds)", output, res.Registry.Len(), len(res.Points))

	abs, err := filepath.Abs(output)
	if err != nil {
		abs = output
	}
	store, _ := settings.Open()
	_ = store.SaveLastRun(&settings.LastRun{
		Request: req,
		Seed:    seed,
		Output:  abs,
		SavedAt: time.Now(),
	})
	return nil
}
