package config

import (
	"image/color"
	"time"
)

// GenerateConfig contains defaults for map generation
type GenerateConfig struct {
	CatalogPath string
	OutputPath  string

	// Map
	Orientation  string
	Orientations []string // Offered by the CLI; the generator accepts any string
	LayerName    string
	MapWidth     int
	MapHeight    int

	// Tiles (pixels)
	TileWidth  int
	TileHeight int

	// Seeding
	BiomeCount int
}

// ServerConfig contains HTTP service configuration
type ServerConfig struct {
	Addr            string
	TTL             time.Duration // How long a generated map stays retrievable
	CleanupInterval time.Duration
	MaxRequestBody  int64
	MaxCells        int // Upper bound on width*height per request
}

// ViewerConfig contains desktop viewer configuration
type ViewerConfig struct {
	Width  int
	Height int

	PanSpeed     float64 // Pixels per tick at zoom 1
	ZoomStep     float64 // Multiplier per key press
	ZoomDuration float32 // Seconds
	MinZoom      float64
	MaxZoom      float64

	FontSize     float64
	OverlayColor color.RGBA
	TextColor    color.RGBA
	Background   color.RGBA
}

// PersistenceConfig names the on-disk settings store
type PersistenceConfig struct {
	AppName        string
	LastRequestKey string
}

var Generate GenerateConfig
var Server ServerConfig
var Viewer ViewerConfig
var Persistence PersistenceConfig

func init() {
	Generate = GenerateConfig{
		CatalogPath:  "config.json",
		OutputPath:   "tg_map_data.tmx",
		Orientation:  "orthogonal",
		Orientations: []string{"orthogonal", "isometric"},
		LayerName:    "Ground",
		MapWidth:     64,
		MapHeight:    64,
		TileWidth:    16,
		TileHeight:   16,
		BiomeCount:   8,
	}

	Server = ServerConfig{
		Addr:            ":8080",
		TTL:             15 * time.Minute,
		CleanupInterval: 30 * time.Second,
		MaxRequestBody:  1 << 16, // 64 KB
		MaxCells:        1 << 20,
	}

	Viewer = ViewerConfig{
		Width:        960,
		Height:       640,
		PanSpeed:     6.0,
		ZoomStep:     1.5,
		ZoomDuration: 0.2,
		MinZoom:      0.125,
		MaxZoom:      8.0,
		FontSize:     12,
		OverlayColor: color.RGBA{R: 0, G: 0, B: 0, A: 180},
		TextColor:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Background:   color.RGBA{R: 24, G: 24, B: 32, A: 255},
	}

	Persistence = PersistenceConfig{
		AppName:        "tilegen",
		LastRequestKey: "last_request",
	}
}
