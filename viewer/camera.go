package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/automoto/tilegen/config"
)

// Camera tracks the map point at the centre of the window and an eased
// zoom level.
type Camera struct {
	X, Y float64
	Zoom float64

	target    float64
	zoomTween *gween.Tween
	cfg       config.ViewerConfig
}

func NewCamera(cfg config.ViewerConfig, centerX, centerY float64) *Camera {
	return &Camera{X: centerX, Y: centerY, Zoom: 1, target: 1, cfg: cfg}
}

// Pan moves the view by screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// ZoomBy starts a tween from the current zoom towards target*factor,
// clamped to the configured range.
func (c *Camera) ZoomBy(factor float64) {
	c.ZoomTo(c.target * factor)
}

func (c *Camera) ZoomTo(z float64) {
	z = max(c.cfg.MinZoom, min(c.cfg.MaxZoom, z))
	if z == c.target && c.zoomTween == nil {
		return
	}
	c.target = z
	c.zoomTween = gween.New(float32(c.Zoom), float32(z), c.cfg.ZoomDuration, ease.OutQuad)
}

// Update advances the zoom tween by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.zoomTween == nil {
		return
	}
	z, done := c.zoomTween.Update(dt)
	c.Zoom = float64(z)
	if done {
		c.Zoom = c.target
		c.zoomTween = nil
	}
}

func (c *Camera) Zooming() bool {
	return c.zoomTween != nil
}

// Transform maps map pixels to screen pixels for a screen of the given size.
func (c *Camera) Transform(screenW, screenH int) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-c.X, -c.Y)
	g.Scale(c.Zoom, c.Zoom)
	g.Translate(float64(screenW)/2, float64(screenH)/2)
	return g
}
