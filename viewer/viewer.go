// Package viewer shows a rendered map in a desktop window.
package viewer

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/automoto/tilegen/config"
	"github.com/automoto/tilegen/fonts"
)

const overlayPadding = 6

type Game struct {
	img    *ebiten.Image
	cam    *Camera
	info   []string
	face   font.Face
	cfg    config.ViewerConfig
	hidden bool
}

// NewGame wraps a rendered map. info lines are drawn in the overlay.
func NewGame(img image.Image, info []string) (*Game, error) {
	cfg := config.Viewer
	if err := fonts.LoadDefaults(cfg.FontSize); err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &Game{
		img:  ebiten.NewImageFromImage(img),
		cam:  NewCamera(cfg, float64(b.Dx())/2, float64(b.Dy())/2),
		info: info,
		face: fonts.Regular.Get(),
		cfg:  cfg,
	}, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	speed := g.cfg.PanSpeed
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		speed *= 4
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.cam.Pan(-speed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.cam.Pan(speed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.cam.Pan(0, -speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.cam.Pan(0, speed)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.cam.ZoomBy(g.cfg.ZoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.cam.ZoomBy(1 / g.cfg.ZoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key0) {
		b := g.img.Bounds()
		g.cam.X, g.cam.Y = float64(b.Dx())/2, float64(b.Dy())/2
		g.cam.ZoomTo(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hidden = !g.hidden
	}

	g.cam.Update(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM = g.cam.Transform(w, h)
	screen.DrawImage(g.img, op)

	if !g.hidden {
		g.drawOverlay(screen)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	if len(g.info) == 0 {
		return
	}

	lineHeight := g.face.Metrics().Height.Ceil()
	width := 0
	for _, line := range g.info {
		bounds := text.BoundString(g.face, line) //nolint:staticcheck // TODO: migrate to text/v2
		width = max(width, bounds.Dx())
	}

	boxW := float32(width + overlayPadding*2)
	boxH := float32(lineHeight*len(g.info) + overlayPadding*2)
	vector.FillRect(screen, 0, 0, boxW, boxH, g.cfg.OverlayColor, false)

	for i, line := range g.info {
		y := overlayPadding + lineHeight*(i+1) - lineHeight/4
		text.Draw(screen, line, g.face, overlayPadding, y, g.cfg.TextColor) //nolint:staticcheck // TODO: migrate to text/v2
	}
}

func (g *Game) Layout(width, height int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window showing img and blocks until it is closed.
func Run(img image.Image, title string, info []string) error {
	game, err := NewGame(img, info)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(game.cfg.Width, game.cfg.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
