// Package host runs an interpreter in a window using ebiten.
package host

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// Config contains the window settings.
type Config struct {
	Title      string
	Scale      int
	Foreground color.RGBA
	Background color.RGBA
	KeyMap     KeyMap
}

// Game implements ebiten.Game for a runner.
type Game struct {
	runner *runner.Runner
	logger *log.Logger
	config Config

	ctx       context.Context
	offscreen *ebiten.Image
	pressed   func(ebiten.Key) bool
	paused    bool
}

// New returns a game that executes one runner frame per ebiten tick.
func New(r *runner.Runner, logger *log.Logger, config Config) (*Game, error) {
	if config.Scale <= 0 {
		return nil, fmt.Errorf("invalid scale %d", config.Scale)
	}
	return &Game{
		runner:  r,
		logger:  logger,
		config:  config,
		ctx:     context.Background(),
		pressed: ebiten.IsKeyPressed,
	}, nil
}

// Run opens the window and blocks until it is closed, Escape is pressed,
// the context is canceled or the program fails.
func Run(ctx context.Context, g *Game) error {
	g.ctx = ctx
	ebiten.SetWindowTitle(g.config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(display.Width*g.config.Scale, display.Height*g.config.Scale)
	ebiten.SetTPS(runner.FrameRate)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	switch {
	case g.ctx.Err() != nil, inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		g.logger.Info("Resetting machine")
		g.runner.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	}

	return g.step()
}

func (g *Game) step() error {
	if g.paused {
		return nil
	}
	if err := g.runner.Step(g.config.KeyMap.Poll(g.pressed)); err != nil {
		return fmt.Errorf("executing frame %d: %w", g.runner.Frames(), err)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.offscreen == nil {
		g.offscreen = ebiten.NewImage(display.Width, display.Height)
	}

	vm := g.runner.Interpreter()
	g.offscreen.WritePixels(vm.Screen().RGBA(g.config.Foreground, g.config.Background))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.config.Scale), float64(g.config.Scale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.offscreen, op)

	status := g.status(vm.IsSoundPlaying())
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, 2, 2)
	}
}

// status returns the overlay text, the tone is shown instead of played.
func (g *Game) status(sound bool) string {
	switch {
	case g.paused:
		return "PAUSED"
	case sound:
		return "BEEP"
	default:
		return ""
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return display.Width * g.config.Scale, display.Height * g.config.Scale
}
