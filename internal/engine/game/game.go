// Package game provides the engine's frame driver. Game implements
// ebiten.Game and drives the scene manager's update and render passes once
// per tick.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gammafp/phaser-raw/internal/engine/audio"
	"github.com/gammafp/phaser-raw/internal/engine/event"
	"github.com/gammafp/phaser-raw/internal/engine/scene"
)

// Config describes the runtime window and frame rate, plus the scenes to
// stage for the manager's first boot.
type Config struct {
	Title     string
	Width     int
	Height    int
	Scale     int
	Framerate int

	// Scenes are staged as pending and admitted at boot; the first one is
	// autostarted unless another declares itself active.
	Scenes []any
}

// Game is the engine runtime. It owns the global event emitter, the scene
// manager and the shared audio manager, and implements ebiten.Game.
type Game struct {
	// Events is the runtime emitter; the ready event fires here once.
	Events *event.Emitter
	// Scenes is the scene manager driven by this runtime.
	Scenes *scene.Manager
	// Audio is the shared audio manager. Nil until SetAudio.
	Audio *audio.Manager

	cfg     Config
	booted  bool
	elapsed float64
	delta   float64
}

// New creates a runtime from cfg. Nothing runs until Run (or the first
// Update in tests).
func New(cfg Config) *Game {
	if cfg.Framerate <= 0 {
		cfg.Framerate = 60
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	events := event.NewEmitter()
	return &Game{
		Events: events,
		Scenes: scene.NewManager(events, cfg.Scenes...),
		cfg:    cfg,
		delta:  1000.0 / float64(cfg.Framerate),
	}
}

// SetAudio attaches the shared audio manager.
func (g *Game) SetAudio(a *audio.Manager) {
	g.Audio = a
}

// Update advances the clock one tick and runs the scene manager's update
// pass. The first call emits the ready event, which boots the manager.
// Implements ebiten.Game.
func (g *Game) Update() error {
	if !g.booted {
		g.booted = true
		g.Events.Emit(scene.EventReady)
	}
	g.elapsed += g.delta
	g.Scenes.Update(g.elapsed, g.delta)
	return nil
}

// Draw runs the scene manager's render pass. Implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Scenes.Render(screen)
}

// Layout returns the logical screen size. Implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Now returns the runtime clock in milliseconds since boot.
func (g *Game) Now() float64 {
	return g.elapsed
}

// Delta returns the fixed per-tick delta in milliseconds.
func (g *Game) Delta() float64 {
	return g.delta
}

// Run opens the window and blocks in the ebiten main loop.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.Width*g.cfg.Scale, g.cfg.Height*g.cfg.Scale)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetTPS(g.cfg.Framerate)
	return ebiten.RunGame(g)
}

// Destroy tears down the scene manager. The runtime is unusable after.
func (g *Game) Destroy() {
	g.Scenes.Destroy()
	g.Events.RemoveAll()
}
