package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gammafp/phaser-raw/internal/engine/display"
	"github.com/gammafp/phaser-raw/internal/engine/scene"
)

type menuScene struct {
	a  *app
	bg color.RGBA
}

// newMenuScene builds the title scene. It sleeps while the play scene
// runs and wakes with the final score when a round ends.
func newMenuScene(a *app) *scene.Scene {
	m := &menuScene{a: a}
	return &scene.Scene{
		InitFunc:   m.init,
		UpdateFunc: m.update,
		RenderFunc: m.render,
	}
}

func (m *menuScene) init(scene.Data) {
	bg, err := display.ParseHex(m.a.cfg.Display.Background)
	if err != nil {
		bg = color.RGBA{A: 0xff}
	}
	m.bg = bg
}

func (m *menuScene) update(time, delta float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.a.g.Scenes.Switch("menu", "play", scene.Data{"level": m.a.level})
	}
}

func (m *menuScene) render(screen *ebiten.Image) {
	screen.Fill(m.bg)
	ebitenutil.DebugPrintAt(screen, m.a.cfg.Title, 16, 16)
	ebitenutil.DebugPrintAt(screen, "Press SPACE to play", 16, 40)
	if m.a.lastScore > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Last score: %d", m.a.lastScore), 16, 56)
	}
}
