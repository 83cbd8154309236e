package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gammafp/phaser-raw/internal/engine/scene"
)

type pauseScene struct {
	a *app
}

// newPauseScene builds the pause overlay. It draws above the frozen play
// scene and sleeps itself once the player resumes, so the next pause only
// has to wake it.
func newPauseScene(a *app) *scene.Scene {
	p := &pauseScene{a: a}
	return &scene.Scene{
		UpdateFunc: p.update,
		RenderFunc: p.render,
	}
}

func (p *pauseScene) update(time, delta float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		p.a.g.Scenes.Resume("play", nil).Sleep("pause", nil)
	}
}

func (p *pauseScene) render(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{0, 0, 0, 0xa0}, false)
	ebitenutil.DebugPrintAt(screen, "PAUSED", w/2-20, h/2-12)
	ebitenutil.DebugPrintAt(screen, "Press ENTER to resume", w/2-64, h/2+4)
}
