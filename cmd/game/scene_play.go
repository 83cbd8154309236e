package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gammafp/phaser-raw/internal/engine/display"
	"github.com/gammafp/phaser-raw/internal/engine/gameobject"
	"github.com/gammafp/phaser-raw/internal/engine/scene"
	"github.com/gammafp/phaser-raw/internal/engine/tilemap"
	"github.com/gammafp/phaser-raw/internal/infrastructure/config"
)

type playScene struct {
	a *app

	tiles  *tilemap.Map
	world  *gameobject.GameObject
	player *gameobject.GameObject
	score  int
	total  int
	bg     color.RGBA
}

// newPlayScene builds the round scene: a tile map from the level config,
// a player game object moved by its walk component, and pickups collected
// by touching them. The round ends when every pickup is gone.
func newPlayScene(a *app) *scene.Scene {
	p := &playScene{a: a}
	return &scene.Scene{
		CreateFunc: p.create,
		UpdateFunc: p.update,
		RenderFunc: p.render,
	}
}

// legendFrom translates the level's tile mapping into the tile map's
// legend. Mapping keys are single-rune codes.
func legendFrom(level *config.LevelConfig) tilemap.Legend {
	legend := make(tilemap.Legend, len(level.TileMapping))
	for code, tc := range level.TileMapping {
		runes := []rune(code)
		if len(runes) != 1 {
			log.Printf("Skipping tile code %q: not a single rune", code)
			continue
		}
		var kind tilemap.Kind
		switch tc.Type {
		case "wall":
			kind = tilemap.KindWall
		case "spike":
			kind = tilemap.KindSpike
		case "pickup":
			kind = tilemap.KindPickup
		}
		legend[runes[0]] = tilemap.Tile{Kind: kind, Solid: tc.Solid, Damage: tc.Damage}
	}
	return legend
}

func (p *playScene) create(data scene.Data) {
	level, _ := data["level"].(*config.LevelConfig)
	if level == nil {
		level = p.a.level
	}

	p.tiles = tilemap.New(level.Rows, legendFrom(level), level.TileSize)
	p.tiles.SpawnX = level.PlayerSpawn.X
	p.tiles.SpawnY = level.PlayerSpawn.Y
	p.score = 0
	p.total = len(p.tiles.Find(tilemap.KindPickup))

	bg, err := display.ParseHex(p.a.cfg.Display.Background)
	if err != nil {
		bg = color.RGBA{A: 0xff}
	}
	p.bg = bg

	p.world = gameobject.New("world")
	p.player = gameobject.New("player")
	p.player.Tags = []string{"player"}
	p.player.Transform.X = float64(level.PlayerSpawn.X)
	p.player.Transform.Y = float64(level.PlayerSpawn.Y)
	p.player.AddComponent(&walkComponent{tiles: p.tiles, speed: 96})
	p.world.AddChild(p.player)
	p.world.Start()
}

func (p *playScene) update(time, delta float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.a.g.Scenes.Pause("play", nil).Run("pause", nil)
		return
	}

	p.world.Update(delta)

	size := float64(p.tiles.TileSize - 2)
	cx := int(p.player.Transform.X + size/2)
	cy := int(p.player.Transform.Y + size/2)
	tile := p.tiles.TileAtPixel(cx, cy)

	switch {
	case tile.Kind == tilemap.KindPickup:
		p.tiles.SetTile(cx/p.tiles.TileSize, cy/p.tiles.TileSize, tilemap.Tile{})
		p.score++
		if p.a.g.Audio != nil {
			p.a.g.Audio.Play("pickup")
		}
	case tile.Damage > 0:
		p.player.Transform.X = float64(p.tiles.SpawnX)
		p.player.Transform.Y = float64(p.tiles.SpawnY)
	}

	if p.total > 0 && p.score >= p.total {
		p.a.lastScore = p.score
		p.a.g.Scenes.Stop("play", nil).Run("menu", nil)
	}
}

func (p *playScene) render(screen *ebiten.Image) {
	screen.Fill(p.bg)

	ts := float32(p.tiles.TileSize)
	for y := 0; y < p.tiles.Height; y++ {
		for x := 0; x < p.tiles.Width; x++ {
			tile := p.tiles.TileAt(x, y)
			var c color.RGBA
			switch tile.Kind {
			case tilemap.KindWall:
				c = color.RGBA{0x4a, 0x4e, 0x69, 0xff}
			case tilemap.KindSpike:
				c = color.RGBA{0xe6, 0x39, 0x46, 0xff}
			case tilemap.KindPickup:
				c = color.RGBA{0xff, 0xd6, 0x6b, 0xff}
			default:
				continue
			}
			vector.DrawFilledRect(screen, float32(x)*ts, float32(y)*ts, ts, ts, c, false)
		}
	}

	p.world.Draw(screen)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Gold: %d/%d", p.score, p.total), 4, 4)
}

// walkComponent moves its owner with the arrow keys (or WASD), blocked by
// solid tiles. Each axis resolves separately so the player slides along
// walls.
type walkComponent struct {
	gameobject.BaseComponent

	tiles *tilemap.Map
	speed float64
}

func (w *walkComponent) Update(delta float64) {
	step := w.speed * delta / 1000

	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += step
	}

	owner := w.Owner()
	size := float64(w.tiles.TileSize - 2)
	if dx != 0 && !w.blocked(owner.Transform.X+dx, owner.Transform.Y, size) {
		owner.Transform.X += dx
	}
	if dy != 0 && !w.blocked(owner.Transform.X, owner.Transform.Y+dy, size) {
		owner.Transform.Y += dy
	}
}

// blocked reports whether a box at (x, y) overlaps any solid tile.
func (w *walkComponent) blocked(x, y, size float64) bool {
	return w.tiles.IsSolidAt(int(x), int(y)) ||
		w.tiles.IsSolidAt(int(x+size), int(y)) ||
		w.tiles.IsSolidAt(int(x), int(y+size)) ||
		w.tiles.IsSolidAt(int(x+size), int(y+size))
}

func (w *walkComponent) Draw(screen *ebiten.Image) {
	owner := w.Owner()
	x, y := owner.WorldPosition()
	size := float32(w.tiles.TileSize - 2)
	vector.DrawFilledRect(screen, float32(x), float32(y), size, size, color.RGBA{0xf2, 0xe9, 0xe4, 0xff}, false)
}
