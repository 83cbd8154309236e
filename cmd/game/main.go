// Command game is a small collect-the-gold demo built on the engine. It
// exists to exercise the scene lifecycle end to end: a boot scene that
// preloads through the payload pack path, a menu, a play scene with a
// tilemap and game objects, and a pause overlay driven through the scene
// manager's pause/run/sleep operations.
package main

import (
	"embed"
	"io/fs"
	"log"

	"github.com/gammafp/phaser-raw/internal/engine/audio"
	"github.com/gammafp/phaser-raw/internal/engine/game"
	"github.com/gammafp/phaser-raw/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

// app carries the state the scenes share: the runtime, the config loader
// and whatever the boot scene loaded.
type app struct {
	g      *game.Game
	cfg    *config.GameConfig
	loader *config.Loader

	// level is loaded by the boot scene's payload pack.
	level *config.LevelConfig
	// lastScore survives play-scene restarts for the menu to show.
	lastScore int
}

func main() {
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	loader := config.NewFSLoader(fsys)
	cfg, err := loader.LoadGame()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	a := &app{cfg: cfg, loader: loader}
	a.g = game.New(game.Config{
		Title:     cfg.Title,
		Width:     cfg.Display.ScreenWidth,
		Height:    cfg.Display.ScreenHeight,
		Scale:     cfg.Display.Scale,
		Framerate: cfg.Display.Framerate,
	})

	audioMgr := audio.NewManager()
	audioMgr.SetVolume(cfg.Volume)
	if err := audioMgr.Load(configFS, "pickup", "configs/sfx/pickup.wav"); err != nil {
		// The demo ships without sounds; playback calls become no-ops.
		log.Printf("No pickup sound loaded: %v", err)
	}
	a.g.SetAudio(audioMgr)

	// Staged before boot; the manager admits them on the ready signal and
	// autostarts the boot scene.
	if _, err := a.g.Scenes.Add("boot", newBootScene(a), true, nil); err != nil {
		log.Fatalf("Failed to add boot scene: %v", err)
	}
	if _, err := a.g.Scenes.Add("menu", newMenuScene(a), false, nil); err != nil {
		log.Fatalf("Failed to add menu scene: %v", err)
	}
	if _, err := a.g.Scenes.Add("play", newPlayScene(a), false, nil); err != nil {
		log.Fatalf("Failed to add play scene: %v", err)
	}
	if _, err := a.g.Scenes.Add("pause", newPauseScene(a), false, nil); err != nil {
		log.Fatalf("Failed to add pause scene: %v", err)
	}

	if err := a.g.Run(); err != nil {
		log.Fatal(err)
	}
}
