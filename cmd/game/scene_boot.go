package main

import (
	"log"

	"github.com/gammafp/phaser-raw/internal/engine/loader"
	"github.com/gammafp/phaser-raw/internal/engine/scene"
	"github.com/gammafp/phaser-raw/internal/infrastructure/config"
)

// newBootScene builds the boot scene from a plain config. Its level file
// is declared as a payload pack, so the manager loads it before the boot
// sequence and the create hook can rely on it being present.
func newBootScene(a *app) scene.Config {
	return scene.Config{
		Pack: &loader.Pack{Files: []loader.PackFile{
			{Key: "level", Job: func() (any, error) {
				return a.loader.LoadLevel("demo")
			}},
		}},
		Init: func(scene.Data) {
			log.Printf("%s booting", a.cfg.Title)
		},
		Create: func(scene.Data) {
			sys := a.g.Scenes.GetScene("boot").Sys
			level, ok := sys.Load.Assets["level"].(*config.LevelConfig)
			if !ok {
				log.Fatalf("Boot payload did not produce a level")
			}
			a.level = level
		},
		Update: func(time, delta float64) {
			// Hand off on the first live frame; switching inside create
			// would race the scene's own promotion to running.
			a.g.Scenes.Switch("boot", "menu", nil)
		},
	}
}
