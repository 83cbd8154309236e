package scene

import "github.com/gammafp/phaser-raw/internal/engine/loader"

// Data is the opaque payload handed to a scene's init and create hooks.
type Data map[string]any

// Settings is the per-scene configuration and status record. It is owned
// by the scene's Systems; outside code reads it but only Systems and the
// Manager mutate it.
type Settings struct {
	// Key uniquely identifies the scene within a Manager.
	Key string

	Status  Status
	Active  bool
	Visible bool

	// Transition state. While IsTransitioning is true the manager refuses
	// remove/sleep/stop for this scene.
	IsTransitioning    bool
	TransitionFrom     *Scene
	TransitionDuration float64

	// Data is injected into the init and create hooks.
	Data Data

	// Pack, when set, is loaded through the scene's loader before the
	// boot sequence runs.
	Pack *loader.Pack
}

func newSettings(key string, cfg Config) *Settings {
	visible := true
	if cfg.Visible != nil {
		visible = *cfg.Visible
	}
	return &Settings{
		Key:     key,
		Status:  StatusPending,
		Active:  cfg.Active,
		Visible: visible,
		Data:    cfg.Data,
		Pack:    cfg.Pack,
	}
}
