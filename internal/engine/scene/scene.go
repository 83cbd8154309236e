// Package scene implements the engine's scene lifecycle: the per-scene
// settings record and systems container, the user-facing Scene unit, and
// the Manager that owns the ordered scene list and drives the per-frame
// update and render passes.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gammafp/phaser-raw/internal/engine/loader"
)

// Scene pairs a Systems instance with the optional user hooks. All hooks
// may be nil; the manager skips whichever are absent.
type Scene struct {
	// Sys is the scene's lifecycle engine. It is attached by the manager
	// at admission time.
	Sys *Systems

	// InitFunc runs first on every (re)start, before any loading.
	InitFunc func(data Data)
	// PreloadFunc queues loader work. When it leaves the loader with
	// pending jobs the scene enters StatusLoading until they finish.
	PreloadFunc func()
	// CreateFunc runs once loading is done, immediately before the scene
	// goes to StatusRunning.
	CreateFunc func(data Data)
	// UpdateFunc is installed as the live per-frame hook after a
	// successful create.
	UpdateFunc func(time, delta float64)
	// RenderFunc draws the scene. The renderer handle is passed through
	// untouched.
	RenderFunc func(screen *ebiten.Image)
}

// Config is the plain-descriptor form a scene can be admitted from. The
// zero value is a valid config: hidden-off, inactive, auto-generated key.
type Config struct {
	// Key identifies the scene. Empty means the manager assigns one.
	Key string
	// Active marks the scene to be started as soon as it is admitted.
	Active bool
	// Visible controls the render pass. Nil defaults to visible.
	Visible *bool
	// Data is injected into init/create on the first start.
	Data Data
	// Pack is loaded through the scene loader before the boot sequence.
	Pack *loader.Pack
	// Extend is merged into the scene's data store at admission.
	Extend map[string]any

	Init    func(data Data)
	Preload func()
	Create  func(data Data)
	Update  func(time, delta float64)
	Render  func(screen *ebiten.Image)
}

// Key returns the scene's key, or "" before the scene is admitted.
func (s *Scene) Key() string {
	if s.Sys == nil {
		return ""
	}
	return s.Sys.Settings.Key
}
