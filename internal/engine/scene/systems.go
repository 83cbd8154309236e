package scene

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gammafp/phaser-raw/internal/engine/event"
	"github.com/gammafp/phaser-raw/internal/engine/loader"
)

// Systems is the per-scene lifecycle engine. It owns the scene's injected
// subsystems (loader, event emitter, data store) and the transition
// operations that mutate Settings.Status.
//
// Systems itself does not enforce the manager's ordering rules (such as
// shutdown-before-restart); the Manager calls these methods in the right
// order.
type Systems struct {
	Settings *Settings

	// Events carries the scene's lifecycle events.
	Events *event.Emitter
	// Load is the scene's asset loader. Nil after destroy.
	Load *loader.Loader
	// Data is the scene's key/value store.
	Data *Store

	scene   *Scene
	manager *Manager

	// sceneUpdate is the live per-frame hook. It stays a no-op until the
	// manager installs the user's update after a successful create.
	sceneUpdate func(time, delta float64)
}

func noopUpdate(time, delta float64) {}

// attachSystems wires a Systems instance onto sc. Called exactly once per
// scene, at admission.
func attachSystems(sc *Scene, manager *Manager, settings *Settings) {
	sc.Sys = &Systems{
		Settings:    settings,
		scene:       sc,
		manager:     manager,
		sceneUpdate: noopUpdate,
	}
}

// Init constructs the scene's injected subsystems. Safe to call once;
// subsequent calls are no-ops.
func (s *Systems) Init() {
	if s.Events != nil {
		return
	}
	s.Events = event.NewEmitter()
	s.Load = loader.New()
	s.Data = NewStore()
}

// Manager returns the owning scene manager.
func (s *Systems) Manager() *Manager {
	return s.manager
}

// Scene returns the scene this Systems belongs to.
func (s *Systems) Scene() *Scene {
	return s.scene
}

// Step runs one frame of the scene: pumps the loader so completion
// callbacks land on the tick, then invokes the live update hook.
func (s *Systems) Step(time, delta float64) {
	if s.destroyed() {
		return
	}
	if s.Load != nil {
		s.Load.Update()
	}
	s.sceneUpdate(time, delta)
}

// Render invokes the scene's render hook with the renderer handle.
func (s *Systems) Render(screen *ebiten.Image) {
	if s.destroyed() {
		return
	}
	if s.scene.RenderFunc != nil {
		s.scene.RenderFunc(screen)
	}
}

// Start moves the scene into StatusStart, replacing its injected data and
// resetting the per-frame hook until create re-installs it. The Manager
// guarantees the scene is idle (or freshly shut down) when this runs.
func (s *Systems) Start(data Data) {
	if s.destroyed() {
		return
	}
	if data != nil {
		s.Settings.Data = data
	}
	s.Settings.Status = StatusStart
	s.Settings.Active = true
	s.Settings.Visible = true
	s.sceneUpdate = noopUpdate
	s.Events.Emit(EventStart, s.scene)
}

// Pause suspends the per-frame update of a running scene. No-op unless the
// scene is running.
func (s *Systems) Pause(data Data) {
	if s.destroyed() || s.Settings.Status != StatusRunning {
		return
	}
	s.Settings.Status = StatusPaused
	s.Settings.Active = false
	s.Events.Emit(EventPause, s.scene, data)
}

// Resume returns a paused scene to running. No-op unless paused.
func (s *Systems) Resume(data Data) {
	if s.destroyed() || s.Settings.Status != StatusPaused {
		return
	}
	s.Settings.Status = StatusRunning
	s.Settings.Active = true
	s.Events.Emit(EventResume, s.scene, data)
}

// Sleep parks the scene: no update, no render, but all state is kept.
// Waking restores it exactly where it was, unlike stop/shutdown.
func (s *Systems) Sleep(data Data) {
	if s.destroyed() {
		return
	}
	s.Settings.Status = StatusSleeping
	s.Settings.Active = false
	s.Settings.Visible = false
	s.Events.Emit(EventSleep, s.scene, data)
}

// Wake returns a sleeping scene to running and visible.
func (s *Systems) Wake(data Data) {
	if s.destroyed() {
		return
	}
	s.Settings.Status = StatusRunning
	s.Settings.Active = true
	s.Settings.Visible = true
	s.Events.Emit(EventWake, s.scene, data)
}

// Shutdown tears down the scene's running state: loader listeners are
// dropped, transition flags cleared, status becomes StatusShutdown. Safe
// to call from any live state; the scene can be started again afterwards.
func (s *Systems) Shutdown(data Data) {
	if s.destroyed() {
		return
	}
	if s.Load != nil {
		s.Load.Events.RemoveAll(loader.EventComplete)
		s.Load.Reset()
	}
	s.Settings.IsTransitioning = false
	s.Settings.TransitionFrom = nil
	s.Settings.TransitionDuration = 0
	s.Settings.Status = StatusShutdown
	s.Settings.Active = false
	s.Settings.Visible = false
	s.sceneUpdate = noopUpdate
	s.Events.Emit(EventShutdown, s.scene, data)
}

// Destroy irreversibly releases the scene's subsystems. Every Systems
// method is a no-op afterwards.
func (s *Systems) Destroy() {
	if s.destroyed() {
		return
	}
	s.Events.Emit(EventDestroy, s.scene)
	s.Settings.Status = StatusDestroyed
	s.Settings.Active = false
	s.Settings.Visible = false
	s.sceneUpdate = noopUpdate

	s.Events.RemoveAll()
	if s.Load != nil {
		s.Load.Destroy()
	}
	s.Events = nil
	s.Load = nil
	s.Data = nil
}

// SetVisible toggles the scene's participation in the render pass.
func (s *Systems) SetVisible(visible bool) {
	if s.destroyed() {
		return
	}
	s.Settings.Visible = visible
}

// IsActive reports whether the scene is running and active.
func (s *Systems) IsActive() bool {
	return s.Settings.Status == StatusRunning && s.Settings.Active
}

// IsPaused reports whether the scene is paused.
func (s *Systems) IsPaused() bool {
	return s.Settings.Status == StatusPaused
}

// IsSleeping reports whether the scene is sleeping.
func (s *Systems) IsSleeping() bool {
	return s.Settings.Status == StatusSleeping
}

// IsVisible reports whether the scene takes part in the render pass.
func (s *Systems) IsVisible() bool {
	return s.Settings.Visible
}

// IsTransitioning reports whether the scene is mid-transition. The manager
// refuses remove/sleep/stop while this holds.
func (s *Systems) IsTransitioning() bool {
	return s.Settings.IsTransitioning
}

// destroyed guards every operation against use after Destroy. The Events
// nil check covers a Systems that was never initialised.
func (s *Systems) destroyed() bool {
	return s.Settings.Status == StatusDestroyed || s.Events == nil
}

// installUpdate makes fn the live per-frame hook. The manager calls this
// once create has succeeded.
func (s *Systems) installUpdate(fn func(time, delta float64)) {
	if fn == nil {
		fn = noopUpdate
	}
	s.sceneUpdate = fn
}
