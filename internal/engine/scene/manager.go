package scene

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gammafp/phaser-raw/internal/engine/event"
	"github.com/gammafp/phaser-raw/internal/engine/loader"
)

// ErrDuplicateKey is returned when a scene is admitted under a key that is
// already live. It indicates a programming error and aborts the admission.
var ErrDuplicateKey = errors.New("scene key already in use")

// SystemSceneKey is the reserved key of the manager's internal bookkeeping
// scene. It is created at boot outside the public admission path.
const SystemSceneKey = "__SYSTEM"

// EventReady is the runtime event that triggers the manager's first boot.
const EventReady = "ready"

type pendingScene struct {
	key       string
	spec      any
	autoStart bool
	data      Data
}

type bootEntry struct {
	autoStart bool
	data      Data
}

// queuedOp is one deferred structural operation, replayed in FIFO order at
// the top of the next update.
type queuedOp struct {
	op   string
	keyA string
	keyB string
	data Data
}

// Manager owns the ordered list of all scenes for a game. The list order
// is the z-order for rendering (index 0 draws first, at the bottom);
// updates walk it in reverse. Structural mutations requested while a frame
// pass is in flight are deferred through the operation queue so both
// passes always see the same list.
type Manager struct {
	scenes []*Scene
	keys   map[string]*Scene

	// pending holds admissions requested before boot or mid-iteration.
	pending []pendingScene
	// toStart collects keys to start once pending admissions resolve.
	toStart []string
	// queue holds structural ops deferred while isProcessing.
	queue []queuedOp
	// bootData stages data/autostart for scenes named before boot.
	bootData map[string]*bootEntry

	// isProcessing spans one frame's update and render pass.
	isProcessing bool
	isBooted     bool
	destroyed    bool

	systemScene *Scene
}

// NewManager creates a manager and registers its one-time boot against the
// runtime's ready event. Scenes passed here are staged as pending and
// admitted at boot, with the first one autostarted unless another entry's
// config claims activity.
func NewManager(runtimeEvents *event.Emitter, specs ...any) *Manager {
	m := &Manager{
		keys:     make(map[string]*Scene),
		bootData: make(map[string]*bootEntry),
	}
	for i, spec := range specs {
		m.pending = append(m.pending, pendingScene{
			key:       fmt.Sprintf("default-%d", i),
			spec:      spec,
			autoStart: i == 0,
		})
	}
	if runtimeEvents != nil {
		runtimeEvents.Once(EventReady, func(...any) { m.BootQueue() })
	}
	return m
}

// IsBooted reports whether first-time setup has run.
func (m *Manager) IsBooted() bool {
	return m.isBooted
}

// IsProcessing reports whether a frame pass is in flight.
func (m *Manager) IsProcessing() bool {
	return m.isProcessing
}

// BootQueue performs the manager's first-time setup: creates the internal
// system scene, then admits every scene staged before boot in original
// order. Runs once; later calls are no-ops.
func (m *Manager) BootQueue() {
	if m.isBooted {
		return
	}

	// The system scene hosts manager-level bookkeeping. It bypasses the
	// public admission path and never appears in the scene list.
	m.systemScene = &Scene{}
	attachSystems(m.systemScene, m, newSettings(SystemSceneKey, Config{}))
	m.systemScene.Sys.Init()

	pending := m.pending
	m.pending = nil

	for _, entry := range pending {
		sc, err := m.admit(entry.key, entry.spec, entry.data)
		if err != nil {
			log.Printf("scene: boot admission of %q failed: %v", entry.key, err)
			continue
		}
		key := sc.Sys.Settings.Key

		if staged, ok := m.bootData[key]; ok {
			if staged.data != nil {
				sc.Sys.Settings.Data = staged.data
			}
			if staged.autoStart {
				entry.autoStart = true
			}
		}
		if entry.autoStart || sc.Sys.Settings.Active {
			m.toStart = append(m.toStart, key)
		}
	}

	m.isBooted = true
	m.bootData = make(map[string]*bootEntry)

	starts := m.toStart
	m.toStart = nil
	for _, key := range starts {
		m.Start(key, nil)
	}
}

// Add admits a scene under key. The descriptor may be an existing *Scene,
// a Config, a constructor func() *Scene, or nil for an empty scene.
//
// Before boot, or while a frame pass is in flight, the request is staged
// and (nil, nil) is returned; the scene is created at the next safe point.
// A duplicate key is a configuration error and aborts the admission.
func (m *Manager) Add(key string, spec any, autoStart bool, data Data) (*Scene, error) {
	if m.isProcessing || !m.isBooted {
		m.pending = append(m.pending, pendingScene{key: key, spec: spec, autoStart: autoStart, data: data})
		if !m.isBooted {
			m.stageBootData(key, false, data)
		}
		return nil, nil
	}

	sc, err := m.admit(key, spec, data)
	if err != nil {
		return nil, err
	}

	if autoStart || sc.Sys.Settings.Active {
		if len(m.pending) > 0 {
			// Other admissions are still staged; starting now would jump
			// the insertion order.
			m.toStart = append(m.toStart, sc.Sys.Settings.Key)
		} else {
			m.Start(sc.Sys.Settings.Key, nil)
		}
	}
	return sc, nil
}

// admit runs the real admission algorithm: resolve the key, normalize the
// descriptor into a Scene, register it and inject its data.
func (m *Manager) admit(key string, spec any, data Data) (*Scene, error) {
	sc, key, err := m.buildScene(key, spec)
	if err != nil {
		return nil, err
	}

	m.keys[key] = sc
	m.scenes = append(m.scenes, sc)

	if data != nil {
		sc.Sys.Settings.Data = data
	}
	return sc, nil
}

// buildScene normalizes one of the four descriptor shapes into a Scene
// with attached, initialised Systems.
func (m *Manager) buildScene(key string, spec any) (*Scene, string, error) {
	var (
		sc  *Scene
		cfg Config
	)

	switch v := spec.(type) {
	case *Scene:
		sc = v
	case Config:
		cfg = v
		sc = &Scene{
			InitFunc:    cfg.Init,
			PreloadFunc: cfg.Preload,
			CreateFunc:  cfg.Create,
			UpdateFunc:  cfg.Update,
			RenderFunc:  cfg.Render,
		}
	case func() *Scene:
		sc = v()
	case nil:
		sc = &Scene{}
	default:
		return nil, "", fmt.Errorf("scene: unsupported descriptor type %T", spec)
	}
	if sc == nil {
		return nil, "", fmt.Errorf("scene: descriptor for %q produced no scene", key)
	}

	if cfg.Key != "" {
		key = cfg.Key
	}
	if key == "" {
		key = "scene-" + uuid.NewString()[:8]
	}
	if _, exists := m.keys[key]; exists {
		return nil, "", fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}

	if sc.Sys == nil {
		attachSystems(sc, m, newSettings(key, cfg))
	} else {
		sc.Sys.Settings.Key = key
		sc.Sys.manager = m
	}
	sc.Sys.Init()

	if len(cfg.Extend) > 0 {
		sc.Sys.Data.Merge(cfg.Extend)
	}
	return sc, key, nil
}

func (m *Manager) stageBootData(key string, autoStart bool, data Data) {
	entry, ok := m.bootData[key]
	if !ok {
		entry = &bootEntry{}
		m.bootData[key] = entry
	}
	if autoStart {
		entry.autoStart = true
	}
	if data != nil {
		entry.data = data
	}
}

// ProcessQueue flushes deferred work at the top of a frame: pending
// admissions first (through the real admission path, so duplicate-key
// checks apply), then the collected starts, then the operation queue in
// FIFO order. Ordering ops therefore always act on a fully-admitted list.
func (m *Manager) ProcessQueue() {
	if len(m.pending) == 0 && len(m.queue) == 0 {
		return
	}

	if len(m.pending) > 0 {
		// m.pending stays populated during the drain so that each Add
		// defers its autostart into toStart, preserving insertion order.
		for _, entry := range m.pending {
			if _, err := m.Add(entry.key, entry.spec, entry.autoStart, entry.data); err != nil {
				log.Printf("scene: deferred admission of %q failed: %v", entry.key, err)
			}
		}
		m.pending = nil
		starts := m.toStart
		m.toStart = nil
		for _, key := range starts {
			m.Start(key, nil)
		}
	}

	queue := m.queue
	m.queue = nil
	for _, entry := range queue {
		m.dispatch(entry)
	}
}

// dispatch replays one queued operation.
func (m *Manager) dispatch(entry queuedOp) {
	switch entry.op {
	case "remove":
		m.Remove(entry.keyA)
	case "bringToTop":
		m.BringToTop(entry.keyA)
	case "sendToBack":
		m.SendToBack(entry.keyA)
	case "moveUp":
		m.MoveUp(entry.keyA)
	case "moveDown":
		m.MoveDown(entry.keyA)
	case "moveAbove":
		m.MoveAbove(entry.keyA, entry.keyB)
	case "moveBelow":
		m.MoveBelow(entry.keyA, entry.keyB)
	case "swapPosition":
		m.SwapPosition(entry.keyA, entry.keyB)
	case "start":
		m.Start(entry.keyA, entry.data)
	case "stop":
		m.Stop(entry.keyA, entry.data)
	default:
		log.Printf("scene: unknown queued op %q", entry.op)
	}
}

func (m *Manager) queueOp(op, keyA, keyB string, data Data) *Manager {
	m.queue = append(m.queue, queuedOp{op: op, keyA: keyA, keyB: keyB, data: data})
	return m
}

// Update runs one simulation step: flushes the deferred queues, then steps
// every updatable scene in reverse list order. Marks the start of the
// mutation-unsafe window that Render closes.
func (m *Manager) Update(time, delta float64) {
	if m.destroyed {
		return
	}
	m.ProcessQueue()
	m.isProcessing = true

	for i := len(m.scenes) - 1; i >= 0; i-- {
		sys := m.scenes[i].Sys
		if sys.Settings.Status > StatusStart && sys.Settings.Status <= StatusRunning {
			sys.Step(time, delta)
		}
	}
}

// Render draws every visible scene in forward list order (index 0 at the
// bottom) and closes the mutation-unsafe window.
func (m *Manager) Render(screen *ebiten.Image) {
	if m.destroyed {
		return
	}
	for _, sc := range m.scenes {
		sys := sc.Sys
		if sys.Settings.Visible && sys.Settings.Status >= StatusLoading && sys.Settings.Status < StatusSleeping {
			sys.Render(screen)
		}
	}
	m.isProcessing = false
}

// Start launches the scene under key. A scene that is already starting is
// left alone; a live scene is shut down first and recycled; an idle scene
// starts directly. When the scene declares a preload pack the boot
// sequence waits for the pack to load.
func (m *Manager) Start(key string, data Data) *Manager {
	if !m.isBooted {
		m.stageBootData(key, true, data)
		return m
	}

	sc := m.GetScene(key)
	if sc == nil {
		log.Printf("scene: start of unknown key %q ignored", key)
		return m
	}
	sys := sc.Sys
	status := sys.Settings.Status

	switch {
	case status >= StatusStart && status <= StatusCreating:
		// Already starting.
		return m
	case status >= StatusRunning && status <= StatusSleeping:
		sys.Shutdown(nil)
		sys.Start(data)
	default:
		sys.Start(data)
		if sys.Load != nil {
			sys.Load.Reset()
		}
	}

	// A declared payload pack loads before the boot sequence runs.
	if sys.Load != nil && sys.Settings.Pack != nil {
		sys.Load.Reset()
		if sys.Load.AddPack(sys.Settings.Pack) {
			sys.Settings.Status = StatusLoading
			sys.Load.Events.Once(loader.EventComplete, func(...any) {
				m.payloadComplete(sc)
			})
			sys.Load.Start()
			return m
		}
	}

	m.bootScene(sc)
	return m
}

func (m *Manager) payloadComplete(sc *Scene) {
	m.bootScene(sc)
}

// bootScene drives init and preload, then creates the scene either
// immediately or once the loader finishes.
func (m *Manager) bootScene(sc *Scene) {
	sys := sc.Sys
	settings := sys.Settings
	sys.installUpdate(nil)

	if sc.InitFunc != nil {
		sc.InitFunc(settings.Data)
		settings.Status = StatusInit
		if settings.IsTransitioning {
			sys.Events.Emit(EventTransitionInit, settings.TransitionFrom, settings.TransitionDuration)
		}
	}

	if sys.Load != nil {
		sys.Load.Reset()
	}

	if sys.Load != nil && sc.PreloadFunc != nil {
		sc.PreloadFunc()
		if !sys.Load.HasPending() {
			m.create(sc)
		} else {
			settings.Status = StatusLoading
			sys.Load.Events.Once(loader.EventComplete, func(...any) {
				m.loadComplete(sc)
			})
			sys.Load.Start()
		}
	} else {
		m.create(sc)
	}
}

func (m *Manager) loadComplete(sc *Scene) {
	m.create(sc)
}

// create runs the scene's create hook and promotes it to running. If the
// hook destroyed its own scene the promotion is abandoned.
func (m *Manager) create(sc *Scene) {
	sys := sc.Sys
	settings := sys.Settings

	if sc.CreateFunc != nil {
		settings.Status = StatusCreating
		sc.CreateFunc(settings.Data)
		if settings.Status == StatusDestroyed {
			return
		}
	}

	if settings.IsTransitioning {
		sys.Events.Emit(EventTransitionStart, settings.TransitionFrom, settings.TransitionDuration)
	}

	sys.installUpdate(sc.UpdateFunc)
	settings.Status = StatusRunning
	sys.Events.Emit(EventCreate, sc)
}

// Stop shuts the scene down, destroying its working state. Refused while
// the scene is transitioning; a no-op if already shut down.
func (m *Manager) Stop(key string, data Data) *Manager {
	if m.isProcessing {
		return m.queueOp("stop", key, "", data)
	}
	sc := m.GetScene(key)
	if sc == nil || sc.Sys.IsTransitioning() || sc.Sys.Settings.Status == StatusShutdown {
		return m
	}
	sc.Sys.Shutdown(data)
	return m
}

// Run makes the scene live by whatever means its current state needs:
// waking it, resuming it, or starting it (recycling a running scene).
// A scene that is still pending admission gets a queued start instead.
func (m *Manager) Run(key string, data Data) *Manager {
	sc := m.GetScene(key)
	if sc == nil {
		for _, entry := range m.pending {
			if entry.key == key || keyOf(entry.spec) == key {
				m.queueOp("start", key, "", data)
				break
			}
		}
		return m
	}

	switch {
	case sc.Sys.IsSleeping():
		m.Wake(key, data)
	case sc.Sys.IsPaused():
		m.Resume(key, data)
	default:
		m.Start(key, data)
	}
	return m
}

// keyOf extracts the declared key of a descriptor, if it has one.
func keyOf(spec any) string {
	switch v := spec.(type) {
	case Config:
		return v.Key
	case *Scene:
		return v.Key()
	}
	return ""
}

// Pause suspends the scene's per-frame update.
func (m *Manager) Pause(key string, data Data) *Manager {
	if sc := m.GetScene(key); sc != nil {
		sc.Sys.Pause(data)
	}
	return m
}

// Resume returns a paused scene to running.
func (m *Manager) Resume(key string, data Data) *Manager {
	if sc := m.GetScene(key); sc != nil {
		sc.Sys.Resume(data)
	}
	return m
}

// Sleep parks the scene, keeping its state. Refused mid-transition.
func (m *Manager) Sleep(key string, data Data) *Manager {
	if sc := m.GetScene(key); sc != nil && !sc.Sys.IsTransitioning() {
		sc.Sys.Sleep(data)
	}
	return m
}

// Wake returns a sleeping scene to running, handing it data.
func (m *Manager) Wake(key string, data Data) *Manager {
	if sc := m.GetScene(key); sc != nil {
		sc.Sys.Wake(data)
	}
	return m
}

// Switch sleeps one scene and makes another live: a sleeping target is
// woken with data, anything else is started fresh. No-op when either key
// is missing or both name the same scene.
func (m *Manager) Switch(from, to string, data Data) *Manager {
	sceneA := m.GetScene(from)
	sceneB := m.GetScene(to)
	if sceneA == nil || sceneB == nil || sceneA == sceneB {
		return m
	}

	m.Sleep(from, nil)
	if sceneB.Sys.IsSleeping() {
		m.Wake(to, data)
	} else {
		m.Start(to, data)
	}
	return m
}

// Remove deletes the scene from the manager and destroys it. Deferred
// while a frame pass is in flight; refused mid-transition.
func (m *Manager) Remove(key string) *Manager {
	if m.isProcessing {
		return m.queueOp("remove", key, "", nil)
	}

	sc := m.GetScene(key)
	if sc == nil || sc.Sys.IsTransitioning() {
		return m
	}

	index := m.indexOf(sc)
	if index < 0 {
		return m
	}
	sceneKey := sc.Sys.Settings.Key
	delete(m.keys, sceneKey)
	m.scenes = append(m.scenes[:index], m.scenes[index+1:]...)
	for i, k := range m.toStart {
		if k == sceneKey {
			m.toStart = append(m.toStart[:i], m.toStart[i+1:]...)
			break
		}
	}
	sc.Sys.Destroy()
	return m
}

// GetScene returns the live scene under key, or nil.
func (m *Manager) GetScene(key string) *Scene {
	return m.keys[key]
}

// GetAt returns the scene at the given z-order index, or nil.
func (m *Manager) GetAt(index int) *Scene {
	if index < 0 || index >= len(m.scenes) {
		return nil
	}
	return m.scenes[index]
}

// GetIndex returns the z-order index of the scene under key, or -1.
func (m *Manager) GetIndex(key string) int {
	sc := m.GetScene(key)
	if sc == nil {
		return -1
	}
	return m.indexOf(sc)
}

// SceneCount returns how many scenes are live.
func (m *Manager) SceneCount() int {
	return len(m.scenes)
}

// GetScenes returns the live scenes in z-order. When activeOnly is set
// only scenes whose update hook runs are included.
func (m *Manager) GetScenes(activeOnly bool) []*Scene {
	out := make([]*Scene, 0, len(m.scenes))
	for _, sc := range m.scenes {
		if !activeOnly || sc.Sys.IsActive() {
			out = append(out, sc)
		}
	}
	return out
}

func (m *Manager) indexOf(sc *Scene) int {
	for i, s := range m.scenes {
		if s == sc {
			return i
		}
	}
	return -1
}

// IsActive reports whether the scene under key is running and active.
func (m *Manager) IsActive(key string) bool {
	if sc := m.GetScene(key); sc != nil {
		return sc.Sys.IsActive()
	}
	return false
}

// IsPaused reports whether the scene under key is paused.
func (m *Manager) IsPaused(key string) bool {
	if sc := m.GetScene(key); sc != nil {
		return sc.Sys.IsPaused()
	}
	return false
}

// IsSleeping reports whether the scene under key is sleeping.
func (m *Manager) IsSleeping(key string) bool {
	if sc := m.GetScene(key); sc != nil {
		return sc.Sys.IsSleeping()
	}
	return false
}

// IsVisible reports whether the scene under key takes part in rendering.
func (m *Manager) IsVisible(key string) bool {
	if sc := m.GetScene(key); sc != nil {
		return sc.Sys.IsVisible()
	}
	return false
}

// BringToTop moves the scene to the end of the render order (drawn last,
// on top). Deferred while a frame pass is in flight.
func (m *Manager) BringToTop(key string) *Manager {
	if m.isProcessing {
		return m.queueOp("bringToTop", key, "", nil)
	}
	index := m.GetIndex(key)
	if index < 0 || index == len(m.scenes)-1 {
		return m
	}
	sc := m.scenes[index]
	m.scenes = append(m.scenes[:index], m.scenes[index+1:]...)
	m.scenes = append(m.scenes, sc)
	return m
}

// SendToBack moves the scene to the start of the render order (drawn
// first, at the bottom). Deferred while a frame pass is in flight.
func (m *Manager) SendToBack(key string) *Manager {
	if m.isProcessing {
		return m.queueOp("sendToBack", key, "", nil)
	}
	index := m.GetIndex(key)
	if index <= 0 {
		return m
	}
	sc := m.scenes[index]
	m.scenes = append(m.scenes[:index], m.scenes[index+1:]...)
	m.scenes = append([]*Scene{sc}, m.scenes...)
	return m
}

// MoveUp swaps the scene with its neighbour one step up the render order.
// No-op at the top.
func (m *Manager) MoveUp(key string) *Manager {
	if m.isProcessing {
		return m.queueOp("moveUp", key, "", nil)
	}
	index := m.GetIndex(key)
	if index < 0 || index >= len(m.scenes)-1 {
		return m
	}
	m.scenes[index], m.scenes[index+1] = m.scenes[index+1], m.scenes[index]
	return m
}

// MoveDown swaps the scene with its neighbour one step down the render
// order. No-op at the bottom.
func (m *Manager) MoveDown(key string) *Manager {
	if m.isProcessing {
		return m.queueOp("moveDown", key, "", nil)
	}
	index := m.GetIndex(key)
	if index <= 0 {
		return m
	}
	m.scenes[index], m.scenes[index-1] = m.scenes[index-1], m.scenes[index]
	return m
}

// MoveAbove moves the scene under keyA so it renders directly above the
// scene under keyB. No-op if keyA already renders above keyB, or when
// either key is missing or both are the same.
func (m *Manager) MoveAbove(keyA, keyB string) *Manager {
	if keyA == keyB {
		return m
	}
	if m.isProcessing {
		return m.queueOp("moveAbove", keyA, keyB, nil)
	}
	indexA := m.GetIndex(keyA)
	indexB := m.GetIndex(keyB)
	if indexA < 0 || indexB < 0 || indexA > indexB {
		return m
	}
	sc := m.scenes[indexA]
	m.scenes = append(m.scenes[:indexA], m.scenes[indexA+1:]...)
	// Removal shifted keyB left by one, so inserting at its original
	// index lands directly above it.
	m.scenes = append(m.scenes[:indexB], append([]*Scene{sc}, m.scenes[indexB:]...)...)
	return m
}

// MoveBelow moves the scene under keyA so it renders directly below the
// scene under keyB. No-op if keyA already renders below keyB, or when
// either key is missing or both are the same.
func (m *Manager) MoveBelow(keyA, keyB string) *Manager {
	if keyA == keyB {
		return m
	}
	if m.isProcessing {
		return m.queueOp("moveBelow", keyA, keyB, nil)
	}
	indexA := m.GetIndex(keyA)
	indexB := m.GetIndex(keyB)
	if indexA < 0 || indexB < 0 || indexA < indexB {
		return m
	}
	sc := m.scenes[indexA]
	// keyA sits after keyB, so its removal leaves keyB's index intact.
	m.scenes = append(m.scenes[:indexA], m.scenes[indexA+1:]...)
	m.scenes = append(m.scenes[:indexB], append([]*Scene{sc}, m.scenes[indexB:]...)...)
	return m
}

// SwapPosition exchanges the z-order positions of two scenes.
func (m *Manager) SwapPosition(keyA, keyB string) *Manager {
	if keyA == keyB {
		return m
	}
	if m.isProcessing {
		return m.queueOp("swapPosition", keyA, keyB, nil)
	}
	indexA := m.GetIndex(keyA)
	indexB := m.GetIndex(keyB)
	if indexA < 0 || indexB < 0 {
		return m
	}
	m.scenes[indexA], m.scenes[indexB] = m.scenes[indexB], m.scenes[indexA]
	return m
}

// Destroy tears down every scene and the manager itself. The manager is
// unusable afterwards: Update and Render become no-ops.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	for _, sc := range m.scenes {
		sc.Sys.Destroy()
	}
	if m.systemScene != nil {
		m.systemScene.Sys.Destroy()
		m.systemScene = nil
	}
	m.scenes = nil
	m.keys = make(map[string]*Scene)
	m.pending = nil
	m.toStart = nil
	m.queue = nil
	m.destroyed = true
}
