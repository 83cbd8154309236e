package scene

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammafp/phaser-raw/internal/engine/event"
	"github.com/gammafp/phaser-raw/internal/engine/loader"
)

// bootedManager returns a manager that has already performed first-boot,
// so admissions run synchronously.
func bootedManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(nil)
	m.BootQueue()
	require.True(t, m.IsBooted())
	return m
}

func addScene(t *testing.T, m *Manager, key string) *Scene {
	t.Helper()
	sc, err := m.Add(key, Config{}, false, nil)
	require.NoError(t, err)
	require.NotNil(t, sc)
	return sc
}

func order(m *Manager) []string {
	var keys []string
	for i := 0; i < m.SceneCount(); i++ {
		keys = append(keys, m.GetAt(i).Key())
	}
	return keys
}

func TestManager_AddDuplicateKeyFails(t *testing.T) {
	m := bootedManager(t)
	addScene(t, m, "A")

	sc, err := m.Add("A", Config{}, false, nil)

	assert.Nil(t, sc)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 1, m.SceneCount())
}

func TestManager_AddGeneratesKeyWhenMissing(t *testing.T) {
	m := bootedManager(t)

	sc, err := m.Add("", Config{}, false, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, sc.Key())
	assert.Same(t, sc, m.GetScene(sc.Key()))
}

func TestManager_AddDescriptorShapes(t *testing.T) {
	m := bootedManager(t)

	// Existing instance.
	inst := &Scene{}
	got, err := m.Add("instance", inst, false, nil)
	require.NoError(t, err)
	assert.Same(t, inst, got)
	assert.Equal(t, "instance", inst.Key())

	// Plain config, key from the descriptor itself.
	cfgScene, err := m.Add("", Config{Key: "fromConfig"}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "fromConfig", cfgScene.Key())

	// Constructor function.
	ctorScene, err := m.Add("ctor", func() *Scene { return &Scene{} }, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "ctor", ctorScene.Key())

	// Zero-config.
	empty, err := m.Add("empty", nil, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "empty", empty.Key())

	// Anything else is rejected.
	_, err = m.Add("bad", 42, false, nil)
	assert.Error(t, err)
}

func TestManager_ConfigExtendLandsInStore(t *testing.T) {
	m := bootedManager(t)

	sc, err := m.Add("A", Config{Extend: map[string]any{"speed": 2.5}}, false, nil)

	require.NoError(t, err)
	assert.Equal(t, 2.5, sc.Sys.Data.Get("speed"))
}

func TestManager_StartRunsFullBootSequence(t *testing.T) {
	m := bootedManager(t)

	var phases []string
	var initData, createData Data
	sc, err := m.Add("A", Config{
		Init:   func(d Data) { phases = append(phases, "init"); initData = d },
		Create: func(d Data) { phases = append(phases, "create"); createData = d },
		Update: func(time, delta float64) { phases = append(phases, "update") },
	}, false, Data{"score": 5})
	require.NoError(t, err)

	m.Start("A", nil)

	assert.Equal(t, []string{"init", "create"}, phases)
	assert.Equal(t, StatusRunning, sc.Sys.Settings.Status)
	assert.Equal(t, Data{"score": 5}, initData)
	assert.Equal(t, Data{"score": 5}, createData)
	assert.True(t, m.IsActive("A"))

	m.Update(0, 16)
	m.Render(nil)
	assert.Equal(t, []string{"init", "create", "update"}, phases)
}

func TestManager_StartIsIdempotentWhileStarting(t *testing.T) {
	m := bootedManager(t)

	inits := 0
	sc, err := m.Add("A", Config{Init: func(Data) { inits++ }}, false, nil)
	require.NoError(t, err)

	for _, status := range []Status{StatusStart, StatusLoading, StatusCreating} {
		sc.Sys.Settings.Status = status
		m.Start("A", nil)
		assert.Equal(t, status, sc.Sys.Settings.Status, "start must not disturb %v", status)
	}
	assert.Zero(t, inits)
}

func TestManager_StartRecyclesLiveScene(t *testing.T) {
	m := bootedManager(t)

	inits := 0
	sc, err := m.Add("A", Config{Init: func(Data) { inits++ }}, false, nil)
	require.NoError(t, err)

	shutdowns := 0
	sc.Sys.Events.On(EventShutdown, func(...any) { shutdowns++ })

	m.Start("A", nil)
	require.Equal(t, StatusRunning, sc.Sys.Settings.Status)
	require.Equal(t, 1, inits)

	// Restarting a live scene shuts it down first.
	m.Start("A", nil)
	assert.Equal(t, 1, shutdowns)
	assert.Equal(t, 2, inits)
	assert.Equal(t, StatusRunning, sc.Sys.Settings.Status)
}

func TestManager_StartUnknownKeyIsNoop(t *testing.T) {
	m := bootedManager(t)
	assert.Same(t, m, m.Start("ghost", nil))
}

func TestManager_CreateDestroyedMidCallAborts(t *testing.T) {
	m := bootedManager(t)

	created := 0
	sc, err := m.Add("A", Config{
		Create: func(Data) { m.Remove("A") },
		Update: func(time, delta float64) {},
	}, false, nil)
	require.NoError(t, err)
	sc.Sys.Events.On(EventCreate, func(...any) { created++ })

	m.Start("A", nil)

	assert.Equal(t, StatusDestroyed, sc.Sys.Settings.Status)
	assert.Zero(t, created)
	assert.Nil(t, m.GetScene("A"))
}

func TestManager_PreloadDefersCreateUntilLoadComplete(t *testing.T) {
	m := bootedManager(t)

	block := make(chan struct{})
	created := false
	sc := &Scene{}
	sc.PreloadFunc = func() {
		sc.Sys.Load.Enqueue("level", func() (any, error) { <-block; return "data", nil })
	}
	sc.CreateFunc = func(Data) { created = true }

	_, err := m.Add("A", sc, false, nil)
	require.NoError(t, err)

	m.Start("A", nil)
	assert.Equal(t, StatusLoading, sc.Sys.Settings.Status)
	assert.False(t, created)

	close(block)
	require.Eventually(t, func() bool {
		m.Update(0, 16)
		m.Render(nil)
		return sc.Sys.Settings.Status == StatusRunning
	}, 2*time.Second, time.Millisecond)

	assert.True(t, created)
	assert.Equal(t, "data", sc.Sys.Load.Assets["level"])
}

func TestManager_PayloadPackLoadsBeforeBoot(t *testing.T) {
	m := bootedManager(t)

	var phases []string
	pack := &loader.Pack{Files: []loader.PackFile{
		{Key: "boot", Job: func() (any, error) { return "payload", nil }},
	}}
	sc, err := m.Add("A", Config{
		Pack:   pack,
		Init:   func(Data) { phases = append(phases, "init") },
		Create: func(Data) { phases = append(phases, "create") },
	}, false, nil)
	require.NoError(t, err)

	m.Start("A", nil)
	// The boot sequence waits for the payload.
	assert.Equal(t, StatusLoading, sc.Sys.Settings.Status)
	assert.Empty(t, phases)

	require.Eventually(t, func() bool {
		m.Update(0, 16)
		m.Render(nil)
		return sc.Sys.Settings.Status == StatusRunning
	}, 2*time.Second, time.Millisecond)

	assert.Equal(t, []string{"init", "create"}, phases)
	assert.Equal(t, "payload", sc.Sys.Load.Assets["boot"])
}

func TestManager_BootQueueAdmitsStagedScenesInOrder(t *testing.T) {
	events := event.NewEmitter()

	var aPhases []string
	m := NewManager(events,
		Config{Key: "A",
			Init:   func(Data) { aPhases = append(aPhases, "init") },
			Create: func(Data) { aPhases = append(aPhases, "create") },
		},
		Config{Key: "B"},
	)

	// Nothing is admitted before the runtime signals ready.
	assert.Equal(t, 0, m.SceneCount())
	assert.False(t, m.IsBooted())

	events.Emit(EventReady)

	require.True(t, m.IsBooted())
	assert.Equal(t, []string{"A", "B"}, order(m))
	assert.Equal(t, []string{"init", "create"}, aPhases)
	assert.Equal(t, StatusRunning, m.GetScene("A").Sys.Settings.Status)
	// B was not autostarted and stays idle.
	assert.Equal(t, StatusPending, m.GetScene("B").Sys.Settings.Status)
}

func TestManager_StartBeforeBootIsStaged(t *testing.T) {
	events := event.NewEmitter()
	m := NewManager(events, Config{Key: "A"}, Config{Key: "B"})

	var bData Data
	m.Start("B", Data{"lives": 3})
	assert.Equal(t, 0, m.SceneCount())

	events.Emit(EventReady)

	b := m.GetScene("B")
	require.NotNil(t, b)
	assert.Equal(t, StatusRunning, b.Sys.Settings.Status)
	bData = b.Sys.Settings.Data
	assert.Equal(t, Data{"lives": 3}, bData)
}

func TestManager_ConfigActiveAutostartsAtBoot(t *testing.T) {
	events := event.NewEmitter()
	m := NewManager(events, Config{Key: "A"}, Config{Key: "B", Active: true})

	events.Emit(EventReady)

	assert.Equal(t, StatusRunning, m.GetScene("A").Sys.Settings.Status)
	assert.Equal(t, StatusRunning, m.GetScene("B").Sys.Settings.Status)
}

func TestManager_PauseResumeThroughManager(t *testing.T) {
	m := bootedManager(t)
	m.Add("A", Config{}, false, nil)
	m.Start("A", nil)

	m.Pause("A", nil)
	assert.True(t, m.IsPaused("A"))
	assert.False(t, m.IsActive("A"))

	m.Resume("A", nil)
	assert.True(t, m.IsActive("A"))
}

func TestManager_SwitchSleepsFromAndStartsTo(t *testing.T) {
	m := bootedManager(t)

	var bCreateData Data
	m.Add("A", Config{}, false, nil)
	m.Add("B", Config{Create: func(d Data) { bCreateData = d }}, false, nil)
	m.Start("A", nil)

	m.Switch("A", "B", Data{"score": 5})

	assert.True(t, m.IsSleeping("A"))
	assert.True(t, m.IsActive("B"))
	assert.Equal(t, Data{"score": 5}, bCreateData)
}

func TestManager_SwitchWakesSleepingTarget(t *testing.T) {
	m := bootedManager(t)
	m.Add("A", Config{}, false, nil)
	m.Add("B", Config{}, false, nil)
	m.Start("A", nil)
	m.Start("B", nil)
	m.Sleep("B", nil)

	woke := false
	m.GetScene("B").Sys.Events.On(EventWake, func(...any) { woke = true })

	m.Switch("A", "B", nil)

	assert.True(t, m.IsSleeping("A"))
	assert.True(t, m.IsActive("B"))
	assert.True(t, woke)
}

func TestManager_SwitchEdgeCases(t *testing.T) {
	m := bootedManager(t)
	m.Add("A", Config{}, false, nil)
	m.Start("A", nil)

	// Same key and missing keys are all no-ops.
	m.Switch("A", "A", nil)
	assert.True(t, m.IsActive("A"))
	m.Switch("A", "ghost", nil)
	assert.True(t, m.IsActive("A"))
	m.Switch("ghost", "A", nil)
	assert.True(t, m.IsActive("A"))
}

func TestManager_RunDispatchesOnState(t *testing.T) {
	m := bootedManager(t)
	m.Add("A", Config{}, false, nil)

	// Idle: plain start.
	m.Run("A", nil)
	assert.True(t, m.IsActive("A"))

	// Paused: resume.
	m.Pause("A", nil)
	m.Run("A", nil)
	assert.True(t, m.IsActive("A"))

	// Sleeping: wake.
	m.Sleep("A", nil)
	m.Run("A", nil)
	assert.True(t, m.IsActive("A"))
}

func TestManager_RunPendingSceneQueuesStart(t *testing.T) {
	m := bootedManager(t)

	// Stage an admission by requesting it mid-pass.
	m.Update(0, 16)
	_, err := m.Add("A", Config{Key: "A"}, false, nil)
	require.NoError(t, err)
	m.Run("A", nil)
	m.Render(nil)

	// Next flush admits the scene and replays the queued start.
	m.Update(16, 16)
	m.Render(nil)

	require.NotNil(t, m.GetScene("A"))
	assert.True(t, m.IsActive("A"))
}

func TestManager_StopShutsDownScene(t *testing.T) {
	m := bootedManager(t)
	sc := addScene(t, m, "A")
	m.Start("A", nil)

	m.Stop("A", nil)

	assert.Equal(t, StatusShutdown, sc.Sys.Settings.Status)
	// A stopped scene can be started again.
	m.Start("A", nil)
	assert.Equal(t, StatusRunning, sc.Sys.Settings.Status)
}

func TestManager_TransitioningSceneRefusesRemoveSleepStop(t *testing.T) {
	m := bootedManager(t)
	sc := addScene(t, m, "A")
	m.Start("A", nil)
	sc.Sys.Settings.IsTransitioning = true

	m.Sleep("A", nil)
	assert.Equal(t, StatusRunning, sc.Sys.Settings.Status)

	m.Stop("A", nil)
	assert.Equal(t, StatusRunning, sc.Sys.Settings.Status)

	m.Remove("A")
	assert.NotNil(t, m.GetScene("A"))

	sc.Sys.Settings.IsTransitioning = false
	m.Remove("A")
	assert.Nil(t, m.GetScene("A"))
}

func TestManager_RemoveDestroysScene(t *testing.T) {
	m := bootedManager(t)
	sc := addScene(t, m, "A")
	addScene(t, m, "B")
	m.Start("A", nil)

	m.Remove("A")

	assert.Equal(t, StatusDestroyed, sc.Sys.Settings.Status)
	assert.Nil(t, m.GetScene("A"))
	assert.Equal(t, []string{"B"}, order(m))
}

func TestManager_OrderingOps(t *testing.T) {
	setup := func(t *testing.T) *Manager {
		m := bootedManager(t)
		addScene(t, m, "A")
		addScene(t, m, "B")
		addScene(t, m, "C")
		return m
	}

	t.Run("bring to top", func(t *testing.T) {
		m := setup(t)
		m.BringToTop("A")
		assert.Equal(t, []string{"B", "C", "A"}, order(m))
		assert.Equal(t, m.SceneCount()-1, m.GetIndex("A"))
	})

	t.Run("send to back", func(t *testing.T) {
		m := setup(t)
		m.SendToBack("C")
		assert.Equal(t, []string{"C", "A", "B"}, order(m))
		assert.Equal(t, 0, m.GetIndex("C"))
	})

	t.Run("move up and down", func(t *testing.T) {
		m := setup(t)
		m.MoveUp("B")
		assert.Equal(t, []string{"A", "C", "B"}, order(m))
		m.MoveDown("C")
		assert.Equal(t, []string{"C", "A", "B"}, order(m))
		// Boundary no-ops.
		m.MoveUp("B")
		m.MoveDown("C")
		assert.Equal(t, []string{"C", "A", "B"}, order(m))
	})

	t.Run("move above already above is noop", func(t *testing.T) {
		m := setup(t)
		m.MoveAbove("B", "A")
		assert.Equal(t, []string{"A", "B", "C"}, order(m))
	})

	t.Run("move above repositions", func(t *testing.T) {
		m := setup(t)
		m.SwapPosition("A", "B") // [B, A, C]
		m.MoveAbove("B", "A")
		assert.Equal(t, []string{"A", "B", "C"}, order(m))
	})

	t.Run("move above across a gap", func(t *testing.T) {
		m := setup(t)
		m.MoveAbove("A", "C") // A below C, moves directly above it
		assert.Equal(t, []string{"B", "C", "A"}, order(m))
	})

	t.Run("move below", func(t *testing.T) {
		m := setup(t)
		m.MoveBelow("C", "A")
		assert.Equal(t, []string{"C", "A", "B"}, order(m))
		// Already below: no change.
		m.MoveBelow("C", "A")
		assert.Equal(t, []string{"C", "A", "B"}, order(m))
	})

	t.Run("swap position", func(t *testing.T) {
		m := setup(t)
		m.SwapPosition("A", "C")
		assert.Equal(t, []string{"C", "B", "A"}, order(m))
	})

	t.Run("missing or identical keys are noops", func(t *testing.T) {
		m := setup(t)
		m.BringToTop("ghost")
		m.MoveAbove("A", "ghost")
		m.MoveAbove("A", "A")
		m.SwapPosition("B", "B")
		assert.Equal(t, []string{"A", "B", "C"}, order(m))
	})
}

func TestManager_RemoveDuringUpdateIsDeferred(t *testing.T) {
	m := bootedManager(t)

	_, err := m.Add("A", Config{
		Update: func(time, delta float64) { m.Remove("B") },
	}, true, nil)
	require.NoError(t, err)
	addScene(t, m, "B")
	require.Equal(t, 2, m.SceneCount())

	m.Update(0, 16)
	// Still present: the removal is queued, not applied.
	assert.Equal(t, 2, m.SceneCount())
	assert.True(t, m.IsProcessing())

	m.Render(nil)
	assert.False(t, m.IsProcessing())
	assert.Equal(t, 2, m.SceneCount())

	// The next flush applies it.
	m.Update(16, 16)
	m.Render(nil)
	assert.Equal(t, 1, m.SceneCount())
	assert.Nil(t, m.GetScene("B"))
}

func TestManager_OrderingOpsDeferredWhileProcessing(t *testing.T) {
	m := bootedManager(t)

	_, err := m.Add("A", Config{
		Update: func(time, delta float64) { m.BringToTop("A") },
	}, true, nil)
	require.NoError(t, err)
	addScene(t, m, "B")

	m.Update(0, 16)
	assert.Equal(t, []string{"A", "B"}, order(m))
	m.Render(nil)

	m.Update(16, 16)
	m.Render(nil)
	assert.Equal(t, []string{"B", "A"}, order(m))
}

func TestManager_AddWhileProcessingIsDeferred(t *testing.T) {
	m := bootedManager(t)

	var added *Scene
	_, err := m.Add("A", Config{
		Update: func(time, delta float64) {
			if m.GetScene("B") == nil {
				sc, err := m.Add("B", Config{Key: "B"}, false, nil)
				assert.NoError(t, err)
				assert.Nil(t, sc)
				added = sc
			}
		},
	}, true, nil)
	require.NoError(t, err)

	m.Update(0, 16)
	m.Render(nil)
	assert.Nil(t, added)
	assert.Nil(t, m.GetScene("B"))

	m.Update(16, 16)
	m.Render(nil)
	assert.NotNil(t, m.GetScene("B"))
}

func TestManager_UpdateOrderIsReverseRenderOrderIsForward(t *testing.T) {
	m := bootedManager(t)

	var updates, renders []string
	for _, key := range []string{"A", "B", "C"} {
		key := key
		_, err := m.Add(key, Config{
			Update: func(time, delta float64) { updates = append(updates, key) },
			Render: func(*ebiten.Image) { renders = append(renders, key) },
		}, false, nil)
		require.NoError(t, err)
		m.Start(key, nil)
	}

	m.Update(0, 16)
	m.Render(nil)

	assert.Equal(t, []string{"C", "B", "A"}, updates)
	assert.Equal(t, []string{"A", "B", "C"}, renders)
}

func TestManager_RenderSkipsInvisibleAndSleeping(t *testing.T) {
	m := bootedManager(t)

	var renders []string
	for _, key := range []string{"A", "B", "C"} {
		key := key
		_, err := m.Add(key, Config{
			Render: func(*ebiten.Image) { renders = append(renders, key) },
		}, false, nil)
		require.NoError(t, err)
		m.Start(key, nil)
	}
	m.Sleep("A", nil)
	m.GetScene("B").Sys.SetVisible(false)

	m.Update(0, 16)
	m.Render(nil)

	assert.Equal(t, []string{"C"}, renders)
}

func TestManager_Destroy(t *testing.T) {
	m := bootedManager(t)
	a := addScene(t, m, "A")
	b := addScene(t, m, "B")
	m.Start("A", nil)

	m.Destroy()

	assert.Equal(t, StatusDestroyed, a.Sys.Settings.Status)
	assert.Equal(t, StatusDestroyed, b.Sys.Settings.Status)
	assert.Equal(t, 0, m.SceneCount())

	// Further use is harmless.
	m.Update(0, 16)
	m.Render(nil)
	m.Destroy()
}

func TestManager_GetScenes(t *testing.T) {
	m := bootedManager(t)
	addScene(t, m, "A")
	addScene(t, m, "B")
	m.Start("B", nil)

	all := m.GetScenes(false)
	active := m.GetScenes(true)

	assert.Len(t, all, 2)
	require.Len(t, active, 1)
	assert.Equal(t, "B", active[0].Key())
}

func TestManager_PredicatesOnUnknownKey(t *testing.T) {
	m := bootedManager(t)

	assert.False(t, m.IsActive("ghost"))
	assert.False(t, m.IsPaused("ghost"))
	assert.False(t, m.IsSleeping("ghost"))
	assert.False(t, m.IsVisible("ghost"))
	assert.Equal(t, -1, m.GetIndex("ghost"))
	assert.Nil(t, m.GetAt(99))
}
