// Package loader implements the per-scene asset loader. Each scene's
// Systems owns one Loader; the scene manager drives the preload/payload
// phases through it and waits for the completion event before creating the
// scene.
package loader

import (
	"log"

	"github.com/gammafp/phaser-raw/internal/engine/event"
)

// Loader lifecycle events emitted on Loader.Events.
const (
	EventStart        = "loaderstart"
	EventFileComplete = "filecomplete"
	EventComplete     = "complete"
)

// Job fetches and decodes one asset. Jobs run on their own goroutine; the
// returned error is reported on the frame loop when the result is pumped.
type Job func() (any, error)

// Result is what a finished job delivers back to the frame loop.
type Result struct {
	Key   string
	Value any
	Err   error

	// run identifies the load run the job belonged to, so results from a
	// run abandoned by Reset are discarded instead of being counted
	// against a newer run.
	run int
}

// Pack is a declarative batch of assets a scene can request before its
// preload hook runs (the scene descriptor's payload).
type Pack struct {
	Files []PackFile
}

// PackFile is one entry of a Pack.
type PackFile struct {
	Key string
	Job Job
}

type pendingFile struct {
	key string
	job Job
}

// Loader queues asset jobs and runs them on goroutines, delivering results
// back over a channel that is drained only by Update. Completion callbacks
// therefore always fire inside the frame tick, never concurrently with the
// scene manager's update or render pass.
type Loader struct {
	// Events carries EventStart, EventFileComplete and EventComplete.
	Events *event.Emitter

	pending  []pendingFile
	results  chan Result
	inflight int
	loading  bool
	run      int

	// Assets holds successfully loaded values by key, for the scene's
	// create hook to pick up.
	Assets map[string]any
}

// New creates an idle loader.
func New() *Loader {
	return &Loader{
		Events:  event.NewEmitter(),
		results: make(chan Result, 64),
		Assets:  make(map[string]any),
	}
}

// Reset drops queued work and abandons the current run. Already loaded
// assets are kept: Assets doubles as the cache the scene's create hook
// reads, including anything a payload pack loaded before boot. In-flight
// results from the abandoned run are discarded when they arrive.
func (l *Loader) Reset() {
	l.pending = nil
	l.loading = false
	l.inflight = 0
}

// Enqueue adds one job to the pending queue. No work starts until Start.
func (l *Loader) Enqueue(key string, job Job) {
	if job == nil {
		return
	}
	l.pending = append(l.pending, pendingFile{key: key, job: job})
}

// AddPack queues every file of a pack. It reports whether any work was
// actually queued, which the scene manager uses to decide between the
// payload path and booting the scene directly.
func (l *Loader) AddPack(pack *Pack) bool {
	if pack == nil || len(pack.Files) == 0 {
		return false
	}
	queued := false
	for _, f := range pack.Files {
		if f.Job == nil {
			continue
		}
		l.Enqueue(f.Key, f.Job)
		queued = true
	}
	return queued
}

// HasPending reports whether Start would kick off any work.
func (l *Loader) HasPending() bool {
	return len(l.pending) > 0
}

// IsLoading reports whether a load run is in progress.
func (l *Loader) IsLoading() bool {
	return l.loading
}

// Start launches every pending job. With nothing queued it emits
// EventComplete immediately so callers can rely on the event either way.
func (l *Loader) Start() {
	if l.loading {
		return
	}
	if len(l.pending) == 0 {
		l.Events.Emit(EventComplete, l)
		return
	}

	files := l.pending
	l.pending = nil
	l.loading = true
	l.run++
	l.inflight = len(files)
	l.Events.Emit(EventStart, l)

	run := l.run
	for _, f := range files {
		go func(key string, job Job) {
			value, err := job()
			l.results <- Result{Key: key, Value: value, Err: err, run: run}
		}(f.key, f.job)
	}
}

// Update drains finished jobs. It must be called from the frame loop; it is
// the only place results are consumed, which keeps every callback on the
// tick. Emits EventComplete once the last in-flight job has landed.
func (l *Loader) Update() {
	if !l.loading {
		// Drain stale results from a run that was reset away.
		for {
			select {
			case <-l.results:
			default:
				return
			}
		}
	}

	for l.inflight > 0 {
		select {
		case res := <-l.results:
			if res.run != l.run {
				continue
			}
			l.inflight--
			if res.Err != nil {
				log.Printf("loader: %q failed: %v", res.Key, res.Err)
			} else {
				l.Assets[res.Key] = res.Value
			}
			l.Events.Emit(EventFileComplete, res)
		default:
			return
		}
	}

	l.loading = false
	l.Events.Emit(EventComplete, l)
}

// Destroy releases listeners and queued state. The loader is unusable
// afterwards.
func (l *Loader) Destroy() {
	l.Events.RemoveAll()
	l.pending = nil
	l.loading = false
	l.Assets = nil
}
