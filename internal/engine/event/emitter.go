// Package event provides the topic-keyed event emitter used across the
// engine: scene lifecycle notifications, loader completion signals, and the
// runtime's one-time ready event all travel through it.
package event

// Listener is a callback registered for a topic. Arguments are whatever the
// emitting side passed to Emit.
type Listener func(args ...any)

// Handle identifies a registered listener so it can be removed later.
// Handles are unique per Emitter.
type Handle int

type registration struct {
	handle Handle
	fn     Listener
	once   bool
}

// Emitter is a single-threaded multi-cast event dispatcher. Listeners for a
// topic are invoked in registration order. It is not safe for concurrent
// use; the engine only touches it from the frame loop.
type Emitter struct {
	topics map[string][]registration
	next   Handle
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{topics: make(map[string][]registration)}
}

// On registers a listener for topic and returns its removal handle.
func (e *Emitter) On(topic string, fn Listener) Handle {
	return e.add(topic, fn, false)
}

// Once registers a listener that is removed automatically after its first
// invocation.
func (e *Emitter) Once(topic string, fn Listener) Handle {
	return e.add(topic, fn, true)
}

func (e *Emitter) add(topic string, fn Listener, once bool) Handle {
	if fn == nil {
		return 0
	}
	e.next++
	e.topics[topic] = append(e.topics[topic], registration{handle: e.next, fn: fn, once: once})
	return e.next
}

// Off removes the listener registered under handle for topic. Unknown
// handles are ignored.
func (e *Emitter) Off(topic string, handle Handle) {
	regs := e.topics[topic]
	for i, r := range regs {
		if r.handle == handle {
			e.topics[topic] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// RemoveAll drops every listener for topic. With no topic it clears the
// whole emitter.
func (e *Emitter) RemoveAll(topic ...string) {
	if len(topic) == 0 {
		e.topics = make(map[string][]registration)
		return
	}
	for _, t := range topic {
		delete(e.topics, t)
	}
}

// Emit invokes every listener registered for topic with args. Once
// listeners are unregistered before their callback runs, so a listener that
// re-emits its own topic cannot fire twice.
func (e *Emitter) Emit(topic string, args ...any) {
	regs := e.topics[topic]
	if len(regs) == 0 {
		return
	}
	// Snapshot so listeners may register/remove without corrupting this
	// dispatch pass.
	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)

	kept := regs[:0]
	for _, r := range regs {
		if !r.once {
			kept = append(kept, r)
		}
	}
	e.topics[topic] = kept

	for _, r := range snapshot {
		r.fn(args...)
	}
}

// ListenerCount returns how many listeners topic currently has.
func (e *Emitter) ListenerCount(topic string) int {
	return len(e.topics[topic])
}
