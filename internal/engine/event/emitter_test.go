package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter_OnAndEmit(t *testing.T) {
	e := NewEmitter()

	var got []int
	e.On("tick", func(args ...any) {
		got = append(got, args[0].(int))
	})

	e.Emit("tick", 1)
	e.Emit("tick", 2)

	assert.Equal(t, []int{1, 2}, got)
}

func TestEmitter_ListenerOrder(t *testing.T) {
	e := NewEmitter()

	var order []string
	e.On("boot", func(...any) { order = append(order, "first") })
	e.On("boot", func(...any) { order = append(order, "second") })

	e.Emit("boot")

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEmitter_OnceFiresExactlyOnce(t *testing.T) {
	e := NewEmitter()

	count := 0
	e.Once("ready", func(...any) { count++ })

	e.Emit("ready")
	e.Emit("ready")
	e.Emit("ready")

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, e.ListenerCount("ready"))
}

func TestEmitter_OffRemovesHandle(t *testing.T) {
	e := NewEmitter()

	count := 0
	h := e.On("pause", func(...any) { count++ })
	e.On("pause", func(...any) { count += 10 })

	e.Off("pause", h)
	e.Emit("pause")

	assert.Equal(t, 10, count)
	assert.Equal(t, 1, e.ListenerCount("pause"))
}

func TestEmitter_OffUnknownHandleIsNoop(t *testing.T) {
	e := NewEmitter()
	e.On("x", func(...any) {})

	e.Off("x", Handle(999))
	e.Off("missing-topic", Handle(1))

	assert.Equal(t, 1, e.ListenerCount("x"))
}

func TestEmitter_RemoveAll(t *testing.T) {
	e := NewEmitter()
	e.On("a", func(...any) {})
	e.On("a", func(...any) {})
	e.On("b", func(...any) {})

	e.RemoveAll("a")
	assert.Equal(t, 0, e.ListenerCount("a"))
	assert.Equal(t, 1, e.ListenerCount("b"))

	e.RemoveAll()
	assert.Equal(t, 0, e.ListenerCount("b"))
}

func TestEmitter_EmitDuringEmitDoesNotCorrupt(t *testing.T) {
	e := NewEmitter()

	var order []string
	e.Once("complete", func(...any) {
		order = append(order, "outer")
		// Re-emitting from inside a once listener must not re-enter it.
		e.Emit("complete")
	})
	e.On("complete", func(...any) { order = append(order, "inner") })

	e.Emit("complete")

	assert.Equal(t, []string{"outer", "inner", "inner"}, order)
}

func TestEmitter_NilListenerIgnored(t *testing.T) {
	e := NewEmitter()
	h := e.On("x", nil)

	assert.Equal(t, Handle(0), h)
	assert.Equal(t, 0, e.ListenerCount("x"))
	e.Emit("x")
}
