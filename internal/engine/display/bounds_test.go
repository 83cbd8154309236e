package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBounds_ContainsAndEdges(t *testing.T) {
	b := NewBounds(10, 20, 30, 40)

	assert.Equal(t, 40.0, b.Right())
	assert.Equal(t, 60.0, b.Bottom())
	assert.Equal(t, 25.0, b.CenterX())
	assert.Equal(t, 40.0, b.CenterY())

	assert.True(t, b.Contains(10, 20))
	assert.True(t, b.Contains(39.9, 59.9))
	assert.False(t, b.Contains(40, 20))
	assert.False(t, b.Contains(10, 60))
	assert.False(t, b.Contains(9, 20))
}

func TestBounds_Intersection(t *testing.T) {
	a := NewBounds(0, 0, 10, 10)
	b := NewBounds(5, 5, 10, 10)

	assert.True(t, a.Intersects(b))
	assert.Equal(t, NewBounds(5, 5, 5, 5), a.Intersection(b))

	// Touching edges do not overlap.
	c := NewBounds(10, 0, 5, 5)
	assert.False(t, a.Intersects(c))
	assert.True(t, a.Intersection(c).Empty())

	far := NewBounds(100, 100, 5, 5)
	assert.False(t, a.Intersects(far))
	assert.True(t, a.Intersection(far).Empty())
}

func TestBounds_Union(t *testing.T) {
	a := NewBounds(0, 0, 10, 10)
	b := NewBounds(20, 5, 10, 10)

	assert.Equal(t, NewBounds(0, 0, 30, 15), a.Union(b))
}

func TestBounds_CenterOn(t *testing.T) {
	b := NewBounds(0, 0, 10, 20).CenterOn(50, 50)

	assert.Equal(t, NewBounds(45, 40, 10, 20), b)
}

func TestBounds_Clamp(t *testing.T) {
	outer := NewBounds(0, 0, 100, 100)

	tests := []struct {
		name     string
		in       Bounds
		expected Bounds
	}{
		{"inside unchanged", NewBounds(10, 10, 20, 20), NewBounds(10, 10, 20, 20)},
		{"past left top", NewBounds(-5, -5, 20, 20), NewBounds(0, 0, 20, 20)},
		{"past right bottom", NewBounds(95, 95, 20, 20), NewBounds(80, 80, 20, 20)},
		{"larger than outer", NewBounds(-10, -10, 200, 200), NewBounds(0, 0, 200, 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.Clamp(outer))
		})
	}
}
