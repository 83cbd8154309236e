package display

// Bounds is an axis-aligned rectangle in world units.
type Bounds struct {
	X, Y, W, H float64
}

// NewBounds creates a rectangle from its top-left corner and size.
func NewBounds(x, y, w, h float64) Bounds {
	return Bounds{X: x, Y: y, W: w, H: h}
}

// Right returns the x coordinate of the right edge.
func (b Bounds) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the bottom edge.
func (b Bounds) Bottom() float64 { return b.Y + b.H }

// CenterX returns the x coordinate of the center.
func (b Bounds) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the y coordinate of the center.
func (b Bounds) CenterY() float64 { return b.Y + b.H/2 }

// Empty reports whether the rectangle has no area.
func (b Bounds) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Contains reports whether the point lies inside the rectangle. Points on
// the right and bottom edges are outside.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// Intersects reports whether the two rectangles overlap.
func (b Bounds) Intersects(o Bounds) bool {
	return b.X < o.Right() && o.X < b.Right() && b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Intersection returns the overlapping region, or an empty Bounds.
func (b Bounds) Intersection(o Bounds) Bounds {
	x := max(b.X, o.X)
	y := max(b.Y, o.Y)
	right := min(b.Right(), o.Right())
	bottom := min(b.Bottom(), o.Bottom())
	if right <= x || bottom <= y {
		return Bounds{}
	}
	return Bounds{X: x, Y: y, W: right - x, H: bottom - y}
}

// Union returns the smallest rectangle covering both.
func (b Bounds) Union(o Bounds) Bounds {
	x := min(b.X, o.X)
	y := min(b.Y, o.Y)
	right := max(b.Right(), o.Right())
	bottom := max(b.Bottom(), o.Bottom())
	return Bounds{X: x, Y: y, W: right - x, H: bottom - y}
}

// CenterOn moves the rectangle so its center sits at (x, y).
func (b Bounds) CenterOn(x, y float64) Bounds {
	b.X = x - b.W/2
	b.Y = y - b.H/2
	return b
}

// Clamp constrains the rectangle to lie inside outer, the way a camera is
// clamped to stage bounds. A rectangle larger than outer is pinned to
// outer's top-left.
func (b Bounds) Clamp(outer Bounds) Bounds {
	if b.X < outer.X {
		b.X = outer.X
	}
	if b.Y < outer.Y {
		b.Y = outer.Y
	}
	if b.Right() > outer.Right() {
		b.X = outer.Right() - b.W
	}
	if b.Bottom() > outer.Bottom() {
		b.Y = outer.Bottom() - b.H
	}
	if b.X < outer.X {
		b.X = outer.X
	}
	if b.Y < outer.Y {
		b.Y = outer.Y
	}
	return b
}
