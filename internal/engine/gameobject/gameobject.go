// Package gameobject implements the engine's scene-graph composition
// model: game objects carry a 2D transform, tags, children and an ordered
// component list, and form trees that update and draw together.
package gameobject

import "github.com/hajimehoshi/ebiten/v2"

// Transform is a 2D position, rotation (radians) and scale.
type Transform struct {
	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

// GameObject is a node of the scene graph. Behavior lives in components;
// structure lives in the parent/children links.
type GameObject struct {
	Name      string
	Tags      []string
	Transform Transform
	Active    bool
	Visible   bool

	Parent   *GameObject
	Children []*GameObject

	components []Component
	started    bool
}

// New creates an active, visible game object at the origin with unit
// scale.
func New(name string) *GameObject {
	return &GameObject{
		Name:    name,
		Active:  true,
		Visible: true,
		Transform: Transform{
			ScaleX: 1,
			ScaleY: 1,
		},
	}
}

// AddComponent attaches c and binds it to this object.
func (g *GameObject) AddComponent(c Component) {
	c.SetOwner(g)
	g.components = append(g.components, c)
	if g.started {
		c.Start()
	}
}

// Components returns the attached components in order.
func (g *GameObject) Components() []Component {
	return g.components
}

// FindComponent returns the first attached component of type T, or the
// zero value.
func FindComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// HasTag reports whether the object carries tag.
func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddChild appends child under this object.
func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	g.Children = append(g.Children, child)
}

// RemoveChild detaches child. No-op if child is not a direct child.
func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// FindByName returns the first descendant (including g itself) with the
// given name, or nil.
func (g *GameObject) FindByName(name string) *GameObject {
	if g.Name == name {
		return g
	}
	for _, c := range g.Children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// FindByTag returns every descendant (including g itself) carrying tag.
func (g *GameObject) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	if g.HasTag(tag) {
		result = append(result, g)
	}
	for _, c := range g.Children {
		result = append(result, c.FindByTag(tag)...)
	}
	return result
}

// WorldPosition accumulates the transforms up the parent chain.
func (g *GameObject) WorldPosition() (x, y float64) {
	if g.Parent == nil {
		return g.Transform.X, g.Transform.Y
	}
	px, py := g.Parent.WorldPosition()
	return px + g.Transform.X, py + g.Transform.Y
}

// Start runs every component's Start once, then starts the children.
// Subsequent calls are no-ops.
func (g *GameObject) Start() {
	if !g.started {
		for _, c := range g.components {
			c.Start()
		}
		g.started = true
	}
	for _, c := range g.Children {
		c.Start()
	}
}

// Update steps the components and children. Inactive objects (and their
// subtrees) are skipped.
func (g *GameObject) Update(delta float64) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(delta)
	}
	for _, c := range g.Children {
		c.Update(delta)
	}
}

// Draw renders the components and children. Invisible objects (and their
// subtrees) are skipped.
func (g *GameObject) Draw(screen *ebiten.Image) {
	if !g.Visible {
		return
	}
	for _, c := range g.components {
		c.Draw(screen)
	}
	for _, c := range g.Children {
		c.Draw(screen)
	}
}
