package gameobject

import "github.com/hajimehoshi/ebiten/v2"

// Component is a unit of behavior attached to a GameObject.
type Component interface {
	// SetOwner binds the component to its game object. Called by
	// GameObject.AddComponent.
	SetOwner(owner *GameObject)
	// Start runs once, the first time the owning object starts.
	Start()
	// Update runs every frame while the owning object is active.
	Update(delta float64)
	// Draw renders the component.
	Draw(screen *ebiten.Image)
}

// BaseComponent is a no-op Component meant for embedding; concrete
// components override only the methods they need.
type BaseComponent struct {
	owner *GameObject
}

// SetOwner stores the owning game object.
func (b *BaseComponent) SetOwner(owner *GameObject) {
	b.owner = owner
}

// Owner returns the game object this component is attached to.
func (b *BaseComponent) Owner() *GameObject {
	return b.owner
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(delta float64) {}

func (b *BaseComponent) Draw(screen *ebiten.Image) {}
