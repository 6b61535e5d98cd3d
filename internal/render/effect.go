package render

import "errors"

var (
	// ErrAlreadyAttached is returned when attaching over an attached effect.
	ErrAlreadyAttached = errors.New("render: effect already attached")
	// ErrNotAttached is returned when detaching an unattached effect.
	ErrNotAttached = errors.New("render: effect not attached")
)

// Deallocator is a backend resource that can be freed, such as an
// *ebiten.Shader.
type Deallocator interface {
	Deallocate()
}

// EffectState is the attachment state of an Effect.
type EffectState int

const (
	Unattached EffectState = iota
	Attached
)

func (s EffectState) String() string {
	if s == Attached {
		return "attached"
	}
	return "unattached"
}

// Effect tracks whether a shading resource is bound to the grid. Transitions
// happen only through Attach and Detach.
type Effect[H Deallocator] struct {
	state  EffectState
	handle H
}

// State returns the current state.
func (e *Effect[H]) State() EffectState { return e.state }

// Handle returns the attached resource.
func (e *Effect[H]) Handle() (H, bool) {
	return e.handle, e.state == Attached
}

// Attach binds h. It fails if another resource is already attached.
func (e *Effect[H]) Attach(h H) error {
	if e.state == Attached {
		return ErrAlreadyAttached
	}
	e.handle = h
	e.state = Attached
	return nil
}

// Detach unbinds and returns the resource without freeing it.
func (e *Effect[H]) Detach() (H, error) {
	var zero H
	if e.state != Attached {
		return zero, ErrNotAttached
	}
	h := e.handle
	e.handle = zero
	e.state = Unattached
	return h, nil
}

// Release detaches and frees the resource if one is attached.
func (e *Effect[H]) Release() {
	if h, err := e.Detach(); err == nil {
		h.Deallocate()
	}
}
