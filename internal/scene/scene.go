// Package scene abstracts the live scene the host exposes for target
// attachment. The authoring core only needs object lookup, component
// attachment, and controller assignment; a live host supplies its own
// Resolver, and the in-memory implementation here backs the local server
// and tests.
package scene

import "github.com/animsmith/animsmith/internal/model"

// Object is a handle to one named scene object.
type Object struct {
	Name       string          `json:"name"`
	Components map[string]bool `json:"components"`
	Controller string          `json:"controller,omitempty"`
}

// HasComponent reports whether the object carries the named component.
func (o *Object) HasComponent(component string) bool {
	return o.Components[component]
}

// Resolver finds scene objects and mutates their attachments.
type Resolver interface {
	// FindObject looks up an object by name. A miss is not an error; the
	// caller decides whether to abort or merely skip the attachment step.
	FindObject(name string) (*Object, bool)
	// EnsureComponent attaches the named component if not already present.
	EnsureComponent(obj *Object, component string)
	// SetController assigns a controller asset path to the object's
	// Animator.
	SetController(obj *Object, controllerPath string)
}

// TypeResolver is the secondary component-kind lookup consulted when the
// fixed builtin table misses.
type TypeResolver interface {
	ResolveByName(name string) (model.ComponentKind, bool)
}
