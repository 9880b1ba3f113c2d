package model

import "fmt"

// ComponentKind is the closed set of component types a curve can bind to.
// KindUnresolved carries no meaning by itself; the original name travels
// alongside it in ComponentRef so a secondary lookup can still be attempted.
type ComponentKind string

const (
	KindTransform    ComponentKind = "transform"
	KindMeshRenderer ComponentKind = "meshRenderer"
	KindLight        ComponentKind = "light"
	KindCamera       ComponentKind = "camera"
	KindUnresolved   ComponentKind = "unresolved"
)

// ComponentRef is a resolved (or deliberately unresolved) component binding.
// Name preserves the caller's original spelling; for builtin kinds it is the
// canonical name, for KindUnresolved it is whatever the caller sent.
type ComponentRef struct {
	Kind ComponentKind `json:"kind"`
	Name string        `json:"name"`
}

func (r ComponentRef) String() string {
	if r.Kind == KindUnresolved {
		return fmt.Sprintf("unresolved(%s)", r.Name)
	}
	return string(r.Kind)
}

// PropertyCurve binds an ordered keyframe sequence to one scalar property of
// one component on one target. TargetPath "" addresses the root object.
// A finalized curve always has at least one key; zero-key curves are dropped
// during assembly, never emitted.
type PropertyCurve struct {
	TargetPath string       `json:"targetPath"`
	Component  ComponentRef `json:"component"`
	Property   string       `json:"property"`
	Keys       []Keyframe   `json:"keys"`
}

// BindingKey identifies a curve within a clip. No two curves in one clip may
// share a key.
type BindingKey struct {
	TargetPath string
	Kind       ComponentKind
	Property   string
}

// Binding returns the curve's identity key within a clip.
func (c PropertyCurve) Binding() BindingKey {
	return BindingKey{TargetPath: c.TargetPath, Kind: c.Component.Kind, Property: c.Property}
}
