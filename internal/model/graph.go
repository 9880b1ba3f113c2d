package model

// State is one node in an animator state graph, wrapping a single clip.
type State struct {
	Label string     `json:"label"`
	Clip  ClipHandle `json:"clip"`
}

// StateGraphSpec is a controller: a single layer holding a flat,
// transition-less set of states with one designated default/entry state.
// The first state listed is always the default; DefaultState is kept
// explicit so the asset representation can encode it without re-deriving
// the policy.
type StateGraphSpec struct {
	Name         string  `json:"name"`
	States       []State `json:"states"`
	DefaultState int     `json:"defaultState"`
}
