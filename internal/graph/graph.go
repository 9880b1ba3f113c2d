// Package graph assembles animator controllers: a single layer holding a
// flat, transition-less state machine whose states wrap existing clips.
package graph

import (
	"fmt"

	"github.com/animsmith/animsmith/internal/model"
)

// Build assembles a state graph from resolved clip handles. A nil handle
// marks a clip reference that failed to resolve; such entries are skipped
// with a warning, so the graph may come out smaller than requested. The
// first resolved clip always becomes the default/entry state; the graph is
// structurally complete with that single state.
//
// Build fails with ErrInvalidSpec when clips is empty and with
// ErrResolutionMiss when every reference was unresolved, since a graph with
// zero states cannot designate a default.
func Build(name string, clips []*model.ClipHandle) (model.StateGraphSpec, []string, error) {
	if len(clips) == 0 {
		return model.StateGraphSpec{}, nil, model.InvalidSpecf("at least one clip reference is required")
	}

	var warnings []string
	states := make([]model.State, 0, len(clips))
	for i, h := range clips {
		if h == nil {
			warnings = append(warnings, fmt.Sprintf("clip reference %d could not be resolved, skipped", i))
			continue
		}
		states = append(states, model.State{Label: h.Name, Clip: *h})
	}
	if len(states) == 0 {
		return model.StateGraphSpec{}, warnings, model.ResolutionMissf("no clip references could be resolved")
	}

	return model.StateGraphSpec{
		Name:         name,
		States:       states,
		DefaultState: 0,
	}, warnings, nil
}
