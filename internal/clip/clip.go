// Package clip assembles property curves and clip-level settings into
// immutable clip specs.
package clip

import (
	"fmt"

	"github.com/animsmith/animsmith/internal/model"
)

// Assemble combines curves plus clip settings into a ClipSpec.
//
// Curves with an empty property name or no keys are dropped rather than
// failing the clip; each drop is reported in the returned warnings so
// partial, heterogeneous input stays usable without becoming unobservable.
// Two curves colliding on (targetPath, component kind, property) are a hard
// ErrInvalidSpec: the collision is ambiguous, not malformed, so there is no
// safe entry to keep.
func Assemble(name string, frameRate float64, loop bool, curves []model.PropertyCurve) (model.ClipSpec, []string, error) {
	if name == "" {
		return model.ClipSpec{}, nil, model.InvalidSpecf("clip name is required")
	}
	if frameRate <= 0 {
		return model.ClipSpec{}, nil, model.InvalidSpecf("frame rate must be positive, got %g", frameRate)
	}

	var warnings []string
	kept := make([]model.PropertyCurve, 0, len(curves))
	seen := make(map[model.BindingKey]int, len(curves))

	for i, c := range curves {
		if c.Property == "" {
			warnings = append(warnings, fmt.Sprintf("curve %d: empty property name, skipped", i))
			continue
		}
		if len(c.Keys) == 0 {
			warnings = append(warnings, fmt.Sprintf("curve %d (%s): no keyframes, skipped", i, c.Property))
			continue
		}
		key := c.Binding()
		if prev, dup := seen[key]; dup {
			return model.ClipSpec{}, nil, model.InvalidSpecf(
				"curves %d and %d both bind %s/%s.%s", prev, i, c.TargetPath, c.Component, c.Property)
		}
		seen[key] = i
		kept = append(kept, c)
	}

	spec := model.ClipSpec{
		Name:      name,
		FrameRate: frameRate,
		Settings:  model.ClipSettings{LoopTime: loop, LoopBlend: loop},
		Curves:    kept,
	}
	return spec, warnings, nil
}
