// Package curve builds property-curve keyframe sequences from caller specs
// and resolves component bindings by name.
package curve

import (
	"strings"

	"github.com/animsmith/animsmith/internal/model"
)

// KeySpec is one caller-supplied keyframe: a (time, value) sample plus an
// optional tangent-mode hint.
type KeySpec struct {
	Time    float64 `json:"time"`
	Value   float64 `json:"value"`
	Tangent string  `json:"tangent,omitempty"`
}

// Build converts keyframe specs into model keyframes, resolving each spec's
// tangent hint. Keys are appended in input order: the builder never sorts by
// time, because silent reordering would change the curve's shape. Callers
// are responsible for supplying ascending times; ties are preserved in
// insertion order with undefined interpolation between them.
func Build(specs []KeySpec) []model.Keyframe {
	if len(specs) == 0 {
		return nil
	}
	keys := make([]model.Keyframe, 0, len(specs))
	for _, s := range specs {
		keys = append(keys, model.Keyframe{
			Time:    s.Time,
			Value:   s.Value,
			Tangent: NormalizeTangent(s.Tangent),
		})
	}
	return keys
}

// NormalizeTangent maps a tangent-mode hint to a TangentMode. "smooth" and
// "auto" (any case) select Auto; everything else, including the empty hint,
// selects Linear. The choice is binary: per-key custom tangent weights are
// not supported.
func NormalizeTangent(hint string) model.TangentMode {
	switch strings.ToLower(hint) {
	case "smooth", "auto":
		return model.TangentAuto
	default:
		return model.TangentLinear
	}
}

// builtinKinds is the fixed component-kind table. Lookups are
// case-insensitive; anything outside the table resolves to
// KindUnresolved carrying the original name.
var builtinKinds = map[string]model.ComponentKind{
	"transform":    model.KindTransform,
	"meshrenderer": model.KindMeshRenderer,
	"light":        model.KindLight,
	"camera":       model.KindCamera,
}

// ResolveComponentKind resolves a component name against the builtin table.
// A miss is not an error here: the assembler attempts a secondary lookup
// through the type resolver before falling back to Transform.
func ResolveComponentKind(name string) model.ComponentRef {
	if kind, ok := builtinKinds[strings.ToLower(name)]; ok {
		return model.ComponentRef{Kind: kind, Name: name}
	}
	return model.ComponentRef{Kind: model.KindUnresolved, Name: name}
}
