// Package model defines the animation authoring value types shared by the
// curve, clip, and graph builders, plus the error taxonomy used to classify
// failures across the service boundary.
package model

// TangentMode selects the interpolation behavior at a keyframe.
type TangentMode string

const (
	// TangentAuto derives the key's slope from its neighbors, producing
	// smoothed interpolation through the key.
	TangentAuto TangentMode = "auto"
	// TangentLinear interpolates in straight segments to and from the key.
	TangentLinear TangentMode = "linear"
)

// Keyframe is a single (time, value) sample with its tangent mode.
// Times are seconds from clip start and must be >= 0.
type Keyframe struct {
	Time    float64     `json:"time"`
	Value   float64     `json:"value"`
	Tangent TangentMode `json:"tangent"`
}
