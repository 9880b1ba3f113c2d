// Package motion generates canonical keyframe sets for parameterized motion
// archetypes. Generators are pure functions: they compute curve data for the
// caller to bind and never touch a target.
//
// Both archetypes sample a fixed 4-5 point waveform instead of a closed-form
// sinusoid. Auto tangents smooth the sparse samples into the perceived
// periodic motion, which keeps generation deterministic and free of any trig
// or spline dependency.
package motion

import "github.com/animsmith/animsmith/internal/model"

// Curve is one generated property curve. All generated keys use Auto
// tangents.
type Curve struct {
	Property string
	Keys     []model.Keyframe
}

// Cycle is one generated motion cycle: a duration plus the curves that span
// it. Every curve starts and ends at its rest value so the cycle loops
// cleanly.
type Cycle struct {
	Duration float64
	Curves   []Curve
}

// Idle generates a breathing idle cycle: a vertical scale pulse plus a
// subtle fixed-magnitude z-axis rock. Only the scale pulse is scaled by
// amplitude. duration = 2.0/speed; the caller validates speed > 0.
func Idle(speed, amplitude float64) Cycle {
	duration := 2.0 / speed

	scale := sampled(duration,
		[]float64{0, 0.25, 0.5, 0.75, 1.0},
		[]float64{1, 1 + amplitude, 1, 1 - amplitude/2, 1})

	// Rock is deliberately fixed at ±2 degrees regardless of amplitude.
	rock := sampled(duration,
		[]float64{0, 0.33, 0.66, 1.0},
		[]float64{0, 2, -2, 0})

	return Cycle{
		Duration: duration,
		Curves: []Curve{
			{Property: "localScale.y", Keys: scale},
			{Property: "localEulerAngles.z", Keys: rock},
		},
	}
}

// Walk generates one walk cycle: a two-step vertical bob plus alternating
// body sway in degrees. duration = 1.0/speed; the caller validates
// speed > 0.
func Walk(speed, stepHeight, swayAmount float64) Cycle {
	duration := 1.0 / speed
	fractions := []float64{0, 0.25, 0.5, 0.75, 1.0}

	bob := sampled(duration, fractions,
		[]float64{0, stepHeight, 0, stepHeight, 0})
	sway := sampled(duration, fractions,
		[]float64{0, -swayAmount, 0, swayAmount, 0})

	return Cycle{
		Duration: duration,
		Curves: []Curve{
			{Property: "localPosition.y", Keys: bob},
			{Property: "localEulerAngles.z", Keys: sway},
		},
	}
}

// sampled places values at fractions of the duration, all with Auto
// tangents. fractions and values are parallel and fixed per archetype.
func sampled(duration float64, fractions, values []float64) []model.Keyframe {
	keys := make([]model.Keyframe, len(fractions))
	for i, f := range fractions {
		keys[i] = model.Keyframe{
			Time:    f * duration,
			Value:   values[i],
			Tangent: model.TangentAuto,
		}
	}
	return keys
}
