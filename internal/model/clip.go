package model

import (
	"time"

	"github.com/google/uuid"
)

// ClipSettings are the clip-level playback settings. LoopTime and LoopBlend
// are always set together: a looping clip both wraps its time and blends
// across the loop boundary. There is no mode with one true and the other
// false.
type ClipSettings struct {
	LoopTime  bool `json:"loopTime"`
	LoopBlend bool `json:"loopBlend"`
}

// ClipSpec is a named, immutable bundle of property curves plus frame rate
// and loop settings. Re-authoring a clip means assembling a new spec; specs
// are never mutated after assembly.
type ClipSpec struct {
	Name      string          `json:"name"`
	FrameRate float64         `json:"frameRate"`
	Settings  ClipSettings    `json:"settings"`
	Curves    []PropertyCurve `json:"curves"`
}

// Loop reports whether the clip loops.
func (c ClipSpec) Loop() bool { return c.Settings.LoopTime }

// ClipHandle identifies a clip persisted in the asset catalog.
type ClipHandle struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// ControllerHandle identifies a persisted animator controller.
type ControllerHandle struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}
