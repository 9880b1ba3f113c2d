// Package anim provides the shared authoring logic behind every animation
// action. The MCP tools delegate here, so curve synthesis, clip assembly,
// and graph construction behave identically regardless of transport.
//
// The service is stateless across calls: every operation is a deterministic
// transform over its inputs plus the supplied collaborators, and no
// animation state survives between invocations.
package anim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/animsmith/animsmith/internal/asset"
	"github.com/animsmith/animsmith/internal/clip"
	"github.com/animsmith/animsmith/internal/curve"
	"github.com/animsmith/animsmith/internal/graph"
	"github.com/animsmith/animsmith/internal/model"
	"github.com/animsmith/animsmith/internal/motion"
	"github.com/animsmith/animsmith/internal/scene"
	"github.com/animsmith/animsmith/internal/telemetry"
)

// Defaults mirror the original authoring tool's parameter defaults.
const (
	DefaultFolder     = "Assets/Animations"
	DefaultFrameRate  = 30.0
	DefaultSpeed      = 1.0
	DefaultAmplitude  = 0.05
	DefaultStepHeight = 0.1
	DefaultSway       = 5.0
)

// animatorComponent is the component attached to targets that play clips.
const animatorComponent = "Animator"

// Service holds the collaborator interfaces for the authoring actions.
// scene and types may be nil; flows that would use them then skip the
// corresponding step with a warning.
type Service struct {
	store  asset.Store
	scene  scene.Resolver
	types  scene.TypeResolver
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates the authoring service.
func New(store asset.Store, sceneResolver scene.Resolver, types scene.TypeResolver, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		scene:  sceneResolver,
		types:  types,
		logger: logger,
		tracer: telemetry.Tracer("animsmith/anim"),
	}
}

// Result is the success envelope every operation returns: a short
// confirmation message, the key computed parameters, and any warnings
// accumulated by the documented skip policies.
type Result struct {
	Message  string         `json:"message"`
	Data     map[string]any `json:"data,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
}

// CurveInput is one caller-supplied curve spec for CreateClip.
type CurveInput struct {
	TargetPath string          `json:"targetPath"`
	Component  string          `json:"componentType"`
	Property   string          `json:"property"`
	Keyframes  []curve.KeySpec `json:"keyframes"`
}

// CreateClipParams are the inputs for CreateClip. Numeric defaults are
// applied at the transport layer; the service validates, it never fills in.
// An empty Folder means the default asset folder.
type CreateClipParams struct {
	Name      string
	Folder    string
	FrameRate float64
	Loop      bool
	Curves    []CurveInput
}

// CreateClip assembles and persists a clip from explicit curve specs.
func (s *Service) CreateClip(ctx context.Context, p CreateClipParams) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "anim.CreateClip")
	defer span.End()

	if p.Name == "" {
		return nil, model.InvalidSpecf("clip name is required")
	}
	if p.Folder == "" {
		p.Folder = DefaultFolder
	}

	var warnings []string
	curves := make([]model.PropertyCurve, 0, len(p.Curves))
	for _, in := range p.Curves {
		ref, warn := s.resolveComponent(in.Component)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		curves = append(curves, model.PropertyCurve{
			TargetPath: in.TargetPath,
			Component:  ref,
			Property:   in.Property,
			Keys:       curve.Build(in.Keyframes),
		})
	}

	spec, assembleWarnings, err := clip.Assemble(p.Name, p.FrameRate, p.Loop, curves)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, assembleWarnings...)

	handle, err := s.saveClip(ctx, p.Folder, spec)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("clip.path", handle.Path))

	s.logger.Info("clip created", "name", p.Name, "path", handle.Path, "curves", len(spec.Curves))
	return &Result{
		Message: fmt.Sprintf("Created animation clip %q with %d curve(s).", p.Name, len(spec.Curves)),
		Data: map[string]any{
			"path":      handle.Path,
			"frameRate": spec.FrameRate,
			"loop":      spec.Loop(),
			"curves":    len(spec.Curves),
		},
		Warnings: warnings,
	}, nil
}

// IdleParams are the inputs for CreateIdleAnimation. Target is optional.
type IdleParams struct {
	Name      string
	Folder    string
	Target    string
	Speed     float64
	Amplitude float64
	FrameRate float64
}

// CreateIdleAnimation synthesizes a breathing idle cycle, persists it, and
// optionally attaches an Animator to the named target. A target miss aborts
// only the attachment step, never the clip itself.
func (s *Service) CreateIdleAnimation(ctx context.Context, p IdleParams) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "anim.CreateIdleAnimation")
	defer span.End()

	if p.Name == "" {
		return nil, model.InvalidSpecf("clip name is required")
	}
	if p.Speed <= 0 {
		return nil, model.InvalidSpecf("speed must be positive, got %g", p.Speed)
	}
	if p.Amplitude < 0 {
		return nil, model.InvalidSpecf("amplitude must not be negative, got %g", p.Amplitude)
	}
	if p.FrameRate <= 0 {
		return nil, model.InvalidSpecf("frame rate must be positive, got %g", p.FrameRate)
	}
	if p.Folder == "" {
		p.Folder = DefaultFolder
	}

	cycle := motion.Idle(p.Speed, p.Amplitude)
	return s.saveCycle(ctx, span, p.Name, p.Folder, p.Target, p.FrameRate, cycle, "idle")
}

// WalkParams are the inputs for CreateWalkAnimation.
type WalkParams struct {
	Name       string
	Folder     string
	Target     string
	Speed      float64
	StepHeight float64
	SwayAmount float64
	FrameRate  float64
}

// CreateWalkAnimation synthesizes a walk cycle and persists it.
func (s *Service) CreateWalkAnimation(ctx context.Context, p WalkParams) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "anim.CreateWalkAnimation")
	defer span.End()

	if p.Name == "" {
		return nil, model.InvalidSpecf("clip name is required")
	}
	if p.Speed <= 0 {
		return nil, model.InvalidSpecf("speed must be positive, got %g", p.Speed)
	}
	if p.StepHeight < 0 {
		return nil, model.InvalidSpecf("step height must not be negative, got %g", p.StepHeight)
	}
	if p.SwayAmount < 0 {
		return nil, model.InvalidSpecf("sway amount must not be negative, got %g", p.SwayAmount)
	}
	if p.FrameRate <= 0 {
		return nil, model.InvalidSpecf("frame rate must be positive, got %g", p.FrameRate)
	}
	if p.Folder == "" {
		p.Folder = DefaultFolder
	}

	cycle := motion.Walk(p.Speed, p.StepHeight, p.SwayAmount)
	return s.saveCycle(ctx, span, p.Name, p.Folder, p.Target, p.FrameRate, cycle, "walk")
}

// saveCycle binds a generated cycle to the root transform, assembles a
// looping clip, persists it, and optionally attaches an Animator to target.
func (s *Service) saveCycle(ctx context.Context, span trace.Span, name, folder, target string, frameRate float64, cycle motion.Cycle, kind string) (*Result, error) {
	curves := make([]model.PropertyCurve, 0, len(cycle.Curves))
	for _, c := range cycle.Curves {
		curves = append(curves, model.PropertyCurve{
			Component: model.ComponentRef{Kind: model.KindTransform, Name: "Transform"},
			Property:  c.Property,
			Keys:      c.Keys,
		})
	}

	// Generated cycles always loop.
	spec, warnings, err := clip.Assemble(name, frameRate, true, curves)
	if err != nil {
		return nil, err
	}

	handle, err := s.saveClip(ctx, folder, spec)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("clip.path", handle.Path),
		attribute.Float64("clip.duration", cycle.Duration),
	)

	if target != "" {
		if warn := s.attachAnimator(target, ""); warn != "" {
			warnings = append(warnings, warn)
		}
	}

	s.logger.Info(kind+" animation created", "name", name, "path", handle.Path, "duration", cycle.Duration)
	return &Result{
		Message: fmt.Sprintf("Created %s animation %q (duration %.2fs).", kind, name, cycle.Duration),
		Data: map[string]any{
			"path":     handle.Path,
			"duration": cycle.Duration,
			"curves":   len(spec.Curves),
		},
		Warnings: warnings,
	}, nil
}

// AddAnimatorParams are the inputs for AddAnimator. Target is required;
// ControllerPath is optional.
type AddAnimatorParams struct {
	Target         string
	ControllerPath string
}

// AddAnimator ensures the target object carries an Animator component and,
// when a controller path is given and resolves, assigns the controller.
func (s *Service) AddAnimator(ctx context.Context, p AddAnimatorParams) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "anim.AddAnimator")
	defer span.End()

	if p.Target == "" {
		return nil, model.InvalidSpecf("target object name is required")
	}
	if s.scene == nil {
		return nil, model.ResolutionMissf("no scene is available for attachment")
	}

	obj, ok := s.scene.FindObject(p.Target)
	if !ok {
		return nil, model.ResolutionMissf("scene object %q not found", p.Target)
	}
	s.scene.EnsureComponent(obj, animatorComponent)
	span.SetAttributes(attribute.String("scene.target", p.Target))

	var warnings []string
	data := map[string]any{"target": p.Target}
	if p.ControllerPath != "" {
		ctrl, err := s.store.LoadController(ctx, p.ControllerPath)
		switch {
		case errors.Is(err, asset.ErrNotFound):
			warnings = append(warnings, fmt.Sprintf("controller %q not found, not assigned", p.ControllerPath))
		case err != nil:
			return nil, err
		default:
			s.scene.SetController(obj, ctrl.Path)
			data["controller"] = ctrl.Path
		}
	}

	s.logger.Info("animator attached", "target", p.Target, "controller", p.ControllerPath)
	return &Result{
		Message:  fmt.Sprintf("Added Animator to %q.", p.Target),
		Data:     data,
		Warnings: warnings,
	}, nil
}

// ControllerParams are the inputs for CreateController. Clips are asset
// paths of previously saved clips.
type ControllerParams struct {
	Name   string
	Folder string
	Clips  []string
}

// CreateController assembles an animator controller from saved clips. Clip
// paths that fail to resolve are skipped with a warning; the first resolved
// clip becomes the default state.
func (s *Service) CreateController(ctx context.Context, p ControllerParams) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "anim.CreateController")
	defer span.End()

	if p.Name == "" {
		return nil, model.InvalidSpecf("controller name is required")
	}
	if p.Folder == "" {
		p.Folder = DefaultFolder
	}
	if len(p.Clips) == 0 {
		return nil, model.InvalidSpecf("at least one clip path is required")
	}

	handles := make([]*model.ClipHandle, len(p.Clips))
	for i, clipPath := range p.Clips {
		h, err := s.store.LoadClip(ctx, clipPath)
		switch {
		case errors.Is(err, asset.ErrNotFound):
			// Leave the slot nil; the graph builder reports the skip.
		case err != nil:
			return nil, err
		default:
			handles[i] = h
		}
	}

	spec, warnings, err := graph.Build(p.Name, handles)
	if err != nil {
		return nil, err
	}

	if err := s.store.EnsureFolder(ctx, p.Folder); err != nil {
		return nil, err
	}
	ctrlPath := path.Join(p.Folder, p.Name+".controller")
	handle, err := s.store.SaveController(ctx, ctrlPath, spec)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("controller.path", handle.Path),
		attribute.Int("controller.states", len(spec.States)),
	)

	s.logger.Info("controller created", "name", p.Name, "path", handle.Path, "states", len(spec.States))
	return &Result{
		Message: fmt.Sprintf("Created animator controller %q with %d state(s).", p.Name, len(spec.States)),
		Data: map[string]any{
			"path":         handle.Path,
			"states":       len(spec.States),
			"defaultState": spec.States[spec.DefaultState].Label,
		},
		Warnings: warnings,
	}, nil
}

// resolveComponent resolves a component name through the builtin table,
// then the secondary type resolver. Unresolvable names fall back to
// Transform: authoring never hard-fails on a component spelling, but the
// fallback is reported so typos stay observable.
func (s *Service) resolveComponent(name string) (model.ComponentRef, string) {
	if name == "" {
		return model.ComponentRef{Kind: model.KindTransform, Name: "Transform"}, ""
	}
	ref := curve.ResolveComponentKind(name)
	if ref.Kind != model.KindUnresolved {
		return ref, ""
	}
	if s.types != nil {
		if kind, ok := s.types.ResolveByName(name); ok {
			return model.ComponentRef{Kind: kind, Name: name}, ""
		}
	}
	return model.ComponentRef{Kind: model.KindTransform, Name: name},
		fmt.Sprintf("component type %q not resolved, defaulting to Transform", name)
}

// attachAnimator attaches an Animator to the named target, returning a
// warning instead of failing when the target cannot be found.
func (s *Service) attachAnimator(target, controllerPath string) string {
	if s.scene == nil {
		return fmt.Sprintf("no scene available, Animator not attached to %q", target)
	}
	obj, ok := s.scene.FindObject(target)
	if !ok {
		return fmt.Sprintf("target %q not found, Animator not attached", target)
	}
	s.scene.EnsureComponent(obj, animatorComponent)
	if controllerPath != "" {
		s.scene.SetController(obj, controllerPath)
	}
	return ""
}

// saveClip ensures the folder and writes the clip under
// <folder>/<name>.anim.
func (s *Service) saveClip(ctx context.Context, folder string, spec model.ClipSpec) (*model.ClipHandle, error) {
	if err := s.store.EnsureFolder(ctx, folder); err != nil {
		return nil, err
	}
	return s.store.SaveClip(ctx, path.Join(folder, spec.Name+".anim"), spec)
}
