package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/animsmith/animsmith/internal/model"
	"github.com/animsmith/animsmith/internal/service/anim"
)

func (s *Server) registerTools() {
	// anim_create_clip — build a clip from explicit curve specs.
	s.mcpServer.AddTool(
		mcplib.NewTool("anim_create_clip",
			mcplib.WithDescription(`Create an animation clip from custom property curves.

Each curve binds an ordered keyframe list to one property of one component
on one target. Supply keyframes in ascending time order; they are never
re-sorted. A keyframe's optional "tangent" is "smooth"/"auto" for smoothed
interpolation, anything else for linear.

EXAMPLE curve:
{"targetPath": "", "componentType": "Transform", "property": "localPosition.y",
 "keyframes": [{"time": 0, "value": 0}, {"time": 0.5, "value": 1, "tangent": "smooth"}, {"time": 1, "value": 0}]}`),
			mcplib.WithDestructiveHintAnnotation(false),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("name",
				mcplib.Description("Name of the animation clip"),
				mcplib.Required(),
			),
			mcplib.WithString("path",
				mcplib.Description("Asset folder for saving (default: Assets/Animations)"),
			),
			mcplib.WithNumber("frameRate",
				mcplib.Description("Frame rate of the clip"),
				mcplib.Min(1),
				mcplib.DefaultNumber(anim.DefaultFrameRate),
			),
			mcplib.WithBoolean("loop",
				mcplib.Description("Whether the clip loops (sets both loop time and loop blend)"),
				mcplib.DefaultBool(true),
			),
			mcplib.WithArray("curves",
				mcplib.Description("Curve specs: targetPath, componentType, property, keyframes"),
				mcplib.Items(map[string]any{"type": "object"}),
			),
		),
		s.handleCreateClip,
	)

	// anim_create_idle — procedural breathing idle cycle.
	s.mcpServer.AddTool(
		mcplib.NewTool("anim_create_idle",
			mcplib.WithDescription(`Create a looping idle (breathing) animation clip.

Generates a vertical scale pulse scaled by amplitude plus a subtle fixed
body rock. Duration is 2.0/speed seconds. Optionally attaches an Animator
component to a named scene object.`),
			mcplib.WithDestructiveHintAnnotation(false),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("name",
				mcplib.Description("Name of the animation clip"),
				mcplib.Required(),
			),
			mcplib.WithString("path",
				mcplib.Description("Asset folder for saving (default: Assets/Animations)"),
			),
			mcplib.WithString("target",
				mcplib.Description("Optional scene object to attach an Animator to"),
			),
			mcplib.WithNumber("speed",
				mcplib.Description("Speed multiplier; duration is 2.0/speed"),
				mcplib.DefaultNumber(anim.DefaultSpeed),
			),
			mcplib.WithNumber("amplitude",
				mcplib.Description("Breathing amplitude for the scale pulse"),
				mcplib.Min(0),
				mcplib.DefaultNumber(anim.DefaultAmplitude),
			),
			mcplib.WithNumber("frameRate",
				mcplib.Description("Frame rate of the clip"),
				mcplib.Min(1),
				mcplib.DefaultNumber(anim.DefaultFrameRate),
			),
		),
		s.handleCreateIdle,
	)

	// anim_create_walk — procedural walk cycle.
	s.mcpServer.AddTool(
		mcplib.NewTool("anim_create_walk",
			mcplib.WithDescription(`Create a looping walk-cycle animation clip.

Generates a two-step vertical bob (stepHeight) plus alternating body sway
(swayAmount, degrees). Duration is 1.0/speed seconds.`),
			mcplib.WithDestructiveHintAnnotation(false),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("name",
				mcplib.Description("Name of the animation clip"),
				mcplib.Required(),
			),
			mcplib.WithString("path",
				mcplib.Description("Asset folder for saving (default: Assets/Animations)"),
			),
			mcplib.WithString("target",
				mcplib.Description("Optional scene object to attach an Animator to"),
			),
			mcplib.WithNumber("speed",
				mcplib.Description("Speed multiplier; duration is 1.0/speed"),
				mcplib.DefaultNumber(anim.DefaultSpeed),
			),
			mcplib.WithNumber("stepHeight",
				mcplib.Description("Height of each step's vertical bob"),
				mcplib.Min(0),
				mcplib.DefaultNumber(anim.DefaultStepHeight),
			),
			mcplib.WithNumber("swayAmount",
				mcplib.Description("Body sway magnitude in degrees"),
				mcplib.Min(0),
				mcplib.DefaultNumber(anim.DefaultSway),
			),
			mcplib.WithNumber("frameRate",
				mcplib.Description("Frame rate of the clip"),
				mcplib.Min(1),
				mcplib.DefaultNumber(anim.DefaultFrameRate),
			),
		),
		s.handleCreateWalk,
	)

	// anim_add_animator — attach an Animator to a scene object.
	s.mcpServer.AddTool(
		mcplib.NewTool("anim_add_animator",
			mcplib.WithDescription(`Add an Animator component to a named scene object.

Optionally assigns a previously created controller. A missing controller is
reported as a warning; a missing target object fails the call.`),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("target",
				mcplib.Description("Name of the scene object"),
				mcplib.Required(),
			),
			mcplib.WithString("controllerPath",
				mcplib.Description("Asset path of an animator controller to assign"),
			),
		),
		s.handleAddAnimator,
	)

	// anim_create_controller — build a controller from saved clips.
	s.mcpServer.AddTool(
		mcplib.NewTool("anim_create_controller",
			mcplib.WithDescription(`Create an animator controller from previously saved clips.

The first clip becomes the default/entry state; each further clip becomes an
additional state named after the clip. No transitions are created. Clip
paths that cannot be resolved are skipped with a warning.`),
			mcplib.WithDestructiveHintAnnotation(false),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("name",
				mcplib.Description("Name of the controller"),
				mcplib.Required(),
			),
			mcplib.WithString("path",
				mcplib.Description("Asset folder for saving (default: Assets/Animations)"),
			),
			mcplib.WithArray("clips",
				mcplib.Description("Asset paths of the clips, in state order"),
				mcplib.Required(),
				mcplib.Items(map[string]any{"type": "string"}),
			),
		),
		s.handleCreateController,
	)
}

func (s *Server) handleCreateClip(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return errorResult("name is required"), nil
	}

	var curves []anim.CurveInput
	if raw, ok := request.GetArguments()["curves"]; ok && raw != nil {
		data, err := json.Marshal(raw)
		if err != nil {
			return errorResult(fmt.Sprintf("invalid curves argument: %v", err)), nil
		}
		if err := json.Unmarshal(data, &curves); err != nil {
			return errorResult(fmt.Sprintf("invalid curves argument: %v", err)), nil
		}
	}

	result, err := s.svc.CreateClip(ctx, anim.CreateClipParams{
		Name:      name,
		Folder:    request.GetString("path", ""),
		FrameRate: request.GetFloat("frameRate", anim.DefaultFrameRate),
		Loop:      request.GetBool("loop", true),
		Curves:    curves,
	})
	if err != nil {
		return classifiedError("create clip", err), nil
	}
	return successResult(result), nil
}

func (s *Server) handleCreateIdle(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return errorResult("name is required"), nil
	}

	result, err := s.svc.CreateIdleAnimation(ctx, anim.IdleParams{
		Name:      name,
		Folder:    request.GetString("path", ""),
		Target:    request.GetString("target", ""),
		Speed:     request.GetFloat("speed", anim.DefaultSpeed),
		Amplitude: request.GetFloat("amplitude", anim.DefaultAmplitude),
		FrameRate: request.GetFloat("frameRate", anim.DefaultFrameRate),
	})
	if err != nil {
		return classifiedError("create idle animation", err), nil
	}
	return successResult(result), nil
}

func (s *Server) handleCreateWalk(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return errorResult("name is required"), nil
	}

	result, err := s.svc.CreateWalkAnimation(ctx, anim.WalkParams{
		Name:       name,
		Folder:     request.GetString("path", ""),
		Target:     request.GetString("target", ""),
		Speed:      request.GetFloat("speed", anim.DefaultSpeed),
		StepHeight: request.GetFloat("stepHeight", anim.DefaultStepHeight),
		SwayAmount: request.GetFloat("swayAmount", anim.DefaultSway),
		FrameRate:  request.GetFloat("frameRate", anim.DefaultFrameRate),
	})
	if err != nil {
		return classifiedError("create walk animation", err), nil
	}
	return successResult(result), nil
}

func (s *Server) handleAddAnimator(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	target := request.GetString("target", "")
	if target == "" {
		return errorResult("target is required"), nil
	}

	result, err := s.svc.AddAnimator(ctx, anim.AddAnimatorParams{
		Target:         target,
		ControllerPath: request.GetString("controllerPath", ""),
	})
	if err != nil {
		return classifiedError("add animator", err), nil
	}
	return successResult(result), nil
}

func (s *Server) handleCreateController(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return errorResult("name is required"), nil
	}

	result, err := s.svc.CreateController(ctx, anim.ControllerParams{
		Name:   name,
		Folder: request.GetString("path", ""),
		Clips:  request.GetStringSlice("clips", nil),
	})
	if err != nil {
		return classifiedError("create controller", err), nil
	}
	return successResult(result), nil
}

// successResult renders the service result envelope as JSON text.
func successResult(result *anim.Result) *mcplib.CallToolResult {
	data, _ := json.MarshalIndent(result, "", "  ")
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: string(data)},
		},
	}
}

// classifiedError renders a service failure with its taxonomy kind so
// callers can tell a caller bug from a retryable environment issue.
func classifiedError(op string, err error) *mcplib.CallToolResult {
	return errorResult(fmt.Sprintf("%s failed (%s): %v", op, model.ErrorKind(err), err))
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
