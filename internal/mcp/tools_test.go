package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/animsmith/animsmith/internal/asset"
	"github.com/animsmith/animsmith/internal/model"
	"github.com/animsmith/animsmith/internal/scene"
	"github.com/animsmith/animsmith/internal/service/anim"
	"github.com/animsmith/animsmith/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, *asset.DB, *scene.Memory) {
	t.Helper()
	logger := testutil.TestLogger()

	db, err := asset.Open(filepath.Join(t.TempDir(), "catalog.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sc := scene.NewMemory()
	svc := anim.New(db, sc, scene.NewAliasResolver(), logger)
	return New(svc, db, logger, "test"), db, sc
}

func callRequest(tool string, args map[string]any) mcplib.CallToolRequest {
	return mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Name:      tool,
			Arguments: args,
		},
	}
}

// toolText extracts the first TextContent text from a CallToolResult.
func toolText(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	for _, c := range result.Content {
		if tc, ok := c.(mcplib.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("result has no text content")
	return ""
}

// toolResult decodes a successful tool response envelope.
func toolResult(t *testing.T, result *mcplib.CallToolResult) anim.Result {
	t.Helper()
	require.False(t, result.IsError, "unexpected tool error: %s", toolText(t, result))
	var r anim.Result
	require.NoError(t, json.Unmarshal([]byte(toolText(t, result)), &r))
	return r
}

func TestCreateIdleEndToEnd(t *testing.T) {
	s, db, _ := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleCreateIdle(ctx, callRequest("anim_create_idle", map[string]any{
		"name":      "PlayerIdle",
		"speed":     1.0,
		"amplitude": 0.05,
	}))
	require.NoError(t, err)
	r := toolResult(t, result)

	assert.Equal(t, 2.0, r.Data["duration"])
	assert.Equal(t, "Assets/Animations/PlayerIdle.anim", r.Data["path"])

	spec, err := db.GetClip(ctx, "Assets/Animations/PlayerIdle.anim")
	require.NoError(t, err)
	require.Len(t, spec.Curves, 2)
	assert.True(t, spec.Loop())

	scaleY := spec.Curves[0]
	assert.Equal(t, "localScale.y", scaleY.Property)
	wantTimes := []float64{0, 0.5, 1.0, 1.5, 2.0}
	wantValues := []float64{1, 1.05, 1, 0.975, 1}
	require.Len(t, scaleY.Keys, 5)
	for i, k := range scaleY.Keys {
		assert.Equal(t, wantTimes[i], k.Time, "key %d time", i)
		assert.InDelta(t, wantValues[i], k.Value, 1e-12, "key %d value", i)
		assert.Equal(t, model.TangentAuto, k.Tangent, "key %d tangent", i)
	}
}

func TestCreateWalkEndToEnd(t *testing.T) {
	s, db, _ := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleCreateWalk(ctx, callRequest("anim_create_walk", map[string]any{
		"name":       "PlayerWalk",
		"speed":      2.0,
		"stepHeight": 0.1,
		"swayAmount": 5.0,
	}))
	require.NoError(t, err)
	r := toolResult(t, result)
	assert.Equal(t, 0.5, r.Data["duration"])

	spec, err := db.GetClip(ctx, "Assets/Animations/PlayerWalk.anim")
	require.NoError(t, err)

	posY := spec.Curves[0]
	assert.Equal(t, "localPosition.y", posY.Property)
	wantTimes := []float64{0, 0.125, 0.25, 0.375, 0.5}
	wantValues := []float64{0, 0.1, 0, 0.1, 0}
	require.Len(t, posY.Keys, 5)
	for i, k := range posY.Keys {
		assert.Equal(t, wantTimes[i], k.Time, "key %d time", i)
		assert.Equal(t, wantValues[i], k.Value, "key %d value", i)
	}
}

func TestCreateIdleAttachesAnimator(t *testing.T) {
	s, _, sc := newTestServer(t)
	sc.Register("Player")

	result, err := s.handleCreateIdle(context.Background(), callRequest("anim_create_idle", map[string]any{
		"name":   "PlayerIdle",
		"target": "Player",
	}))
	require.NoError(t, err)
	r := toolResult(t, result)
	assert.Empty(t, r.Warnings)

	obj, ok := sc.FindObject("Player")
	require.True(t, ok)
	assert.True(t, obj.HasComponent("Animator"))
}

func TestCreateIdleMissingTargetIsWarningOnly(t *testing.T) {
	s, db, _ := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleCreateIdle(ctx, callRequest("anim_create_idle", map[string]any{
		"name":   "PlayerIdle",
		"target": "Ghost",
	}))
	require.NoError(t, err)
	r := toolResult(t, result)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "Ghost")

	// The clip itself must still exist.
	_, err = db.LoadClip(ctx, "Assets/Animations/PlayerIdle.anim")
	require.NoError(t, err)
}

func TestCreateIdleRejectsBadSpeed(t *testing.T) {
	s, _, _ := newTestServer(t)

	result, err := s.handleCreateIdle(context.Background(), callRequest("anim_create_idle", map[string]any{
		"name":  "PlayerIdle",
		"speed": -1.0,
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, toolText(t, result), "invalid_spec")
}

func TestCreateClipCustomCurves(t *testing.T) {
	s, db, _ := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleCreateClip(ctx, callRequest("anim_create_clip", map[string]any{
		"name": "Bounce",
		"loop": false,
		"curves": []any{
			map[string]any{
				"targetPath":    "",
				"componentType": "Transform",
				"property":      "localPosition.y",
				"keyframes": []any{
					map[string]any{"time": 0.0, "value": 0.0},
					map[string]any{"time": 0.5, "value": 1.0, "tangent": "smooth"},
					map[string]any{"time": 1.0, "value": 0.0},
				},
			},
		},
	}))
	require.NoError(t, err)
	r := toolResult(t, result)
	assert.Equal(t, float64(1), r.Data["curves"])

	spec, err := db.GetClip(ctx, "Assets/Animations/Bounce.anim")
	require.NoError(t, err)
	assert.False(t, spec.Loop())
	require.Len(t, spec.Curves, 1)

	keys := spec.Curves[0].Keys
	require.Len(t, keys, 3)
	assert.Equal(t, model.TangentLinear, keys[0].Tangent)
	assert.Equal(t, model.TangentAuto, keys[1].Tangent)
	assert.Equal(t, model.TangentLinear, keys[2].Tangent)
}

func TestCreateClipUnknownComponentFallsBack(t *testing.T) {
	s, db, _ := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleCreateClip(ctx, callRequest("anim_create_clip", map[string]any{
		"name": "Odd",
		"curves": []any{
			map[string]any{
				"componentType": "Trasnform",
				"property":      "localPosition.x",
				"keyframes": []any{
					map[string]any{"time": 0.0, "value": 0.0},
					map[string]any{"time": 1.0, "value": 1.0},
				},
			},
		},
	}))
	require.NoError(t, err)
	r := toolResult(t, result)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "Trasnform")

	spec, err := db.GetClip(ctx, "Assets/Animations/Odd.anim")
	require.NoError(t, err)
	assert.Equal(t, model.KindTransform, spec.Curves[0].Component.Kind)
}

func TestCreateControllerEndToEnd(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx := context.Background()

	for _, name := range []string{"Idle", "Walk", "Run"} {
		result, err := s.handleCreateIdle(ctx, callRequest("anim_create_idle", map[string]any{"name": name}))
		require.NoError(t, err)
		toolResult(t, result)
	}

	result, err := s.handleCreateController(ctx, callRequest("anim_create_controller", map[string]any{
		"name": "Locomotion",
		"clips": []any{
			"Assets/Animations/Idle.anim",
			"Assets/Animations/Walk.anim",
			"Assets/Animations/Run.anim",
		},
	}))
	require.NoError(t, err)
	r := toolResult(t, result)
	assert.Equal(t, float64(3), r.Data["states"])
	assert.Equal(t, "Idle", r.Data["defaultState"])
	assert.Equal(t, "Assets/Animations/Locomotion.controller", r.Data["path"])
}

func TestCreateControllerSingleClip(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleCreateIdle(ctx, callRequest("anim_create_idle", map[string]any{"name": "Idle"}))
	require.NoError(t, err)
	toolResult(t, result)

	result, err = s.handleCreateController(ctx, callRequest("anim_create_controller", map[string]any{
		"name":  "Solo",
		"clips": []any{"Assets/Animations/Idle.anim"},
	}))
	require.NoError(t, err)
	r := toolResult(t, result)
	assert.Equal(t, float64(1), r.Data["states"])
	assert.Equal(t, "Idle", r.Data["defaultState"])
}

func TestCreateControllerNoClipsFails(t *testing.T) {
	s, _, _ := newTestServer(t)

	result, err := s.handleCreateController(context.Background(), callRequest("anim_create_controller", map[string]any{
		"name": "Empty",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, toolText(t, result), "invalid_spec")
}

func TestCreateControllerSkipsMissingClips(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleCreateIdle(ctx, callRequest("anim_create_idle", map[string]any{"name": "Idle"}))
	require.NoError(t, err)
	toolResult(t, result)

	result, err = s.handleCreateController(ctx, callRequest("anim_create_controller", map[string]any{
		"name": "Partial",
		"clips": []any{
			"Assets/Animations/Idle.anim",
			"Assets/Animations/Missing.anim",
		},
	}))
	require.NoError(t, err)
	r := toolResult(t, result)
	assert.Equal(t, float64(1), r.Data["states"])
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "reference 1")
}

func TestAddAnimator(t *testing.T) {
	s, _, sc := newTestServer(t)
	ctx := context.Background()
	sc.Register("Player")

	// Author a controller to assign.
	result, err := s.handleCreateIdle(ctx, callRequest("anim_create_idle", map[string]any{"name": "Idle"}))
	require.NoError(t, err)
	toolResult(t, result)
	result, err = s.handleCreateController(ctx, callRequest("anim_create_controller", map[string]any{
		"name":  "Main",
		"clips": []any{"Assets/Animations/Idle.anim"},
	}))
	require.NoError(t, err)
	toolResult(t, result)

	result, err = s.handleAddAnimator(ctx, callRequest("anim_add_animator", map[string]any{
		"target":         "Player",
		"controllerPath": "Assets/Animations/Main.controller",
	}))
	require.NoError(t, err)
	r := toolResult(t, result)
	assert.Empty(t, r.Warnings)

	obj, _ := sc.FindObject("Player")
	assert.True(t, obj.HasComponent("Animator"))
	assert.Equal(t, "Assets/Animations/Main.controller", obj.Controller)
}

func TestAddAnimatorMissingTarget(t *testing.T) {
	s, _, _ := newTestServer(t)

	result, err := s.handleAddAnimator(context.Background(), callRequest("anim_add_animator", map[string]any{
		"target": "Ghost",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, toolText(t, result), "resolution_miss")
}

func TestAddAnimatorMissingControllerIsWarning(t *testing.T) {
	s, _, sc := newTestServer(t)
	sc.Register("Player")

	result, err := s.handleAddAnimator(context.Background(), callRequest("anim_add_animator", map[string]any{
		"target":         "Player",
		"controllerPath": "Assets/Animations/Nope.controller",
	}))
	require.NoError(t, err)
	r := toolResult(t, result)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "not assigned")
}

func TestRequiredStringValidation(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx := context.Background()

	calls := []func() (*mcplib.CallToolResult, error){
		func() (*mcplib.CallToolResult, error) {
			return s.handleCreateClip(ctx, callRequest("anim_create_clip", map[string]any{}))
		},
		func() (*mcplib.CallToolResult, error) {
			return s.handleCreateIdle(ctx, callRequest("anim_create_idle", map[string]any{}))
		},
		func() (*mcplib.CallToolResult, error) {
			return s.handleCreateWalk(ctx, callRequest("anim_create_walk", map[string]any{}))
		},
		func() (*mcplib.CallToolResult, error) {
			return s.handleAddAnimator(ctx, callRequest("anim_add_animator", map[string]any{}))
		},
		func() (*mcplib.CallToolResult, error) {
			return s.handleCreateController(ctx, callRequest("anim_create_controller", map[string]any{}))
		},
	}
	for i, call := range calls {
		result, err := call()
		require.NoError(t, err, "call %d", i)
		assert.True(t, result.IsError, "call %d must reject missing required string", i)
	}
}
