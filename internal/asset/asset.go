// Package asset persists authored animation specs in a local SQLite-backed
// catalog. The authoring core never touches the filesystem or the catalog
// directly; it goes through the Store interface so a live host can supply
// its own sink.
package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/animsmith/animsmith/internal/model"
)

// ErrNotFound is returned when a requested asset does not exist.
var ErrNotFound = errors.New("asset: not found")

// Store is the asset sink consumed by the authoring service.
type Store interface {
	// EnsureFolder makes sure the asset folder exists in the catalog.
	EnsureFolder(ctx context.Context, folder string) error
	// SaveClip writes a clip spec at the given asset path, replacing any
	// previous clip at that path.
	SaveClip(ctx context.Context, path string, spec model.ClipSpec) (*model.ClipHandle, error)
	// SaveController writes a controller spec at the given asset path.
	SaveController(ctx context.Context, path string, spec model.StateGraphSpec) (*model.ControllerHandle, error)
	// LoadClip resolves an asset path to a clip handle. Returns ErrNotFound
	// when no clip exists at the path.
	LoadClip(ctx context.Context, path string) (*model.ClipHandle, error)
	// LoadController resolves an asset path to a controller handle.
	LoadController(ctx context.Context, path string) (*model.ControllerHandle, error)
	// GetClip returns the full spec stored at the path.
	GetClip(ctx context.Context, path string) (model.ClipSpec, error)
	// ListClips returns the most recently written clips, newest first.
	ListClips(ctx context.Context, limit int) ([]model.ClipHandle, error)
}

// persistErr classifies a sink failure under the retryable persistence kind
// while keeping the underlying cause inspectable.
func persistErr(op string, err error) error {
	return fmt.Errorf("asset: %s: %w", op, errors.Join(model.ErrPersistenceFailure, err))
}
