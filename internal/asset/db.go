package asset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/animsmith/animsmith/internal/model"
)

const (
	kindClip       = "clip"
	kindController = "controller"
)

const schema = `
CREATE TABLE IF NOT EXISTS folders (
	path       TEXT PRIMARY KEY,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assets (
	id         TEXT NOT NULL,
	path       TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	name       TEXT NOT NULL,
	spec       TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assets_kind_created ON assets(kind, created_at DESC);
`

// DB is the SQLite-backed asset catalog.
type DB struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ Store = (*DB)(nil)

// Open opens (creating if necessary) the catalog database at path and
// applies the schema. The parent directory is created when missing.
func Open(path string, logger *slog.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("asset: create catalog dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("asset: open catalog: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("asset: apply schema: %w", err)
	}
	return &DB{db: conn, logger: logger}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) EnsureFolder(ctx context.Context, folder string) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO folders (path, created_at) VALUES (?, ?) ON CONFLICT(path) DO NOTHING`,
		folder, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return persistErr(fmt.Sprintf("ensure folder %q", folder), err)
	}
	return nil
}

func (d *DB) SaveClip(ctx context.Context, path string, spec model.ClipSpec) (*model.ClipHandle, error) {
	id, createdAt, err := d.save(ctx, path, kindClip, spec.Name, spec)
	if err != nil {
		return nil, persistErr(fmt.Sprintf("save clip %q", path), err)
	}
	d.logger.Debug("asset: clip saved", "path", path, "curves", len(spec.Curves))
	return &model.ClipHandle{ID: id, Name: spec.Name, Path: path, CreatedAt: createdAt}, nil
}

func (d *DB) SaveController(ctx context.Context, path string, spec model.StateGraphSpec) (*model.ControllerHandle, error) {
	id, createdAt, err := d.save(ctx, path, kindController, spec.Name, spec)
	if err != nil {
		return nil, persistErr(fmt.Sprintf("save controller %q", path), err)
	}
	d.logger.Debug("asset: controller saved", "path", path, "states", len(spec.States))
	return &model.ControllerHandle{ID: id, Name: spec.Name, Path: path, CreatedAt: createdAt}, nil
}

// save upserts an asset row. Re-authoring replaces the stored spec but keeps
// the asset's identity and creation time stable.
func (d *DB) save(ctx context.Context, path, kind, name string, spec any) (uuid.UUID, time.Time, error) {
	raw, err := json.Marshal(spec)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("marshal spec: %w", err)
	}
	id := uuid.New()
	now := time.Now().UTC()
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO assets (id, path, kind, name, spec, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET kind = excluded.kind, name = excluded.name, spec = excluded.spec`,
		id.String(), path, kind, name, string(raw), now.Format(time.RFC3339Nano))
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}

	// The upsert keeps the original row's id and created_at; read them back
	// so repeated saves return a stable handle.
	var idStr, createdStr string
	err = d.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM assets WHERE path = ?`, path).Scan(&idStr, &createdStr)
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}
	storedID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("parse asset id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("parse created_at: %w", err)
	}
	return storedID, createdAt, nil
}

func (d *DB) LoadClip(ctx context.Context, path string) (*model.ClipHandle, error) {
	id, name, createdAt, err := d.lookup(ctx, path, kindClip)
	if err != nil {
		return nil, err
	}
	return &model.ClipHandle{ID: id, Name: name, Path: path, CreatedAt: createdAt}, nil
}

func (d *DB) LoadController(ctx context.Context, path string) (*model.ControllerHandle, error) {
	id, name, createdAt, err := d.lookup(ctx, path, kindController)
	if err != nil {
		return nil, err
	}
	return &model.ControllerHandle{ID: id, Name: name, Path: path, CreatedAt: createdAt}, nil
}

func (d *DB) lookup(ctx context.Context, path, kind string) (uuid.UUID, string, time.Time, error) {
	var idStr, name, createdStr string
	err := d.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM assets WHERE path = ? AND kind = ?`, path, kind).
		Scan(&idStr, &name, &createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, "", time.Time{}, fmt.Errorf("%w: %s %q", ErrNotFound, kind, path)
	}
	if err != nil {
		return uuid.Nil, "", time.Time{}, persistErr(fmt.Sprintf("load %s %q", kind, path), err)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", time.Time{}, persistErr("parse asset id", err)
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, createdStr)
	return id, name, createdAt, nil
}

func (d *DB) GetClip(ctx context.Context, path string) (model.ClipSpec, error) {
	var raw string
	err := d.db.QueryRowContext(ctx,
		`SELECT spec FROM assets WHERE path = ? AND kind = ?`, path, kindClip).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ClipSpec{}, fmt.Errorf("%w: clip %q", ErrNotFound, path)
	}
	if err != nil {
		return model.ClipSpec{}, persistErr(fmt.Sprintf("get clip %q", path), err)
	}
	var spec model.ClipSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return model.ClipSpec{}, persistErr(fmt.Sprintf("decode clip %q", path), err)
	}
	return spec, nil
}

func (d *DB) ListClips(ctx context.Context, limit int) ([]model.ClipHandle, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, path, created_at FROM assets
		WHERE kind = ? ORDER BY created_at DESC, path LIMIT ?`, kindClip, limit)
	if err != nil {
		return nil, persistErr("list clips", err)
	}
	defer rows.Close()

	var clips []model.ClipHandle
	for rows.Next() {
		var idStr, name, path, createdStr string
		if err := rows.Scan(&idStr, &name, &path, &createdStr); err != nil {
			return nil, persistErr("scan clip row", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, persistErr("parse asset id", err)
		}
		createdAt, _ := time.Parse(time.RFC3339Nano, createdStr)
		clips = append(clips, model.ClipHandle{ID: id, Name: name, Path: path, CreatedAt: createdAt})
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list clips", err)
	}
	return clips, nil
}
