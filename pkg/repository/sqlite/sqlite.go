package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

var (
	// ErrNotFound is returned when no row exists for a user
	ErrNotFound = goerr.New("document not found")

	// ErrCorrupted is returned when a stored document cannot be parsed
	ErrCorrupted = goerr.New("document is corrupted", goerr.T(types.TagStorage))
)

// Repository stores one document row per user in a SQLite table. The
// document body is JSON text; atomicity of replacement comes from the
// transactional upsert.
type Repository struct {
	db *sql.DB
}

var _ interfaces.Repository = &Repository{}

// New opens or creates a SQLite database at the given path
func New(dbPath string) (*Repository, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create db directory",
			goerr.V("dir", dir), goerr.T(types.TagStorage))
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database",
			goerr.V("path", dbPath), goerr.T(types.TagStorage))
	}

	r := &Repository{db: db}
	if err := r.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return r, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_memory (
		user_id    TEXT PRIMARY KEY,
		document   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`

	if _, err := r.db.Exec(schema); err != nil {
		return goerr.Wrap(err, "failed to migrate schema", goerr.T(types.TagStorage))
	}
	return nil
}

func (r *Repository) GetDocument(ctx context.Context, userID types.UserID) (*model.MemoryDocument, error) {
	var raw string
	row := r.db.QueryRowContext(ctx,
		`SELECT document FROM user_memory WHERE user_id = ?`, userID.String())
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "no document row for user", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to query document",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}

	var doc model.MemoryDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, goerr.Wrap(ErrCorrupted, "failed to parse document row",
			goerr.V("userID", userID),
			goerr.V("parse_error", err.Error()),
		)
	}

	return &doc, nil
}

func (r *Repository) PutDocument(ctx context.Context, userID types.UserID, doc *model.MemoryDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return goerr.Wrap(err, "failed to encode document",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_memory (user_id, document, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at`,
		userID.String(), string(raw), now, now)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert document",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}

	return nil
}

func (r *Repository) DeleteDocument(ctx context.Context, userID types.UserID) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM user_memory WHERE user_id = ?`, userID.String()); err != nil {
		return goerr.Wrap(err, "failed to delete document row",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}
	return nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]types.UserID, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM user_memory ORDER BY user_id`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users", goerr.T(types.TagStorage))
	}
	defer rows.Close()

	var users []types.UserID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, goerr.Wrap(err, "failed to scan user row", goerr.T(types.TagStorage))
		}
		users = append(users, types.UserID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate user rows", goerr.T(types.TagStorage))
	}

	return users, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
