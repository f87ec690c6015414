package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

var (
	// ErrNotFound is returned when no document file exists for a user
	ErrNotFound = goerr.New("document not found")

	// ErrCorrupted is returned when a stored document cannot be parsed.
	// Corruption is surfaced to the caller, never papered over with an
	// empty skeleton, so data loss cannot go unnoticed.
	ErrCorrupted = goerr.New("document is corrupted", goerr.T(types.TagStorage))
)

const fileExt = ".json"

// Repository persists one JSON document per user under a root directory.
// Writes go to a temporary file in the same directory followed by a
// rename, so a concurrent reader never observes a partial document.
type Repository struct {
	dir string
}

var _ interfaces.Repository = &Repository{}

// New creates a jsonfile repository rooted at dir, creating it if needed
func New(dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create document directory",
			goerr.V("dir", dir), goerr.T(types.TagStorage))
	}
	return &Repository{dir: dir}, nil
}

func (r *Repository) path(userID types.UserID) string {
	return filepath.Join(r.dir, userID.String()+fileExt)
}

func (r *Repository) GetDocument(ctx context.Context, userID types.UserID) (*model.MemoryDocument, error) {
	raw, err := os.ReadFile(r.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrNotFound, "no document file for user", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to read document file",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}

	var doc model.MemoryDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, goerr.Wrap(ErrCorrupted, "failed to parse document file",
			goerr.V("userID", userID),
			goerr.V("path", r.path(userID)),
			goerr.V("parse_error", err.Error()),
		)
	}

	return &doc, nil
}

func (r *Repository) PutDocument(ctx context.Context, userID types.UserID, doc *model.MemoryDocument) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode document",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}

	// Atomic replace: write to a temp file in the same directory, then
	// rename over the destination. Rename within one filesystem is a
	// single indivisible step.
	tmp, err := os.CreateTemp(r.dir, "."+userID.String()+"-*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp document file",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to write temp document file",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to close temp document file",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}

	if err := os.Rename(tmpPath, r.path(userID)); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to replace document file",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}

	return nil
}

func (r *Repository) DeleteDocument(ctx context.Context, userID types.UserID) error {
	if err := os.Remove(r.path(userID)); err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to delete document file",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}
	return nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]types.UserID, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read document directory",
			goerr.V("dir", r.dir), goerr.T(types.TagStorage))
	}

	users := make([]types.UserID, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
			continue
		}
		users = append(users, types.UserID(strings.TrimSuffix(name, fileExt)))
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })

	return users, nil
}

func (r *Repository) Close() error {
	return nil
}
