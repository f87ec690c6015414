package interfaces

import (
	"context"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// Repository defines the persistence contract for memory documents.
// Implementations must make PutDocument atomic with respect to
// concurrent reads: a reader never observes a partially written
// document. Serialization of read-modify-write cycles per user is the
// memory store's job, not the repository's.
type Repository interface {
	// GetDocument retrieves the document for a user. Returns an error
	// wrapping the backend's ErrNotFound when the user has no document
	// yet, and a TagStorage-tagged error when the stored content is
	// malformed.
	GetDocument(ctx context.Context, userID types.UserID) (*model.MemoryDocument, error)

	// PutDocument persists the full document for a user
	PutDocument(ctx context.Context, userID types.UserID, doc *model.MemoryDocument) error

	// DeleteDocument removes the document for a user. Deleting a
	// missing document is not an error.
	DeleteDocument(ctx context.Context, userID types.UserID) error

	// ListUsers returns the IDs of all users with a stored document
	ListUsers(ctx context.Context) ([]types.UserID, error)

	// Close releases backend resources
	Close() error
}
