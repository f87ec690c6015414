package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// ErrNotFound is returned when no document exists for a user
var ErrNotFound = goerr.New("document not found")

// Memory is an in-memory document repository for development and tests.
// Documents are deep-copied on the way in and out so callers never
// share mutable state with the store.
type Memory struct {
	mu   sync.RWMutex
	docs map[types.UserID]*model.MemoryDocument
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		docs: make(map[types.UserID]*model.MemoryDocument),
	}
}

func (m *Memory) GetDocument(ctx context.Context, userID types.UserID) (*model.MemoryDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, exists := m.docs[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "no document for user", goerr.V("userID", userID))
	}

	return doc.Clone(), nil
}

func (m *Memory) PutDocument(ctx context.Context, userID types.UserID, doc *model.MemoryDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[userID] = doc.Clone()
	return nil
}

func (m *Memory) DeleteDocument(ctx context.Context, userID types.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, userID)
	return nil
}

func (m *Memory) ListUsers(ctx context.Context) ([]types.UserID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]types.UserID, 0, len(m.docs))
	for id := range m.docs {
		users = append(users, id)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })

	return users, nil
}

func (m *Memory) Close() error {
	return nil
}
