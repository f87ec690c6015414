package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/repository/jsonfile"
	"github.com/secmon-lab/mnemosyne/pkg/repository/memory"
	"github.com/secmon-lab/mnemosyne/pkg/repository/sqlite"
)

// Service owns the per-user memory document lifecycle. Read-modify-write
// cycles for the same user are serialized through a per-user mutex so
// concurrent requests never lose an update; different users proceed
// independently.
type Service struct {
	repo interfaces.Repository

	mu    sync.Mutex
	locks map[types.UserID]*sync.Mutex

	now func() time.Time
}

// Option configures the Service
type Option func(*Service)

// WithClock injects a clock, used by tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a memory store service on top of a repository
func New(repo interfaces.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		locks: map[types.UserID]*sync.Mutex{},
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) userLock(userID types.UserID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[userID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) ||
		errors.Is(err, jsonfile.ErrNotFound) ||
		errors.Is(err, sqlite.ErrNotFound)
}

// load fetches and normalizes the document without locking. A missing
// document yields a fresh skeleton; anything else is surfaced to the
// caller so corruption is never masked by an empty document.
func (s *Service) load(ctx context.Context, userID types.UserID) (*model.MemoryDocument, error) {
	doc, err := s.repo.GetDocument(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return model.NewMemoryDocument(), nil
		}
		return nil, goerr.Wrap(err, "failed to load memory document",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}

	doc.Normalize()
	return doc, nil
}

// Load returns the user's document, or a new skeleton on first access
func (s *Service) Load(ctx context.Context, userID types.UserID) (*model.MemoryDocument, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.load(ctx, userID)
}

// Save persists the full document. Write failures are surfaced, not
// retried; the previously persisted document stays intact.
func (s *Service) Save(ctx context.Context, userID types.UserID, doc *model.MemoryDocument) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.save(ctx, userID, doc)
}

func (s *Service) save(ctx context.Context, userID types.UserID, doc *model.MemoryDocument) error {
	if err := s.repo.PutDocument(ctx, userID, doc); err != nil {
		return goerr.Wrap(err, "failed to save memory document",
			goerr.V("userID", userID), goerr.T(types.TagStorage))
	}
	return nil
}

// Update runs fn inside a single logical read-modify-write cycle for the
// user and persists the result. If fn returns an error, nothing is
// written.
func (s *Service) Update(ctx context.Context, userID types.UserID, fn func(doc *model.MemoryDocument) error) (*model.MemoryDocument, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := fn(doc); err != nil {
		return nil, err
	}

	if err := s.save(ctx, userID, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// AppendEvent appends a timestamped life event as one atomic RMW cycle
// and returns the updated document.
func (s *Service) AppendEvent(ctx context.Context, userID types.UserID, text string) (*model.MemoryDocument, error) {
	return s.Update(ctx, userID, func(doc *model.MemoryDocument) error {
		doc.AppendEvent(text, s.now())
		return nil
	})
}

// Clear resets the user's document to the empty skeleton and persists it
func (s *Service) Clear(ctx context.Context, userID types.UserID) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.save(ctx, userID, model.NewMemoryDocument())
}

// Now returns the service clock's current time
func (s *Service) Now() time.Time {
	return s.now()
}
