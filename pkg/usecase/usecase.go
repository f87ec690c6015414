package usecase

import (
	"github.com/secmon-lab/mnemosyne/pkg/service/coach"
	"github.com/secmon-lab/mnemosyne/pkg/service/memstore"
)

type UseCases struct {
	store *memstore.Service
	coach coach.Service
}

type Option func(*UseCases)

func New(store *memstore.Service, coachSvc coach.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		store: store,
		coach: coachSvc,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
