package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
)

// GetMemory returns the user's full memory document
func (uc *UseCases) GetMemory(ctx context.Context, userID types.UserID) (*model.MemoryDocument, error) {
	return uc.store.Load(ctx, userID)
}

// ClearMemory resets the user's document to the empty skeleton
func (uc *UseCases) ClearMemory(ctx context.Context, userID types.UserID) error {
	if err := uc.store.Clear(ctx, userID); err != nil {
		return goerr.Wrap(err, "failed to clear memory", goerr.V(UserIDKey, userID))
	}

	logging.From(ctx).Info("memory cleared", "user_id", userID)
	return nil
}

// ExportData builds a full data export bundle for the user
func (uc *UseCases) ExportData(ctx context.Context, userID types.UserID) (*model.ExportBundle, error) {
	doc, err := uc.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return model.NewExportBundle(userID, doc, uc.store.Now()), nil
}
