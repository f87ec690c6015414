package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/service/coach"
)

// ActionItems suggests next steps based on the user's recent life events.
// With no recorded events the result is empty without an LLM call.
func (uc *UseCases) ActionItems(ctx context.Context, userID types.UserID) ([]model.ActionItem, error) {
	doc, err := uc.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := uc.coach.SuggestActions(ctx, doc.RecentEvents(coach.ContextWindowSize))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to suggest actions", goerr.V(UserIDKey, userID))
	}

	return items, nil
}

// Insights derives pattern observations from the user's progress report
// and recent mood entries
func (uc *UseCases) Insights(ctx context.Context, userID types.UserID) ([]model.Insight, error) {
	doc, err := uc.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := model.NewProgressReport(doc, uc.store.Now())

	moods := doc.MoodEntries
	if len(moods) > coach.ContextWindowSize {
		moods = moods[len(moods)-coach.ContextWindowSize:]
	}

	insights, err := uc.coach.Insights(ctx, report, moods)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to derive insights", goerr.V(UserIDKey, userID))
	}

	return insights, nil
}

// ProgressReport computes the trailing-window activity summary. This is
// a local computation with no LLM involvement.
func (uc *UseCases) ProgressReport(ctx context.Context, userID types.UserID) (*model.ProgressReport, error) {
	doc, err := uc.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return model.NewProgressReport(doc, uc.store.Now()), nil
}
