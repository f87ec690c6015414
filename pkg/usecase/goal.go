package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// AddGoal creates a new goal. An empty category defaults to "general".
func (uc *UseCases) AddGoal(ctx context.Context, userID types.UserID, text, category string) (*model.Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, goerr.Wrap(ErrEmptyGoalText, "goal text required", goerr.V(UserIDKey, userID))
	}

	var goal *model.Goal
	_, err := uc.store.Update(ctx, userID, func(doc *model.MemoryDocument) error {
		goal = doc.AddGoal(text, category, uc.store.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// CompleteGoal marks the goal as completed. Completing an already
// completed goal is a no-op; the achievement is recorded only once.
func (uc *UseCases) CompleteGoal(ctx context.Context, userID types.UserID, goalID int64) (*model.Goal, error) {
	var goal *model.Goal
	_, err := uc.store.Update(ctx, userID, func(doc *model.MemoryDocument) error {
		g, ok := doc.CompleteGoal(goalID, uc.store.Now())
		if !ok {
			return goerr.Wrap(ErrGoalNotFound, "cannot complete goal", goerr.V(GoalIDKey, goalID))
		}
		goal = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// UpdateGoalProgress sets the goal's progress, clamped to the valid range
func (uc *UseCases) UpdateGoalProgress(ctx context.Context, userID types.UserID, goalID int64, progress int) (*model.Goal, error) {
	var goal *model.Goal
	_, err := uc.store.Update(ctx, userID, func(doc *model.MemoryDocument) error {
		g, ok := doc.UpdateGoalProgress(goalID, progress)
		if !ok {
			return goerr.Wrap(ErrGoalNotFound, "cannot update progress", goerr.V(GoalIDKey, goalID))
		}
		goal = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// DeleteGoal removes the goal. Its ID is never reused.
func (uc *UseCases) DeleteGoal(ctx context.Context, userID types.UserID, goalID int64) error {
	_, err := uc.store.Update(ctx, userID, func(doc *model.MemoryDocument) error {
		if !doc.DeleteGoal(goalID) {
			return goerr.Wrap(ErrGoalNotFound, "cannot delete goal", goerr.V(GoalIDKey, goalID))
		}
		return nil
	})
	return err
}
