package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// AddHabit creates a new habit. An invalid frequency falls back to daily.
func (uc *UseCases) AddHabit(ctx context.Context, userID types.UserID, name string, freq types.HabitFrequency) (*model.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(ErrEmptyHabitName, "habit name required", goerr.V(UserIDKey, userID))
	}

	if !freq.IsValid() {
		freq = types.HabitFrequencyDaily
	}

	var habit *model.Habit
	_, err := uc.store.Update(ctx, userID, func(doc *model.MemoryDocument) error {
		habit = doc.AddHabit(name, freq, uc.store.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return habit, nil
}

// CheckInHabit records today's completion of the habit. A second
// check-in on the same calendar date is a no-op and returns the habit
// unchanged.
func (uc *UseCases) CheckInHabit(ctx context.Context, userID types.UserID, habitID int64) (*model.Habit, error) {
	var habit *model.Habit
	_, err := uc.store.Update(ctx, userID, func(doc *model.MemoryDocument) error {
		h, ok := doc.CheckInHabit(habitID, uc.store.Now())
		if !ok {
			return goerr.Wrap(ErrHabitNotFound, "cannot check in habit", goerr.V(HabitIDKey, habitID))
		}
		habit = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	return habit, nil
}

// DeleteHabit removes the habit. Its ID is never reused.
func (uc *UseCases) DeleteHabit(ctx context.Context, userID types.UserID, habitID int64) error {
	_, err := uc.store.Update(ctx, userID, func(doc *model.MemoryDocument) error {
		if !doc.DeleteHabit(habitID) {
			return goerr.Wrap(ErrHabitNotFound, "cannot delete habit", goerr.V(HabitIDKey, habitID))
		}
		return nil
	})
	return err
}
