package usecase

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// Sentinel errors for the use case layer
var (
	ErrEmptyMessage    = goerr.New("message is empty", goerr.T(types.TagValidation))
	ErrEmptyGoalText   = goerr.New("goal text is empty", goerr.T(types.TagValidation))
	ErrEmptyHabitName  = goerr.New("habit name is empty", goerr.T(types.TagValidation))
	ErrEmptyMoodText   = goerr.New("mood text is empty", goerr.T(types.TagValidation))
	ErrEmptyReflection = goerr.New("reflection text is empty", goerr.T(types.TagValidation))

	ErrGoalNotFound  = goerr.New("goal not found", goerr.T(types.TagNotFound))
	ErrHabitNotFound = goerr.New("habit not found", goerr.T(types.TagNotFound))
)

// Context keys for error values
const (
	GoalIDKey  = "goal_id"
	HabitIDKey = "habit_id"
	UserIDKey  = "user_id"
)
