package types

import "fmt"

// GoalStatus represents the lifecycle state of a goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "ACTIVE"
	GoalStatusCompleted GoalStatus = "COMPLETED"
)

// AllGoalStatuses returns all valid goal statuses
func AllGoalStatuses() []GoalStatus {
	return []GoalStatus{
		GoalStatusActive,
		GoalStatusCompleted,
	}
}

// IsValid checks if the goal status is valid
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusActive,
		GoalStatusCompleted:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as GoalStatusActive.
func (s GoalStatus) Normalize() GoalStatus {
	if s == "" {
		return GoalStatusActive
	}
	return s
}

// String returns the string representation of the goal status
func (s GoalStatus) String() string {
	return string(s)
}

// ParseGoalStatus parses a string into a GoalStatus
func ParseGoalStatus(s string) (GoalStatus, error) {
	status := GoalStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid goal status: %s", s)
	}
	return status, nil
}
