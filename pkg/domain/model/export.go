package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// ExportID is a UUID-based identifier for an export bundle
type ExportID string

// NewExportID generates a new UUID v4 ExportID
func NewExportID() ExportID {
	return ExportID(uuid.New().String())
}

// ExportSummary holds aggregate counts included in an export
type ExportSummary struct {
	TotalEvents    int `json:"total_events"`
	TotalGoals     int `json:"total_goals"`
	CompletedGoals int `json:"completed_goals"`
	MoodEntries    int `json:"mood_entries"`
	HabitsTracked  int `json:"habits_tracked"`
	Reflections    int `json:"reflections"`
	Achievements   int `json:"achievements"`
}

// ExportBundle is the full data export for one user
type ExportBundle struct {
	ExportID   ExportID        `json:"export_id"`
	UserID     types.UserID    `json:"user_id"`
	ExportedAt time.Time       `json:"exported_at"`
	Summary    ExportSummary   `json:"summary"`
	Data       *MemoryDocument `json:"data"`
}

// NewExportBundle builds an export bundle from a document
func NewExportBundle(userID types.UserID, doc *MemoryDocument, now time.Time) *ExportBundle {
	completed := 0
	for _, g := range doc.Goals {
		if g.Status == types.GoalStatusCompleted {
			completed++
		}
	}

	return &ExportBundle{
		ExportID:   NewExportID(),
		UserID:     userID,
		ExportedAt: now,
		Summary: ExportSummary{
			TotalEvents:    len(doc.LifeEvents),
			TotalGoals:     len(doc.Goals),
			CompletedGoals: completed,
			MoodEntries:    len(doc.MoodEntries),
			HabitsTracked:  len(doc.Habits),
			Reflections:    len(doc.Reflections),
			Achievements:   len(doc.Achievements),
		},
		Data: doc,
	}
}
