package model

import (
	"sort"
	"time"

	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// HabitReport summarizes one active habit for the progress report
type HabitReport struct {
	Name             string `json:"name"`
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	TotalCompletions int    `json:"total_completions"`
}

// ProgressReport is a locally computed summary of the trailing week
// and month of tracked activity. No LLM call is involved.
type ProgressReport struct {
	GeneratedAt         time.Time     `json:"generated_at"`
	EventsLastWeek      int           `json:"events_last_week"`
	MoodsLastWeek       []string      `json:"moods_last_week"`
	ActiveGoals         int           `json:"active_goals"`
	GoalsCompletedMonth int           `json:"goals_completed_month"`
	Habits              []HabitReport `json:"habits"`
}

// NewProgressReport computes a progress report over the document
func NewProgressReport(doc *MemoryDocument, now time.Time) *ProgressReport {
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	report := &ProgressReport{
		GeneratedAt:   now,
		MoodsLastWeek: []string{},
		Habits:        []HabitReport{},
	}

	for _, e := range doc.LifeEvents {
		if e.Timestamp.After(weekAgo) {
			report.EventsLastWeek++
		}
	}
	for _, m := range doc.MoodEntries {
		if m.Timestamp.After(weekAgo) {
			report.MoodsLastWeek = append(report.MoodsLastWeek, m.Emotion)
		}
	}
	for _, g := range doc.Goals {
		switch g.Status {
		case types.GoalStatusActive:
			report.ActiveGoals++
		case types.GoalStatusCompleted:
			if g.CompletedAt != nil && g.CompletedAt.After(monthAgo) {
				report.GoalsCompletedMonth++
			}
		}
	}
	for _, h := range doc.Habits {
		if h.Status != types.HabitStatusActive {
			continue
		}
		report.Habits = append(report.Habits, HabitReport{
			Name:             h.Name,
			CurrentStreak:    h.CurrentStreak,
			LongestStreak:    h.LongestStreak,
			TotalCompletions: h.TotalCompletions,
		})
	}
	sort.Slice(report.Habits, func(i, j int) bool {
		return report.Habits[i].Name < report.Habits[j].Name
	})

	return report
}
