package model

import (
	"time"

	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

const (
	// MinProgress and MaxProgress bound goal progress
	MinProgress = 0
	MaxProgress = 100

	// MinIntensity and MaxIntensity bound mood intensity
	MinIntensity = 0
	MaxIntensity = 10
)

// CheckInDateFormat is the calendar-date key for habit check-ins
const CheckInDateFormat = "2006-01-02"

// LifeEvent is a single chat entry in the user's life log.
// Events are append-only and insertion order is chronological order.
type LifeEvent struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Goal is a tracked objective with clamped progress
type Goal struct {
	ID          int64            `json:"id"`
	Text        string           `json:"text"`
	Category    string           `json:"category"`
	Status      types.GoalStatus `json:"status"`
	Progress    int              `json:"progress"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

// CheckIn records a single habit completion. At most one check-in
// exists per calendar date per habit.
type CheckIn struct {
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// Habit is a recurring behavior with streak bookkeeping
type Habit struct {
	ID               int64                `json:"id"`
	Name             string               `json:"name"`
	Frequency        types.HabitFrequency `json:"frequency"`
	Status           types.HabitStatus    `json:"status"`
	CurrentStreak    int                  `json:"current_streak"`
	LongestStreak    int                  `json:"longest_streak"`
	TotalCompletions int                  `json:"total_completions"`
	CheckIns         []CheckIn            `json:"check_ins"`
	CreatedAt        time.Time            `json:"created_at"`
}

// CheckedInOn reports whether the habit has a check-in on the given calendar date
func (h *Habit) CheckedInOn(date string) bool {
	for _, c := range h.CheckIns {
		if c.Date == date {
			return true
		}
	}
	return false
}

// MoodEntry records one mood analysis result
type MoodEntry struct {
	Emotion        string    `json:"emotion"`
	Intensity      int       `json:"intensity"`
	Factors        []string  `json:"factors"`
	Recommendation string    `json:"recommendation,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Reflection is a free-form periodic journal entry
type Reflection struct {
	Text      string               `json:"text"`
	Kind      types.ReflectionKind `json:"kind"`
	Tags      []string             `json:"tags,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

// Achievement records a completed goal
type Achievement struct {
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// MemoryDocument is the per-user persisted life-tracking record. It is
// owned exclusively by the memory store; all mutation goes through the
// store's read-modify-write operations.
type MemoryDocument struct {
	LifeEvents   []LifeEvent      `json:"life_events"`
	Goals        map[int64]*Goal  `json:"goals"`
	Habits       map[int64]*Habit `json:"habits"`
	MoodEntries  []MoodEntry      `json:"mood_entries"`
	Reflections  []Reflection     `json:"reflections"`
	Achievements []Achievement    `json:"achievements"`

	// ID counters are persisted so IDs are never reused after deletion
	NextGoalID  int64 `json:"next_goal_id"`
	NextHabitID int64 `json:"next_habit_id"`
}

// NewMemoryDocument returns the empty skeleton document
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{
		LifeEvents:   []LifeEvent{},
		Goals:        map[int64]*Goal{},
		Habits:       map[int64]*Habit{},
		MoodEntries:  []MoodEntry{},
		Reflections:  []Reflection{},
		Achievements: []Achievement{},
		NextGoalID:   1,
		NextHabitID:  1,
	}
}

// Normalize applies defaults to a document loaded from storage. Older
// documents may lack collections or counters; validation happens here,
// once, at the memory store boundary.
func (d *MemoryDocument) Normalize() {
	if d.LifeEvents == nil {
		d.LifeEvents = []LifeEvent{}
	}
	if d.Goals == nil {
		d.Goals = map[int64]*Goal{}
	}
	if d.Habits == nil {
		d.Habits = map[int64]*Habit{}
	}
	if d.MoodEntries == nil {
		d.MoodEntries = []MoodEntry{}
	}
	if d.Reflections == nil {
		d.Reflections = []Reflection{}
	}
	if d.Achievements == nil {
		d.Achievements = []Achievement{}
	}

	var maxGoalID, maxHabitID int64
	for id, g := range d.Goals {
		g.Status = g.Status.Normalize()
		g.Progress = ClampProgress(g.Progress)
		if id > maxGoalID {
			maxGoalID = id
		}
	}
	for id, h := range d.Habits {
		h.Status = h.Status.Normalize()
		h.Frequency = h.Frequency.Normalize()
		if h.CheckIns == nil {
			h.CheckIns = []CheckIn{}
		}
		if id > maxHabitID {
			maxHabitID = id
		}
	}
	for i := range d.MoodEntries {
		d.MoodEntries[i].Intensity = ClampIntensity(d.MoodEntries[i].Intensity)
	}

	if d.NextGoalID <= maxGoalID {
		d.NextGoalID = maxGoalID + 1
	}
	if d.NextGoalID < 1 {
		d.NextGoalID = 1
	}
	if d.NextHabitID <= maxHabitID {
		d.NextHabitID = maxHabitID + 1
	}
	if d.NextHabitID < 1 {
		d.NextHabitID = 1
	}
}

// Clone creates a deep copy of the document
func (d *MemoryDocument) Clone() *MemoryDocument {
	copied := &MemoryDocument{
		LifeEvents:   make([]LifeEvent, len(d.LifeEvents)),
		Goals:        make(map[int64]*Goal, len(d.Goals)),
		Habits:       make(map[int64]*Habit, len(d.Habits)),
		MoodEntries:  make([]MoodEntry, len(d.MoodEntries)),
		Reflections:  make([]Reflection, len(d.Reflections)),
		Achievements: make([]Achievement, len(d.Achievements)),
		NextGoalID:   d.NextGoalID,
		NextHabitID:  d.NextHabitID,
	}
	copy(copied.LifeEvents, d.LifeEvents)
	copy(copied.Achievements, d.Achievements)

	for id, g := range d.Goals {
		goal := *g
		if g.CompletedAt != nil {
			completedAt := *g.CompletedAt
			goal.CompletedAt = &completedAt
		}
		copied.Goals[id] = &goal
	}
	for id, h := range d.Habits {
		habit := *h
		habit.CheckIns = make([]CheckIn, len(h.CheckIns))
		copy(habit.CheckIns, h.CheckIns)
		copied.Habits[id] = &habit
	}
	for i, m := range d.MoodEntries {
		entry := m
		entry.Factors = make([]string, len(m.Factors))
		copy(entry.Factors, m.Factors)
		copied.MoodEntries[i] = entry
	}
	for i, r := range d.Reflections {
		refl := r
		if r.Tags != nil {
			refl.Tags = make([]string, len(r.Tags))
			copy(refl.Tags, r.Tags)
		}
		copied.Reflections[i] = refl
	}

	return copied
}

// AppendEvent appends a timestamped life event
func (d *MemoryDocument) AppendEvent(text string, now time.Time) *LifeEvent {
	d.LifeEvents = append(d.LifeEvents, LifeEvent{
		Text:      text,
		Timestamp: now,
	})
	return &d.LifeEvents[len(d.LifeEvents)-1]
}

// RecentEvents returns up to n most recent life events in chronological order
func (d *MemoryDocument) RecentEvents(n int) []LifeEvent {
	if n <= 0 || len(d.LifeEvents) == 0 {
		return nil
	}
	if n > len(d.LifeEvents) {
		n = len(d.LifeEvents)
	}
	return d.LifeEvents[len(d.LifeEvents)-n:]
}

// AddGoal creates a goal with the next monotonic ID
func (d *MemoryDocument) AddGoal(text, category string, now time.Time) *Goal {
	if category == "" {
		category = "general"
	}
	goal := &Goal{
		ID:        d.NextGoalID,
		Text:      text,
		Category:  category,
		Status:    types.GoalStatusActive,
		Progress:  MinProgress,
		CreatedAt: now,
	}
	d.Goals[goal.ID] = goal
	d.NextGoalID++
	return goal
}

// CompleteGoal marks a goal completed and records an achievement.
// Completing an already-completed goal is a no-op.
func (d *MemoryDocument) CompleteGoal(id int64, now time.Time) (*Goal, bool) {
	goal, ok := d.Goals[id]
	if !ok {
		return nil, false
	}
	if goal.Status == types.GoalStatusCompleted {
		return goal, true
	}

	goal.Status = types.GoalStatusCompleted
	goal.Progress = MaxProgress
	goal.CompletedAt = &now
	d.Achievements = append(d.Achievements, Achievement{
		Title:     goal.Text,
		Category:  goal.Category,
		Timestamp: now,
	})
	return goal, true
}

// UpdateGoalProgress sets goal progress, clamped to 0..100
func (d *MemoryDocument) UpdateGoalProgress(id int64, progress int) (*Goal, bool) {
	goal, ok := d.Goals[id]
	if !ok {
		return nil, false
	}
	goal.Progress = ClampProgress(progress)
	return goal, true
}

// DeleteGoal removes a goal. The ID is never reused.
func (d *MemoryDocument) DeleteGoal(id int64) bool {
	if _, ok := d.Goals[id]; !ok {
		return false
	}
	delete(d.Goals, id)
	return true
}

// AddHabit creates a habit with the next monotonic ID
func (d *MemoryDocument) AddHabit(name string, freq types.HabitFrequency, now time.Time) *Habit {
	habit := &Habit{
		ID:        d.NextHabitID,
		Name:      name,
		Frequency: freq.Normalize(),
		Status:    types.HabitStatusActive,
		CheckIns:  []CheckIn{},
		CreatedAt: now,
	}
	d.Habits[habit.ID] = habit
	d.NextHabitID++
	return habit
}

// CheckInHabit records a habit check-in for the calendar date of now.
// A second check-in on the same date is an idempotent no-op, so the
// check-in set holds at most one entry per day. Streaks extend when the
// previous calendar day was checked in, otherwise restart at 1.
func (d *MemoryDocument) CheckInHabit(id int64, now time.Time) (*Habit, bool) {
	habit, ok := d.Habits[id]
	if !ok {
		return nil, false
	}

	today := now.Format(CheckInDateFormat)
	if habit.CheckedInOn(today) {
		return habit, true
	}

	habit.CheckIns = append(habit.CheckIns, CheckIn{
		Date:      today,
		Timestamp: now,
	})
	habit.TotalCompletions++

	yesterday := now.AddDate(0, 0, -1).Format(CheckInDateFormat)
	if habit.CheckedInOn(yesterday) {
		habit.CurrentStreak++
	} else {
		habit.CurrentStreak = 1
	}
	if habit.CurrentStreak > habit.LongestStreak {
		habit.LongestStreak = habit.CurrentStreak
	}

	return habit, true
}

// DeleteHabit removes a habit. The ID is never reused.
func (d *MemoryDocument) DeleteHabit(id int64) bool {
	if _, ok := d.Habits[id]; !ok {
		return false
	}
	delete(d.Habits, id)
	return true
}

// AddMoodEntry appends a mood entry with clamped intensity
func (d *MemoryDocument) AddMoodEntry(entry MoodEntry) *MoodEntry {
	entry.Intensity = ClampIntensity(entry.Intensity)
	if entry.Factors == nil {
		entry.Factors = []string{}
	}
	d.MoodEntries = append(d.MoodEntries, entry)
	return &d.MoodEntries[len(d.MoodEntries)-1]
}

// AddReflection appends a reflection entry
func (d *MemoryDocument) AddReflection(text string, kind types.ReflectionKind, tags []string, now time.Time) *Reflection {
	d.Reflections = append(d.Reflections, Reflection{
		Text:      text,
		Kind:      kind.Normalize(),
		Tags:      tags,
		Timestamp: now,
	})
	return &d.Reflections[len(d.Reflections)-1]
}

// ClampProgress bounds a progress value to 0..100
func ClampProgress(p int) int {
	if p < MinProgress {
		return MinProgress
	}
	if p > MaxProgress {
		return MaxProgress
	}
	return p
}

// ClampIntensity bounds a mood intensity to 0..10
func ClampIntensity(i int) int {
	if i < MinIntensity {
		return MinIntensity
	}
	if i > MaxIntensity {
		return MaxIntensity
	}
	return i
}
