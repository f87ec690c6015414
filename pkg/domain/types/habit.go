package types

import "fmt"

// HabitStatus represents the lifecycle state of a habit
type HabitStatus string

const (
	HabitStatusActive   HabitStatus = "ACTIVE"
	HabitStatusArchived HabitStatus = "ARCHIVED"
)

// IsValid checks if the habit status is valid
func (s HabitStatus) IsValid() bool {
	switch s {
	case HabitStatusActive,
		HabitStatusArchived:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as HabitStatusActive.
func (s HabitStatus) Normalize() HabitStatus {
	if s == "" {
		return HabitStatusActive
	}
	return s
}

// String returns the string representation of the habit status
func (s HabitStatus) String() string {
	return string(s)
}

// HabitFrequency represents how often a habit is meant to be performed
type HabitFrequency string

const (
	HabitFrequencyDaily  HabitFrequency = "daily"
	HabitFrequencyWeekly HabitFrequency = "weekly"
	HabitFrequencyCustom HabitFrequency = "custom"
)

// AllHabitFrequencies returns all valid habit frequencies
func AllHabitFrequencies() []HabitFrequency {
	return []HabitFrequency{
		HabitFrequencyDaily,
		HabitFrequencyWeekly,
		HabitFrequencyCustom,
	}
}

// IsValid checks if the habit frequency is valid
func (f HabitFrequency) IsValid() bool {
	switch f {
	case HabitFrequencyDaily,
		HabitFrequencyWeekly,
		HabitFrequencyCustom:
		return true
	default:
		return false
	}
}

// Normalize returns the frequency, treating empty as HabitFrequencyDaily.
func (f HabitFrequency) Normalize() HabitFrequency {
	if f == "" {
		return HabitFrequencyDaily
	}
	return f
}

// String returns the string representation of the habit frequency
func (f HabitFrequency) String() string {
	return string(f)
}

// ParseHabitFrequency parses a string into a HabitFrequency
func ParseHabitFrequency(s string) (HabitFrequency, error) {
	freq := HabitFrequency(s)
	if !freq.IsValid() {
		return "", fmt.Errorf("invalid habit frequency: %s", s)
	}
	return freq, nil
}
