package types

// ReflectionKind represents the cadence of a reflection entry
type ReflectionKind string

const (
	ReflectionDaily   ReflectionKind = "daily"
	ReflectionWeekly  ReflectionKind = "weekly"
	ReflectionMonthly ReflectionKind = "monthly"
)

// IsValid checks if the reflection kind is valid
func (k ReflectionKind) IsValid() bool {
	switch k {
	case ReflectionDaily,
		ReflectionWeekly,
		ReflectionMonthly:
		return true
	default:
		return false
	}
}

// Normalize returns the kind, treating empty as ReflectionDaily.
func (k ReflectionKind) Normalize() ReflectionKind {
	if k == "" {
		return ReflectionDaily
	}
	return k
}

// String returns the string representation of the reflection kind
func (k ReflectionKind) String() string {
	return string(k)
}
