package model

// MoodAnalysis is the structured result of an LLM mood check
type MoodAnalysis struct {
	Emotion        string   `json:"emotion"`
	Intensity      int      `json:"intensity"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation"`
}

// ActionItem is a suggested next step derived from recent life events
type ActionItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

// Insight is an observed pattern in the user's tracked data
type Insight struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	ActionableTip string `json:"actionable_tip"`
}
