package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

// MoodCheck analyzes the mood text via the coach and persists the
// resulting entry. The analysis happens before any write.
func (uc *UseCases) MoodCheck(ctx context.Context, userID types.UserID, text string) (*model.MoodEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, goerr.Wrap(ErrEmptyMoodText, "mood text required", goerr.V(UserIDKey, userID))
	}

	analysis, err := uc.coach.AnalyzeMood(ctx, text)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to analyze mood", goerr.V(UserIDKey, userID))
	}

	var entry *model.MoodEntry
	_, err = uc.store.Update(ctx, userID, func(doc *model.MemoryDocument) error {
		entry = doc.AddMoodEntry(model.MoodEntry{
			Emotion:        analysis.Emotion,
			Intensity:      analysis.Intensity,
			Factors:        analysis.Factors,
			Recommendation: analysis.Recommendation,
			Timestamp:      uc.store.Now(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// AddReflection records a periodic journal entry
func (uc *UseCases) AddReflection(ctx context.Context, userID types.UserID, text string, kind types.ReflectionKind, tags []string) (*model.Reflection, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, goerr.Wrap(ErrEmptyReflection, "reflection text required", goerr.V(UserIDKey, userID))
	}

	if !kind.IsValid() {
		kind = types.ReflectionDaily
	}

	var reflection *model.Reflection
	_, err := uc.store.Update(ctx, userID, func(doc *model.MemoryDocument) error {
		reflection = doc.AddReflection(text, kind, tags, uc.store.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reflection, nil
}
