package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
)

// Chat generates a coaching reply for the message and records the
// message as a life event. The LLM call happens before any write, so a
// failed upstream call leaves the document untouched and the request
// can be retried safely.
func (uc *UseCases) Chat(ctx context.Context, userID types.UserID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", goerr.Wrap(ErrEmptyMessage, "chat message required", goerr.V(UserIDKey, userID))
	}

	doc, err := uc.store.Load(ctx, userID)
	if err != nil {
		return "", err
	}

	reply, err := uc.coach.Reply(ctx, doc, message)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate coaching reply", goerr.V(UserIDKey, userID))
	}

	if _, err := uc.store.AppendEvent(ctx, userID, message); err != nil {
		return "", goerr.Wrap(err, "failed to record life event", goerr.V(UserIDKey, userID))
	}

	logging.From(ctx).Debug("chat handled", "user_id", userID, "message_len", len(message))

	return reply, nil
}

// RecentEvents returns up to n most recent life events for the user
func (uc *UseCases) RecentEvents(ctx context.Context, userID types.UserID, n int) ([]model.LifeEvent, error) {
	doc, err := uc.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return doc.RecentEvents(n), nil
}
