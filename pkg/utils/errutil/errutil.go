package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
	"github.com/secmon-lab/mnemosyne/pkg/utils/safe"
)

// StatusOf maps an error to its HTTP status code via the error tags
func StatusOf(err error) int {
	switch {
	case goerr.HasTag(err, types.TagValidation):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.TagNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, types.TagRateLimit):
		return http.StatusTooManyRequests
	case goerr.HasTag(err, types.TagUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Handle logs the error with its structured context and returns it
// unchanged for the caller to propagate.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	return err
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleHTTP logs the error and writes a JSON error response with the
// status derived from the error's tags. Server-side failures are also
// reported to Sentry when it is configured.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	statusCode := StatusOf(err)
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	if statusCode >= http.StatusInternalServerError {
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	body, marshalErr := json.Marshal(errorResponse{Error: err.Error()})
	if marshalErr != nil {
		return
	}
	safe.Write(ctx, w, body)
}
