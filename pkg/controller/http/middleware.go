package http

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/service/ratelimit"
	"github.com/secmon-lab/mnemosyne/pkg/utils/errutil"
)

// UserIDHeader identifies the caller. Requests without it act on the
// default user's document.
const UserIDHeader = "X-Mnemosyne-User"

type ctxUserIDKey struct{}

func userIDFrom(ctx context.Context) types.UserID {
	if id, ok := ctx.Value(ctxUserIDKey{}).(types.UserID); ok {
		return id
	}
	return types.DefaultUserID
}

// userIDMiddleware resolves the caller's user ID from the request
// header and rejects invalid identifiers before any handler runs
func userIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := types.UserID(r.Header.Get(UserIDHeader)).Normalize()
		if err := userID.Validate(); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimitMiddleware throttles requests per client. The client key is
// the user ID header when present, otherwise the remote address as
// resolved by the RealIP middleware.
func rateLimitMiddleware(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := "user:" + string(userIDFrom(r.Context()))
			if r.Header.Get(UserIDHeader) == "" {
				clientID = "ip:" + r.RemoteAddr
			}

			if !limiter.Check(clientID) {
				err := goerr.New("rate limit exceeded",
					goerr.T(types.TagRateLimit),
					goerr.V("client_id", clientID),
					goerr.V("limit", limiter.Limit()),
				)
				errutil.HandleHTTP(r.Context(), w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
