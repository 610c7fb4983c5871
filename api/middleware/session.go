package middleware

import (
	"net/http"

	"github.com/marcosovalle/shopfront-backend/api/responses"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
	"github.com/marcosovalle/shopfront-backend/pkg/session"
)

// SessionHeader carries the anonymous session ID between client and server.
const SessionHeader = "X-Session-Id"

// SessionContext binds every request to a session. A request presenting an ID
// has its marker TTL refreshed; a request without one gets a fresh session.
// Either way the ID is echoed back in the response header and injected into
// the request context.
func SessionContext(manager *session.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id := r.Header.Get(SessionHeader)
			if id == "" {
				minted, err := manager.Begin(ctx)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "begin session"))
					return
				}
				id = minted
			} else if err := manager.Touch(ctx, id); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh session"))
				return
			}

			w.Header().Set(SessionHeader, id)

			ctx = WithSessionID(ctx, id)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, id)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
