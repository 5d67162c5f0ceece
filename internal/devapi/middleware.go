package devapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/constructhub/internal/common"
	"github.com/dmitrijs2005/constructhub/internal/devapi/auth"
	"github.com/dmitrijs2005/constructhub/internal/logging"
)

type userIDKey struct{}

// userIDFrom returns the id stored by Authenticate, or 0.
func userIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey{}).(int64)
	return id
}

// Authenticate requires a valid access token and stores its user id in the
// request context. Missing, expired or malformed tokens get a 401.
func (h *Handlers) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := common.BearerToken(r.Header.Get("Authorization"))
		if token == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, auth.KindAccess, h.secret)
		if err != nil {
			h.logger.Debug(r.Context(), "access token rejected", "error", err)
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			writeJSON(w, http.StatusUnauthorized, apiError{
				Detail: "Given token not valid for any token type",
				Code:   "token_not_valid",
			})
			return
		}

		if _, err := h.store.User(userID); err != nil {
			writeJSON(w, http.StatusUnauthorized, apiError{Detail: "User not found", Code: "user_not_found"})
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	count, err := w.ResponseWriter.Write(p)
	w.count += count
	return count, err
}

// RequestLogger logs one line per request, tagged with the caller's
// X-Request-ID when present.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rid := r.Header.Get(common.RequestIDHeaderName); rid != "" {
				r = r.WithContext(logging.WithRequestID(r.Context(), rid))
			}

			sw := &statusWriter{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(sw, r)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			logger.Info(r.Context(), "http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"dur", time.Since(start),
				"bytes", sw.count,
			)
		})
	}
}
