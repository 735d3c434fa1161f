package web

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// sessionCookie is the cookie carrying the signed session token.
const sessionCookie = "token"

// Authenticate validates the session token on every request and injects
// the authenticated user ID into the request context. A request with no
// token, a malformed/expired/forged token, or a subject referencing a
// deleted user is rejected before it reaches any handler.
func (s *Server) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := extractToken(r)
		if !ok {
			s.reject(w, r, "you are not logged in")
			return
		}

		userID, err := s.tokens.Validate(raw)
		if err != nil {
			// expired, forged and malformed all read the same to the client
			s.reject(w, r, "invalid or expired session")
			return
		}

		// Re-check existence so tokens of deleted users stop working.
		if _, err := s.auth.ResolveUser(r.Context(), userID); err != nil {
			s.reject(w, r, "the user belonging to this session no longer exists")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// extractToken reads the session cookie, falling back to an
// Authorization Bearer header.
func extractToken(r *http.Request) (string, bool) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value, true
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer "), true
	}
	return "", false
}

// reject short-circuits an unauthenticated request: browsers get a
// redirect to the login page, API clients a 401.
func (s *Server) reject(w http.ResponseWriter, r *http.Request, message string) {
	if wantsHTML(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	respondError(w, http.StatusUnauthorized, message)
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// RequestLogger logs one line per request with method, path, status,
// duration and remote address.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("dur", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}

// Recover turns handler panics into 500 responses instead of dropped
// connections.
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic",
						zap.Any("reason", rec),
						zap.ByteString("stack", debug.Stack()),
						zap.String("path", r.URL.Path),
					)
					respondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
