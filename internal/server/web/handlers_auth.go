package web

import (
	"errors"
	"net"
	"net/http"

	"todoweb/internal/errs"
)

// handleRegister handles the registration form post. On success the client
// is sent to the login page; validation problems come back as field errors.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "malformed form data")
		return
	}
	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("password_confirm")

	if confirm != "" && confirm != password {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "passwords do not match",
			"field": "password_confirm",
		})
		return
	}

	if _, err := s.auth.Register(r.Context(), username, email, password); err != nil {
		switch {
		case errors.Is(err, errs.ErrAlreadyExists):
			respondJSON(w, http.StatusConflict, map[string]string{
				"error": "that email is already in use",
				"field": "email",
			})
		case errors.Is(err, errs.ErrValidation):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.respondServiceError(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleLogin verifies credentials and sets the session cookie. Every
// credential failure reads identically to the client; nothing reveals
// whether the email exists.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "malformed form data")
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	tok, expiresAt, err := s.auth.Login(r.Context(), email, password, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUnauthorized):
			respondError(w, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, errs.ErrRateLimited):
			respondError(w, http.StatusTooManyRequests, "too many attempts, try again later")
		default:
			s.respondServiceError(w, r, err)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(s.tokens.TTL().Seconds()),
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}

// handleLogout clears the session cookie. Tokens are stateless, so this is
// purely client-side: an already-issued token stays formally valid until
// its expiry.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// clientIP strips the port from RemoteAddr for rate-limiter keying.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
