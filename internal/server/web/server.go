package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"todoweb/internal/service"
	"todoweb/internal/token"
)

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires services into an HTTP handler tree.
type Server struct {
	auth   service.AuthService
	todos  service.TodoService
	tokens *token.Service
	db     Pinger
	log    *zap.Logger

	secureCookies bool
}

// NewServer constructs the HTTP layer.
func NewServer(auth service.AuthService, todos service.TodoService, tokens *token.Service, db Pinger, log *zap.Logger, secureCookies bool) *Server {
	return &Server{auth: auth, todos: todos, tokens: tokens, db: db, log: log, secureCookies: secureCookies}
}

// Routes builds the router. Everything under /todos plus logout requires
// an authenticated session; the rest is public.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.Authenticate)

		r.Post("/logout", s.handleLogout)

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", s.handleTodoList)
			r.Post("/", s.handleTodoCreate)
			r.Get("/{id}", s.handleTodoGet)
			r.Put("/{id}", s.handleTodoUpdate)
			r.Patch("/{id}", s.handleTodoUpdate)
			r.Delete("/{id}", s.handleTodoDelete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusNotFound, "nothing to see here")
	})

	return r
}

// HTTPServer returns an http.Server with sane timeouts for the handler tree.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
