package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"todoweb/internal/model"
)

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// owner pulls the authenticated user ID injected by the session
// middleware. Reaching a handler without it means the route was wired
// outside the auth group, which is a programming error.
func owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := UserIDFromCtx(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

// todoID parses the {id} URL parameter.
func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

func (s *Server) handleTodoList(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	todos, err := s.todos.List(r.Context(), uid)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	respondJSON(w, http.StatusOK, todos)
}

func (s *Server) handleTodoCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	var req createTodoRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	todo, err := s.todos.Create(r.Context(), uid, req.Title, req.Description)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleTodoGet(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	todo, err := s.todos.Get(r.Context(), uid, id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

func (s *Server) handleTodoUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	var patch model.TodoPatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	todo, err := s.todos.Update(r.Context(), uid, id, patch)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

func (s *Server) handleTodoDelete(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	if err := s.todos.Delete(r.Context(), uid, id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
