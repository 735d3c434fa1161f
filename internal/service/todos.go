package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"todoweb/internal/errs"
	"todoweb/internal/model"
	"todoweb/internal/repository"
)

// TodoService defines owner-scoped todo operations. The owner ID always
// comes from the authenticated request context, never from client input.
type TodoService interface {
	// Create validates input and stores a new todo for the owner.
	Create(ctx context.Context, owner uuid.UUID, title, description string) (*model.Todo, error)
	// List returns the owner's todos, most recent first.
	List(ctx context.Context, owner uuid.UUID) ([]model.Todo, error)
	// Get returns one todo by ID, scoped to the owner.
	Get(ctx context.Context, owner uuid.UUID, id int64) (*model.Todo, error)
	// Update applies a partial update, scoped to the owner.
	Update(ctx context.Context, owner uuid.UUID, id int64, patch model.TodoPatch) (*model.Todo, error)
	// Delete hard-deletes one todo, scoped to the owner.
	Delete(ctx context.Context, owner uuid.UUID, id int64) error
}

type TodoServiceImpl struct {
	repo repository.TodoRepository
}

// NewTodoService constructs TodoService.
func NewTodoService(repo repository.TodoRepository) *TodoServiceImpl {
	return &TodoServiceImpl{repo: repo}
}

// Create validates and stores a new todo. Status starts false; created_at
// is assigned by the database.
func (s *TodoServiceImpl) Create(ctx context.Context, owner uuid.UUID, title, description string) (*model.Todo, error) {
	if owner == uuid.Nil {
		return nil, fmt.Errorf("%w: empty owner", errs.ErrValidation)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
	}
	return s.repo.Create(ctx, owner, title, strings.TrimSpace(description))
}

// List returns the owner's todos ordered created_at descending.
func (s *TodoServiceImpl) List(ctx context.Context, owner uuid.UUID) ([]model.Todo, error) {
	if owner == uuid.Nil {
		return nil, fmt.Errorf("%w: empty owner", errs.ErrValidation)
	}
	return s.repo.List(ctx, owner)
}

// Get returns one todo; absence and foreign ownership both yield errs.ErrNotFound.
func (s *TodoServiceImpl) Get(ctx context.Context, owner uuid.UUID, id int64) (*model.Todo, error) {
	if owner == uuid.Nil || id <= 0 {
		return nil, errs.ErrNotFound
	}
	return s.repo.Get(ctx, owner, id)
}

// Update validates the patch and applies it.
func (s *TodoServiceImpl) Update(ctx context.Context, owner uuid.UUID, id int64, patch model.TodoPatch) (*model.Todo, error) {
	if owner == uuid.Nil || id <= 0 {
		return nil, errs.ErrNotFound
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: empty update", errs.ErrValidation)
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title must not be blank", errs.ErrValidation)
		}
		patch.Title = &t
	}
	if patch.Description != nil {
		d := strings.TrimSpace(*patch.Description)
		patch.Description = &d
	}
	return s.repo.Update(ctx, owner, id, patch)
}

// Delete hard-deletes one todo scoped to the owner.
func (s *TodoServiceImpl) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	if owner == uuid.Nil || id <= 0 {
		return errs.ErrNotFound
	}
	return s.repo.Delete(ctx, owner, id)
}
