package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"todoweb/internal/model"
)

// TodoRepository provides owner-scoped access to todos. Every query
// combines the todo ID with the owner ID in a single predicate, so a todo
// belonging to another user is indistinguishable from one that does not
// exist.
type TodoRepository interface {
	// Create inserts a todo for owner with status=false and a
	// server-assigned created_at, returning the stored row.
	Create(ctx context.Context, owner uuid.UUID, title, description string) (*model.Todo, error)

	// List returns all todos of owner, most recent first.
	List(ctx context.Context, owner uuid.UUID) ([]model.Todo, error)

	// Get returns a single todo by ID, scoped to owner.
	Get(ctx context.Context, owner uuid.UUID, id int64) (*model.Todo, error)

	// Update applies a partial update, scoped to owner, and returns the
	// updated row. id, created_by and created_at are immutable.
	Update(ctx context.Context, owner uuid.UUID, id int64, patch model.TodoPatch) (*model.Todo, error)

	// Delete hard-deletes a todo, scoped to owner.
	Delete(ctx context.Context, owner uuid.UUID, id int64) error
}
