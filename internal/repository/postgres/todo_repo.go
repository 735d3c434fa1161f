package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"todoweb/internal/errs"
	"todoweb/internal/model"
)

// TodoRepo implements TodoRepository using PostgreSQL. Ownership is
// enforced here by query predicates (id AND created_by in one WHERE
// clause), never by a fetch-then-check two-step.
type TodoRepo struct{ db *DB }

// NewTodoRepo constructs a todo repository.
func NewTodoRepo(db *DB) *TodoRepo { return &TodoRepo{db: db} }

// Create inserts a todo and returns the stored row with server-assigned fields.
func (r *TodoRepo) Create(ctx context.Context, owner uuid.UUID, title, description string) (*model.Todo, error) {
	const q = `
INSERT INTO todos (created_by, title, description)
VALUES ($1, $2, $3)
RETURNING id, created_by, title, description, status, created_at`
	return scanTodo(r.db.Pool.QueryRow(ctx, q, owner, title, description))
}

// List returns all todos of the owner, most recent first. The id tiebreak
// keeps the order deterministic for rows created in the same instant.
func (r *TodoRepo) List(ctx context.Context, owner uuid.UUID) ([]model.Todo, error) {
	const q = `
SELECT id, created_by, title, description, status, created_at
FROM todos
WHERE created_by=$1
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Todo
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.CreatedBy, &t.Title, &t.Description, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Get returns a single todo by id, scoped to the owner.
func (r *TodoRepo) Get(ctx context.Context, owner uuid.UUID, id int64) (*model.Todo, error) {
	const q = `
SELECT id, created_by, title, description, status, created_at
FROM todos WHERE id=$1 AND created_by=$2`
	return scanTodo(r.db.Pool.QueryRow(ctx, q, id, owner))
}

// Update applies a partial update and returns the updated row. COALESCE
// keeps unpatched columns untouched in a single statement.
func (r *TodoRepo) Update(ctx context.Context, owner uuid.UUID, id int64, patch model.TodoPatch) (*model.Todo, error) {
	const q = `
UPDATE todos
SET title = COALESCE($3, title),
    description = COALESCE($4, description),
    status = COALESCE($5, status)
WHERE id=$1 AND created_by=$2
RETURNING id, created_by, title, description, status, created_at`
	return scanTodo(r.db.Pool.QueryRow(ctx, q, id, owner, patch.Title, patch.Description, patch.Status))
}

// Delete hard-deletes a todo, scoped to the owner.
func (r *TodoRepo) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	const q = `DELETE FROM todos WHERE id=$1 AND created_by=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanTodo(row pgx.Row) (*model.Todo, error) {
	var t model.Todo
	if err := row.Scan(&t.ID, &t.CreatedBy, &t.Title, &t.Description, &t.Status, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
