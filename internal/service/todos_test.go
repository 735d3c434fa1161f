package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"todoweb/internal/errs"
	"todoweb/internal/model"
	"todoweb/internal/repository"
)

// memTodos is an in-memory TodoRepository with the same owner-scoping
// semantics as the postgres implementation: every lookup matches on
// (id, owner) together.
type memTodos struct {
	nextID int64
	rows   []model.Todo
}

var _ repository.TodoRepository = (*memTodos)(nil)

func (m *memTodos) Create(_ context.Context, owner uuid.UUID, title, description string) (*model.Todo, error) {
	m.nextID++
	t := model.Todo{
		ID:          m.nextID,
		CreatedBy:   owner,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().Add(time.Duration(m.nextID) * time.Millisecond),
	}
	m.rows = append(m.rows, t)
	return &t, nil
}

func (m *memTodos) List(_ context.Context, owner uuid.UUID) ([]model.Todo, error) {
	var out []model.Todo
	for i := len(m.rows) - 1; i >= 0; i-- { // insertion order reversed == created_at DESC
		if m.rows[i].CreatedBy == owner {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memTodos) Get(_ context.Context, owner uuid.UUID, id int64) (*model.Todo, error) {
	for _, t := range m.rows {
		if t.ID == id && t.CreatedBy == owner {
			c := t
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memTodos) Update(_ context.Context, owner uuid.UUID, id int64, patch model.TodoPatch) (*model.Todo, error) {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].CreatedBy == owner {
			if patch.Title != nil {
				m.rows[i].Title = *patch.Title
			}
			if patch.Description != nil {
				m.rows[i].Description = *patch.Description
			}
			if patch.Status != nil {
				m.rows[i].Status = *patch.Status
			}
			c := m.rows[i]
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memTodos) Delete(_ context.Context, owner uuid.UUID, id int64) error {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].CreatedBy == owner {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func TestTodoService_Create_Validation(t *testing.T) {
	svc := NewTodoService(&memTodos{})
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	_, err := svc.Create(ctx, uuid.Nil, "title", "")
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Create(ctx, owner, "   ", "desc")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestTodoService_CreateGetRoundTrip(t *testing.T) {
	svc := NewTodoService(&memTodos{})
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	created, err := svc.Create(ctx, owner, "Buy milk", "2 liters")
	require.NoError(t, err)
	require.False(t, created.Status)
	require.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestTodoService_OwnerIsolation(t *testing.T) {
	svc := NewTodoService(&memTodos{})
	ctx := context.Background()
	userA := uuid.Must(uuid.NewV4())
	userB := uuid.Must(uuid.NewV4())

	created, err := svc.Create(ctx, userA, "private", "")
	require.NoError(t, err)

	_, err = svc.Get(ctx, userB, created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	done := true
	_, err = svc.Update(ctx, userB, created.ID, model.TodoPatch{Status: &done})
	require.ErrorIs(t, err, errs.ErrNotFound)

	err = svc.Delete(ctx, userB, created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	// still intact for its owner
	got, err := svc.Get(ctx, userA, created.ID)
	require.NoError(t, err)
	require.Equal(t, "private", got.Title)
}

func TestTodoService_List_OrderAndIdempotence(t *testing.T) {
	svc := NewTodoService(&memTodos{})
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, owner, title, "")
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.Equal(t, "third", first[0].Title) // most recent first

	second, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestTodoService_Update(t *testing.T) {
	svc := NewTodoService(&memTodos{})
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	created, err := svc.Create(ctx, owner, "task", "desc")
	require.NoError(t, err)

	done := true
	updated, err := svc.Update(ctx, owner, created.ID, model.TodoPatch{Status: &done})
	require.NoError(t, err)
	require.True(t, updated.Status)
	require.Equal(t, "task", updated.Title) // untouched fields survive

	got, err := svc.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	require.True(t, got.Status)

	// immutable server-assigned fields
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, created.CreatedBy, updated.CreatedBy)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestTodoService_Update_Validation(t *testing.T) {
	svc := NewTodoService(&memTodos{})
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	created, err := svc.Create(ctx, owner, "task", "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, created.ID, model.TodoPatch{})
	require.ErrorIs(t, err, errs.ErrValidation)

	blank := "   "
	_, err = svc.Update(ctx, owner, created.ID, model.TodoPatch{Title: &blank})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestTodoService_Delete(t *testing.T) {
	svc := NewTodoService(&memTodos{})
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	created, err := svc.Create(ctx, owner, "doomed", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, created.ID))

	_, err = svc.Get(ctx, owner, created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	// hard delete: deleting again is NotFound
	require.ErrorIs(t, svc.Delete(ctx, owner, created.ID), errs.ErrNotFound)
}
