package web

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"todoweb/internal/errs"
	"todoweb/internal/model"
	"todoweb/internal/service"
)

// Shared fakes for handler and middleware tests.

type fakeAuth struct {
	users map[uuid.UUID]*model.User

	registerErr error
	loginTok    string
	loginErr    error
}

var _ service.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Register(_ context.Context, username, email, password string) (*model.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &model.User{ID: uuid.Must(uuid.NewV4()), Username: username, Email: email}, nil
}

func (f *fakeAuth) Login(_ context.Context, email, password, ip string) (string, time.Time, error) {
	if f.loginErr != nil {
		return "", time.Time{}, f.loginErr
	}
	return f.loginTok, time.Now().Add(time.Hour), nil
}

func (f *fakeAuth) ResolveUser(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrUnauthorized
	}
	return u, nil
}

type fakeTodos struct {
	todos map[int64]*model.Todo

	createErr error
	listErr   error
}

var _ service.TodoService = (*fakeTodos)(nil)

func (f *fakeTodos) Create(_ context.Context, owner uuid.UUID, title, description string) (*model.Todo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	t := &model.Todo{ID: 1, CreatedBy: owner, Title: title, Description: description, CreatedAt: time.Now()}
	if f.todos == nil {
		f.todos = map[int64]*model.Todo{}
	}
	f.todos[t.ID] = t
	return t, nil
}

func (f *fakeTodos) List(_ context.Context, owner uuid.UUID) ([]model.Todo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Todo
	for _, t := range f.todos {
		if t.CreatedBy == owner {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTodos) Get(_ context.Context, owner uuid.UUID, id int64) (*model.Todo, error) {
	t, ok := f.todos[id]
	if !ok || t.CreatedBy != owner {
		return nil, errs.ErrNotFound
	}
	return t, nil
}

func (f *fakeTodos) Update(_ context.Context, owner uuid.UUID, id int64, patch model.TodoPatch) (*model.Todo, error) {
	t, ok := f.todos[id]
	if !ok || t.CreatedBy != owner {
		return nil, errs.ErrNotFound
	}
	if patch.Empty() {
		return nil, errs.ErrValidation
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	return t, nil
}

func (f *fakeTodos) Delete(_ context.Context, owner uuid.UUID, id int64) error {
	t, ok := f.todos[id]
	if !ok || t.CreatedBy != owner {
		return errs.ErrNotFound
	}
	delete(f.todos, id)
	return nil
}
