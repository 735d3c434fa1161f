// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents an account. PasswordHash is the PHC-encoded Argon2id
// record; the raw password never leaves the login/register handlers.
type User struct {
	ID           uuid.UUID // PK
	Username     string    // display name, fixed after registration
	Email        string    // unique login key, stored lowercased
	PasswordHash string    // argon2id PHC record
	CreatedAt    time.Time
}

// Todo is a single task owned by exactly one user.
type Todo struct {
	ID          int64     `json:"id"`         // DB-assigned PK
	CreatedBy   uuid.UUID `json:"created_by"` // FK -> users.id, the owner
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      bool      `json:"status"` // done / not done
	CreatedAt   time.Time `json:"created_at"`
}

// TodoPatch carries a partial update. Nil fields are left unchanged;
// id, created_by and created_at are immutable and have no patch fields.
type TodoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *bool   `json:"status"`
}

// Empty reports whether the patch changes nothing.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}
