package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository is the persistence contract for user records.
//
// Implementations return ErrNotFound and ErrDuplicateEmail as sentinels and
// wrap connectivity failures with apperror.Unavailable.
type Repository interface {
	// FindByEmail returns the record with exactly this email
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Insert stores u and returns the identifier the store assigned.
	// CreatedAt must already be set.
	Insert(ctx context.Context, u *User) (string, error)
	// ListByNewest returns every record, most recently created first
	ListByNewest(ctx context.Context) ([]User, error)
	// Search returns records matching any of the criteria, in no particular order
	Search(ctx context.Context, criteria SearchCriteria) ([]User, error)
	// Ping reports whether the store is reachable
	Ping(ctx context.Context) error
}
