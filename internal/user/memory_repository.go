package user

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps records in process memory. It is used for local
// development and as the store double in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	users []User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email {
			u := cloneUser(r.users[i])
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// Insert enforces email uniqueness under the write lock
func (r *MemoryRepository) Insert(ctx context.Context, u *User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Email == u.Email {
			return "", ErrDuplicateEmail
		}
	}

	stored := cloneUser(*u)
	stored.ID = uuid.NewString()
	r.users = append(r.users, stored)

	return stored.ID, nil
}

func (r *MemoryRepository) ListByNewest(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	out := make([]User, 0, len(r.users))
	for i := range r.users {
		out = append(out, cloneUser(r.users[i]))
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Search(ctx context.Context, criteria SearchCriteria) ([]User, error) {
	match := criteria.Matcher()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]User, 0)
	for i := range r.users {
		if match(&r.users[i]) {
			out = append(out, cloneUser(r.users[i]))
		}
	}
	return out, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

func cloneUser(u User) User {
	if u.Skills != nil {
		skills := make([]string, len(u.Skills))
		copy(skills, u.Skills)
		u.Skills = skills
	}
	return u
}

var _ Repository = (*MemoryRepository)(nil)
