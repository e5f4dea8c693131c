package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// In-memory repository fakes backing handler and service tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*UserRecord // keyed by id
}

var _ UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*UserRecord)}
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memUserRepo) Create(ctx context.Context, username, passwordHash string) (*UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return nil, ErrDuplicateUsername
		}
	}
	u := &UserRecord{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type memTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*Task
	// reads counts store accesses so tests can assert a request never
	// reached the store.
	reads int
}

var _ TaskRepository = (*memTaskRepo)(nil)

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]*Task)}
}

func (r *memTaskRepo) FindByID(ctx context.Context, id string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *memTaskRepo) FindByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	out := make([]Task, 0)
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Create(ctx context.Context, title string, completed bool, ownerID string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	t := &Task{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: completed,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.tasks[t.ID] = t
	copied := *t
	return &copied, nil
}

func (r *memTaskRepo) UpdateByID(ctx context.Context, id, title string, completed bool) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Title = title
	t.Completed = completed
	t.UpdatedAt = time.Now().UTC()
	copied := *t
	return &copied, nil
}

func (r *memTaskRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) readCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}
