package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Task is a single tracked task owned by a user.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskRepository defines persistence operations for tasks. Implementations
// must keep single-record operations atomic; no multi-record transactions are
// required.
type TaskRepository interface {
	FindByID(ctx context.Context, id string) (*Task, error)
	FindByOwner(ctx context.Context, ownerID string) ([]Task, error)
	Create(ctx context.Context, title string, completed bool, ownerID string) (*Task, error)
	UpdateByID(ctx context.Context, id, title string, completed bool) (*Task, error)
	DeleteByID(ctx context.Context, id string) error
}

// PgTaskRepository implements TaskRepository using pgxpool.
type PgTaskRepository struct {
	db *pgxpool.Pool
}

func NewPgTaskRepository(db *pgxpool.Pool) *PgTaskRepository {
	return &PgTaskRepository{db: db}
}

func (r *PgTaskRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	const q = `SELECT id, title, completed, owner_id, created_at, updated_at FROM tasks WHERE id=$1`
	var t Task
	if err := r.db.QueryRow(ctx, q, id).Scan(&t.ID, &t.Title, &t.Completed, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PgTaskRepository) FindByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, title, completed, owner_id, created_at, updated_at
FROM tasks
WHERE owner_id=$1
ORDER BY created_at, id
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tasks := make([]Task, 0)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PgTaskRepository) Create(ctx context.Context, title string, completed bool, ownerID string) (*Task, error) {
	const q = `INSERT INTO tasks (id, title, completed, owner_id) VALUES ($1,$2,$3,$4) RETURNING created_at, updated_at`
	t := Task{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: completed,
		OwnerID:   ownerID,
	}
	if err := r.db.QueryRow(ctx, q, t.ID, t.Title, t.Completed, t.OwnerID).Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateByID replaces title and completed and refreshes updated_at.
func (r *PgTaskRepository) UpdateByID(ctx context.Context, id, title string, completed bool) (*Task, error) {
	const q = `
UPDATE tasks SET title=$1, completed=$2, updated_at=now()
WHERE id=$3
RETURNING id, title, completed, owner_id, created_at, updated_at
`
	var t Task
	if err := r.db.QueryRow(ctx, q, title, completed, id).Scan(&t.ID, &t.Title, &t.Completed, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PgTaskRepository) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM tasks WHERE id=$1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
