package repository

import (
	"context"

	"todo-backend/internal/domain"
)

type ListTodosInput struct {
	OwnerID string
	Search  string // empty = no filter; matched case-insensitively against title and description
	Offset  int
	Limit   int
}

type UpdateTodoInput struct {
	ID      string
	OwnerID string

	// nil fields are left untouched
	Title       *string
	Description *string
	Completed   *bool
}

// Usecases depend on this interface, not the pgx implementation, so tests
// can swap in fakes and the storage engine stays replaceable.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	GetByID(ctx context.Context, todoID, ownerID string) (*domain.Todo, error)
	List(ctx context.Context, input ListTodosInput) ([]*domain.Todo, error)
	Update(ctx context.Context, input UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, todoID, ownerID string) error
}
