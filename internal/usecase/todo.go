package usecase

import (
	"context"
	"fmt"

	"todo-backend/internal/domain"
	"todo-backend/internal/repository"
)

const (
	// Page numbering starts at 1.
	defaultPageSize = 20
	maxPageSize     = 100
)

type TodoUsecase struct {
	repo repository.TodoRepository
}

func NewTodoUsecase(repo repository.TodoRepository) *TodoUsecase {
	return &TodoUsecase{repo: repo}
}

type CreateTodoInput struct {
	OwnerID     string
	Title       string
	Description string
}

func (u *TodoUsecase) Create(ctx context.Context, input CreateTodoInput) (*domain.Todo, error) {
	todo, err := u.repo.Create(ctx, &domain.Todo{
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

type ListTodosInput struct {
	OwnerID  string
	Search   string
	Page     int
	PageSize int
}

type ListTodosResult struct {
	Todos    []*domain.Todo
	Page     int
	PageSize int
}

func (u *TodoUsecase) List(ctx context.Context, input ListTodosInput) (*ListTodosResult, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize < 1 {
		input.PageSize = defaultPageSize
	}
	if input.PageSize > maxPageSize {
		input.PageSize = maxPageSize
	}

	todos, err := u.repo.List(ctx, repository.ListTodosInput{
		OwnerID: input.OwnerID,
		Search:  input.Search,
		Offset:  (input.Page - 1) * input.PageSize,
		Limit:   input.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return &ListTodosResult{
		Todos:    todos,
		Page:     input.Page,
		PageSize: input.PageSize,
	}, nil
}

func (u *TodoUsecase) Get(ctx context.Context, todoID, ownerID string) (*domain.Todo, error) {
	todo, err := u.repo.GetByID(ctx, todoID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

type UpdateTodoInput struct {
	ID          string
	OwnerID     string
	Title       *string
	Description *string
	Completed   *bool
}

func (u *TodoUsecase) Update(ctx context.Context, input UpdateTodoInput) (*domain.Todo, error) {
	todo, err := u.repo.Update(ctx, repository.UpdateTodoInput{
		ID:          input.ID,
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	})
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

func (u *TodoUsecase) Delete(ctx context.Context, todoID, ownerID string) error {
	if err := u.repo.Delete(ctx, todoID, ownerID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
