package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo-backend/internal/domain"
	"todo-backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

const todoColumns = `id, owner_id, title, description, completed, created_at, updated_at`

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	query := `
		INSERT INTO todos (owner_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING ` + todoColumns

	row := r.pool.QueryRow(ctx, query, todo.OwnerID, todo.Title, todo.Description)
	return scanTodo(row)
}

func (r *TodoRepository) GetByID(ctx context.Context, todoID, ownerID string) (*domain.Todo, error) {
	// Scoping by owner_id makes a foreign todo indistinguishable from a
	// missing one: both come back as ErrTodoNotFound.
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1 AND owner_id = $2`

	return scanTodo(r.pool.QueryRow(ctx, query, todoID, ownerID))
}

func (r *TodoRepository) List(ctx context.Context, input repository.ListTodosInput) ([]*domain.Todo, error) {
	args := []any{input.OwnerID}
	where := []string{"owner_id = $1"}

	if input.Search != "" {
		args = append(args, "%"+escapeLike(input.Search)+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	args = append(args, input.Limit, input.Offset)

	query := fmt.Sprintf(`
		SELECT `+todoColumns+`
		FROM todos
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []*domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) Update(ctx context.Context, input repository.UpdateTodoInput) (*domain.Todo, error) {
	args := []any{input.ID, input.OwnerID}
	set := []string{"updated_at = NOW()"}

	if input.Title != nil {
		args = append(args, *input.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if input.Completed != nil {
		args = append(args, *input.Completed)
		set = append(set, fmt.Sprintf("completed = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE todos
		SET %s
		WHERE id = $1 AND owner_id = $2
		RETURNING `+todoColumns,
		strings.Join(set, ", "))

	return scanTodo(r.pool.QueryRow(ctx, query, args...))
}

func (r *TodoRepository) Delete(ctx context.Context, todoID, ownerID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM todos WHERE id = $1 AND owner_id = $2`, todoID, ownerID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search terms
// so they match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &t, nil
}
