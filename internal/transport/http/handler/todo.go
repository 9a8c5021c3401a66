package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"todo-backend/internal/domain"
	"todo-backend/internal/transport/http/middleware"
	"todo-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type todoUsecaser interface {
	Create(ctx context.Context, input usecase.CreateTodoInput) (*domain.Todo, error)
	List(ctx context.Context, input usecase.ListTodosInput) (*usecase.ListTodosResult, error)
	Get(ctx context.Context, todoID, ownerID string) (*domain.Todo, error)
	Update(ctx context.Context, input usecase.UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, todoID, ownerID string) error
}

type TodoHandler struct {
	todoUsecase todoUsecaser
	logger      *slog.Logger
}

func NewTodoHandler(todoUsecase todoUsecaser, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todoUsecase: todoUsecase, logger: logger.With("component", "todo_handler")}
}

type createTodoRequest struct {
	Title       string `json:"title"       binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

type updateTodoRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Completed   *bool   `json:"completed"`
}

type todoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type listTodosResponse struct {
	Todos    []todoResponse `json:"todos"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

func newTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// POST /todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoUsecase.Create(c.Request.Context(), usecase.CreateTodoInput{
		OwnerID:     c.GetString(middleware.UserIDKey),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create todo", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, newTodoResponse(todo))
}

// GET /todos?q=&page=&page_size=
func (h *TodoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	result, err := h.todoUsecase.List(c.Request.Context(), usecase.ListTodosInput{
		OwnerID:  c.GetString(middleware.UserIDKey),
		Search:   c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list todos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]todoResponse, len(result.Todos))
	for i, t := range result.Todos {
		items[i] = newTodoResponse(t)
	}
	c.JSON(http.StatusOK, listTodosResponse{
		Todos:    items,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

// GET /todos/:id
func (h *TodoHandler) GetByID(c *gin.Context) {
	todoID := c.Param("id")

	todo, err := h.todoUsecase.Get(c.Request.Context(), todoID, c.GetString(middleware.UserIDKey))
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get todo", "todo_id", todoID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

// PATCH /todos/:id — only fields present in the body change.
func (h *TodoHandler) Update(c *gin.Context) {
	todoID := c.Param("id")

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoUsecase.Update(c.Request.Context(), usecase.UpdateTodoInput{
		ID:          todoID,
		OwnerID:     c.GetString(middleware.UserIDKey),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "update todo", "todo_id", todoID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

// DELETE /todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	todoID := c.Param("id")

	err := h.todoUsecase.Delete(c.Request.Context(), todoID, c.GetString(middleware.UserIDKey))
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete todo", "todo_id", todoID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.Status(http.StatusNoContent)
}
