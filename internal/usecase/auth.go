package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"todo-backend/internal/auth"
	"todo-backend/internal/domain"
	"todo-backend/internal/email"
	"todo-backend/internal/repository"
)

type AuthUsecase struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenService,
	emailSender email.Sender,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type SignupInput struct {
	Email    string
	Password string
	FullName string
}

// Signup hashes the password and persists the user. The plaintext never
// leaves this function; the stored record is the bcrypt hash only.
func (u *AuthUsecase) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	hashed, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Welcome email is best-effort; a delivery failure must not fail signup.
	subject := "Welcome!"
	body := fmt.Sprintf("<p>Hi %s, your account is ready. Sign in to start adding todos.</p>", created.FullName)
	if err := u.email.Send(ctx, created.Email, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "error", err)
	}

	return created, nil
}

// Login verifies credentials and returns a signed bearer token. Unknown
// email and wrong password produce the same error so callers cannot probe
// which addresses are registered.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive || !u.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}
