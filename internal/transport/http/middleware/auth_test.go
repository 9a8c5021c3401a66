package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todo-backend/internal/auth"
	"todo-backend/internal/domain"
	"todo-backend/internal/transport/http/middleware"

	"github.com/gin-gonic/gin"
	"log/slog"
)

const testKey = "middleware-test-secret-32-chars!!!!!"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUserRepo struct {
	findByID func(ctx context.Context, id string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	panic("not used")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	panic("not used")
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

var testTokens = auth.NewTokenService([]byte(testKey), time.Hour)

// newEngine builds a minimal gin engine with the Auth middleware protecting
// GET /protected. The handler writes the resolved userID so we can assert it.
func newEngine(repo *fakeUserRepo) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(testTokens, repo, slog.Default()), func(c *gin.Context) {
		c.String(http.StatusOK, "%v", c.GetString(middleware.UserIDKey))
	})
	return r
}

func repoWithActiveUser(id string) *fakeUserRepo {
	return &fakeUserRepo{
		findByID: func(_ context.Context, gotID string) (*domain.User, error) {
			if gotID != id {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: id, Email: "a@x.com", IsActive: true}, nil
		},
	}
}

func get(t *testing.T, engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	w := get(t, newEngine(repoWithActiveUser("user-1")), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	w := get(t, newEngine(repoWithActiveUser("user-1")), "Basic dXNlcjpwYXNz")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_MalformedToken_Returns401(t *testing.T) {
	w := get(t, newEngine(repoWithActiveUser("user-1")), "Bearer not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	expired := auth.NewTokenService([]byte(testKey), -time.Hour)
	tok, err := expired.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := get(t, newEngine(repoWithActiveUser("user-1")), "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_WrongSigningKey_Returns401(t *testing.T) {
	other := auth.NewTokenService([]byte("different-key-that-is-32-chars!!!!!!"), time.Hour)
	tok, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := get(t, newEngine(repoWithActiveUser("user-1")), "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidTokenButUserGone_Returns401(t *testing.T) {
	tok, err := testTokens.Issue("user-deleted")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	w := get(t, newEngine(repo), "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 (fail closed when subject user is gone)", w.Code)
	}
}

func TestAuth_DeactivatedUser_Returns401(t *testing.T) {
	tok, err := testTokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return &domain.User{ID: "user-1", IsActive: false}, nil
		},
	}

	w := get(t, newEngine(repo), "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidToken_ResolvesUser(t *testing.T) {
	const userID = "user-abc"
	tok, err := testTokens.Issue(userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := get(t, newEngine(repoWithActiveUser(userID)), "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != userID {
		t.Errorf("body = %q, want %q", got, userID)
	}
}

func TestAuth_FailureBodiesAreUniform(t *testing.T) {
	tok, err := testTokens.Issue("user-gone")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	engine := newEngine(repo)

	missing := get(t, engine, "")
	badToken := get(t, engine, "Bearer garbage")
	userGone := get(t, engine, "Bearer "+tok)

	if missing.Body.String() != badToken.Body.String() || badToken.Body.String() != userGone.Body.String() {
		t.Errorf("401 bodies differ: %q / %q / %q — failure modes must be indistinguishable",
			missing.Body.String(), badToken.Body.String(), userGone.Body.String())
	}
}
