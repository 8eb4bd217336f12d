package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"
	"bankcards/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, *auth.Tokens, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*models.User)
	t, _ := args.Get(1).(*auth.Tokens)
	return u, t, args.Error(2)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*auth.Tokens, error) {
	args := m.Called(ctx, refreshToken)
	t, _ := args.Get(0).(*auth.Tokens)
	return t, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error) {
	args := m.Called(ctx, accessToken)
	c, _ := args.Get(0).(*models.UserClaims)
	return c, args.Error(1)
}

func newTestApp(svc auth.Service, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{NewAuthMiddleware(svc).Handler}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		claims := c.Locals("claims").(*models.UserClaims)
		return c.SendString(claims.UserID.String())
	})
	app.Get("/protected", handlers...)
	return app
}

func doGet(t *testing.T, app *fiber.App, authHeader string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestAuthMiddleware_Handler(t *testing.T) {
	userID := uuid.New()
	claims := &models.UserClaims{UserID: userID, Role: models.RoleUser, Permissions: models.GetDefaultPermissions(models.RoleUser)}

	t.Run("valid token", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Authenticate", mock.Anything, "good").Return(claims, nil)

		resp, body := doGet(t, newTestApp(svc), "Bearer good")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, userID.String(), body)
	})

	t.Run("missing header", func(t *testing.T) {
		resp, _ := doGet(t, newTestApp(new(MockAuthService)), "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		resp, _ := doGet(t, newTestApp(new(MockAuthService)), "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("revoked token", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Authenticate", mock.Anything, "old").Return(nil, apperrors.ErrTokenRevoked)

		resp, body := doGet(t, newTestApp(svc), "Bearer old")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "TOKEN_REVOKED")
	})

	t.Run("backend failure", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Authenticate", mock.Anything, "tok").Return(nil, errors.New("redis down"))

		resp, body := doGet(t, newTestApp(svc), "Bearer tok")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, body, "redis")
	})
}

func TestAdminAuthMiddleware(t *testing.T) {
	for _, tt := range []struct {
		role string
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleUser, http.StatusForbidden},
	} {
		t.Run(tt.role, func(t *testing.T) {
			svc := new(MockAuthService)
			svc.On("Authenticate", mock.Anything, "tok").Return(&models.UserClaims{UserID: uuid.New(), Role: tt.role}, nil)

			resp, _ := doGet(t, newTestApp(svc, AdminAuthMiddleware), "Bearer tok")
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHasPermission(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Authenticate", mock.Anything, "admin").Return(&models.UserClaims{
		UserID:      uuid.New(),
		Role:        models.RoleAdmin,
		Permissions: models.GetDefaultPermissions(models.RoleAdmin),
	}, nil)
	svc.On("Authenticate", mock.Anything, "user").Return(&models.UserClaims{
		UserID:      uuid.New(),
		Role:        models.RoleUser,
		Permissions: models.GetDefaultPermissions(models.RoleUser),
	}, nil)

	app := newTestApp(svc, HasPermission(models.PermissionCardTransfer))

	resp, _ := doGet(t, app, "Bearer user")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doGet(t, app, "Bearer admin")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
