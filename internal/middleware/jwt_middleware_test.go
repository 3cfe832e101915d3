package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test_jwt_secret"

// unusedUsers satisfies repositories.UserRepository; token validation never touches it.
type unusedUsers struct{}

func (unusedUsers) Create(context.Context, *models.User) error { return nil }
func (unusedUsers) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, models.ErrNotFound
}
func (unusedUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, models.ErrNotFound
}
func (unusedUsers) GetByID(context.Context, string) (*models.User, error) {
	return nil, models.ErrNotFound
}

func signedToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "operator",
		"exp":      exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthRequired(t *testing.T) {
	authService := services.NewAuthService(unusedUsers{}, testSecret, time.Hour)

	app := fiber.New()
	app.Get("/protected", middleware.AuthRequired(authService, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("username").(string))
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"foreign secret", "Bearer " + signedToken(t, "other", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + signedToken(t, testSecret, time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"valid", "Bearer " + signedToken(t, testSecret, time.Now().Add(time.Hour)), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
