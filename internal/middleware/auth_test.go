package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flowershop-api/internal/apperror"
	"flowershop-api/internal/client"
	"flowershop-api/internal/model"
	"flowershop-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupAuth(t *testing.T) (repository.UserRepository, *model.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:authtest?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	repo := repository.NewUserRepository(db)
	user := &model.User{
		ID:           uuid.NewString(),
		Name:         "Iris",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return repo, user
}

func signToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func invoke(t *testing.T, repo repository.UserRepository, authHeader string) (model.Actor, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var actor model.Actor
	handler := Auth(testSecret, repo)(func(c echo.Context) error {
		actor = ActorFrom(c)
		return nil
	})
	err := handler(c)
	return actor, err
}

func TestAuthResolvesActor(t *testing.T) {
	repo, user := setupAuth(t)

	actor, err := invoke(t, repo, "Bearer "+signToken(t, user.ID, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.UserID)
	assert.False(t, actor.IsAdmin)
}

func TestAuthRejectsBadTokens(t *testing.T) {
	repo, user := setupAuth(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + signToken(t, user.ID, -time.Hour)},
		{"unknown subject", "Bearer " + signToken(t, "ghost", time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := invoke(t, repo, tt.header)
			require.Error(t, err)
			assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
		})
	}
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()

	run := func(actor model.Actor) error {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set(actorKey, actor)
		return AdminOnly()(func(echo.Context) error { return nil })(c)
	}

	require.NoError(t, run(model.Actor{UserID: "u", IsAdmin: true}))

	err := run(model.Actor{UserID: "u"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}
