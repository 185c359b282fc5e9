package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"flowershop-api/internal/client"
	"flowershop-api/internal/config"
	"flowershop-api/internal/model"
	"flowershop-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testAuthCfg = &config.Auth{
	JWTSecret: "test-secret",
	TokenTTL:  30 * 24 * time.Hour,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// one named in-memory database per test, shared across pool connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, isAdmin bool) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "x",
		Address:      "1 Flower St",
		Gender:       "other",
		IsAdmin:      isAdmin,
	}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))
	return user
}
