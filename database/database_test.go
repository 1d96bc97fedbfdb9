package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"warbler/domain"
)

const testPepper = "test-pepper"

// setupTestDB opens a fresh in-memory database with a clean schema.
// Every test gets its own, so no state leaks between tests.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Message{},
		&domain.Follow{},
		&domain.Like{},
	))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// setupServices wires all services onto a fresh test database.
func setupServices(t *testing.T) *Services {
	t.Helper()
	services, err := NewServices(
		setupTestDB(t),
		WithUser(testPepper),
		WithMessage(),
		WithFollow(),
		WithLike(),
	)
	require.NoError(t, err)
	return services
}

// signupTestUser creates a user the way the signup flow would.
func signupTestUser(t *testing.T, us *UserService, username, email string) *domain.User {
	t.Helper()
	user, err := us.Signup(username, email, "password", "")
	require.NoError(t, err)
	return user
}
