package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"trustrate/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewService(NewRepository(db), jwt.New("test-secret", 15*time.Minute))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Name:     "Aliya",
		Email:    "Aliya@Example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "aliya@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)

	result, err := svc.Login(ctx, LoginRequest{
		Email:    "aliya@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Empty(t, result.User.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	req := RegisterRequest{Name: "Aliya", Email: "aliya@example.com", Password: "correct horse battery"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Aliya", Email: "aliya@example.com", Password: "correct horse battery"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "aliya@example.com", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
