package service

import (
	"context"
	"testing"

	"rentshare/internal/domain"
	"rentshare/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T, repo domain.Repository) *UserService {
	t.Helper()
	logger := zerolog.Nop()
	return NewUserService(repo, &logger)
}

func TestUserService_CreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	user, err := svc.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = svc.Create(ctx, &models.User{Name: "Clone", Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestUserService_Update(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	user, err := svc.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	email := "alice.new@example.com"
	updated, err := svc.Update(ctx, user.ID, models.UserPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, "Alice", updated.Name)

	_, err = svc.Update(ctx, 9999, models.UserPatch{Email: &email})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	user, err := svc.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err = svc.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	err = svc.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
