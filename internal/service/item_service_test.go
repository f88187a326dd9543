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

func newTestItemService(t *testing.T, repo domain.Repository) *ItemService {
	t.Helper()
	logger := zerolog.Nop()
	return NewItemService(repo, &logger)
}

func TestItemService_Create(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestItemService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")

	item, err := svc.Create(ctx, owner.ID, &models.Item{Name: "Drill", Description: "800W", Available: true})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, owner.ID, item.OwnerID)

	_, err = svc.Create(ctx, 9999, &models.Item{Name: "Ghost", Available: true})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestItemService_CreateOnRequest(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestItemService(t, repo)
	ctx := context.Background()

	requester := seedUser(t, repo, "Requester", "requester@example.com")
	owner := seedUser(t, repo, "Owner", "owner@example.com")

	request := &models.ItemRequest{Description: "need a drill", RequesterID: requester.ID, Created: testNow}
	require.NoError(t, repo.CreateRequest(ctx, request))

	item, err := svc.Create(ctx, owner.ID, &models.Item{Name: "Drill", Available: true, RequestID: &request.ID})
	require.NoError(t, err)
	require.NotNil(t, item.RequestID)
	assert.Equal(t, request.ID, *item.RequestID)

	answers, err := repo.ListItemsByRequest(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, item.ID, answers[0].ID)
}

func TestItemService_CreateOnOwnRequest(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestItemService(t, repo)
	ctx := context.Background()

	requester := seedUser(t, repo, "Requester", "requester@example.com")

	request := &models.ItemRequest{Description: "need a drill", RequesterID: requester.ID, Created: testNow}
	require.NoError(t, repo.CreateRequest(ctx, request))

	// Отвечать предметом на собственный запрос нельзя.
	_, err := svc.Create(ctx, requester.ID, &models.Item{Name: "Drill", Available: true, RequestID: &request.ID})
	assert.ErrorIs(t, err, domain.ErrOwnItemRequest)
}

func TestItemService_CreateOnMissingRequest(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestItemService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")

	missing := int64(9999)
	_, err := svc.Create(ctx, owner.ID, &models.Item{Name: "Drill", Available: true, RequestID: &missing})
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestItemService_Update(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestItemService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")
	item := seedItem(t, repo, owner.ID, "Drill", true)

	name := "Hammer drill"
	available := false
	updated, err := svc.Update(ctx, owner.ID, item.ID, models.ItemPatch{Name: &name, Available: &available})
	require.NoError(t, err)
	assert.Equal(t, "Hammer drill", updated.Name)
	assert.False(t, updated.Available)
	// Незаполненные поля патча не трогаются.
	assert.Equal(t, item.Description, updated.Description)
}

func TestItemService_Update_NotOwner(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestItemService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")
	stranger := seedUser(t, repo, "Stranger", "stranger@example.com")
	item := seedItem(t, repo, owner.ID, "Drill", true)

	name := "Stolen drill"
	_, err := svc.Update(ctx, stranger.ID, item.ID, models.ItemPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = svc.Update(ctx, 9999, item.ID, models.ItemPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestItemService_GetListSearch(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestItemService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")
	drill := seedItem(t, repo, owner.ID, "Drill", true)
	seedItem(t, repo, owner.ID, "Saw", true)

	got, err := svc.GetByID(ctx, drill.ID)
	require.NoError(t, err)
	assert.Equal(t, drill.ID, got.ID)

	items, err := svc.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	found, err := svc.Search(ctx, "drill")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, drill.ID, found[0].ID)

	found, err = svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, found)
}
