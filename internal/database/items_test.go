package database

import (
	"context"
	"testing"

	"rentshare/internal/domain"
	"rentshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)
	require.NotZero(t, item.ID)

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Name)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.True(t, got.Available)
}

func TestGetItem_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetItem(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetItemForOwner(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	stranger := createTestUser(t, db, "Stranger", "stranger@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	got, err := db.GetItemForOwner(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = db.GetItemForOwner(ctx, item.ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestUpdateItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	item.Name = "Hammer drill"
	item.Available = false
	require.NoError(t, db.UpdateItem(ctx, item))

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hammer drill", got.Name)
	assert.False(t, got.Available)
}

func TestUpdateItem_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := db.UpdateItem(context.Background(), &models.Item{ID: 42, Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestListItemsByOwner(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")
	first := createTestItem(t, db, owner.ID, "Drill", true)
	second := createTestItem(t, db, owner.ID, "Saw", false)
	createTestItem(t, db, other.ID, "Ladder", true)

	items, err := db.ListItemsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}

func TestSearchItems(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	drill := createTestItem(t, db, owner.ID, "Power Drill", true)
	createTestItem(t, db, owner.ID, "Broken Drill", false)
	saw := &models.Item{Name: "Saw", Description: "cordless drilling companion", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, saw))

	// Пустой запрос дает пустой результат.
	items, err := db.SearchItems(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Регистронезависимый поиск по названию и описанию, только доступные.
	items, err = db.SearchItems(ctx, "dRiLl")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, drill.ID, items[0].ID)
	assert.Equal(t, saw.ID, items[1].ID)
}
