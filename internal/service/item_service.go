package service

import (
	"context"
	"fmt"

	"rentshare/internal/domain"
	"rentshare/internal/models"

	"github.com/rs/zerolog"
)

// ItemService — простая сквозная логика каталога предметов.
type ItemService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewItemService(repo domain.Repository, logger *zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, logger: logger}
}

// Create сохраняет предмет. Если указан запрос, предмет привязывается к
// нему как ответ; отвечать на собственный запрос нельзя.
func (s *ItemService) Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	exists, err := s.repo.UserExists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrUserNotFound, ownerID)
	}

	if item.RequestID != nil {
		request, err := s.repo.GetRequest(ctx, *item.RequestID)
		if err != nil {
			return nil, err
		}
		if request.RequesterID == ownerID {
			return nil, fmt.Errorf("%w: request_id=%d", domain.ErrOwnItemRequest, request.ID)
		}
	}

	item.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return item, nil
}

// Update применяет частичное обновление. Менять предмет может только
// владелец; чужой предмет выглядит как отсутствующий.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	exists, err := s.repo.UserExists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrUserNotFound, ownerID)
	}

	item, err := s.repo.GetItemForOwner(ctx, itemID, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) GetByID(ctx context.Context, itemID int64) (*models.Item, error) {
	return s.repo.GetItem(ctx, itemID)
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	return s.repo.ListItemsByOwner(ctx, ownerID)
}

func (s *ItemService) Search(ctx context.Context, text string) ([]*models.Item, error) {
	return s.repo.SearchItems(ctx, text)
}
