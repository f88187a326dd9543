package service

import (
	"context"
	"fmt"
	"strings"

	"rentshare/internal/domain"
	"rentshare/internal/models"

	"github.com/rs/zerolog"
)

// RequestService — запросы на предметы, которых нет в каталоге.
type RequestService struct {
	repo   domain.Repository
	clock  domain.Clock
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, clock domain.Clock, logger *zerolog.Logger) *RequestService {
	return &RequestService{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

func (s *RequestService) Create(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	exists, err := s.repo.UserExists(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrUserNotFound, requesterID)
	}

	request := &models.ItemRequest{
		Description: strings.TrimSpace(description),
		RequesterID: requesterID,
		Created:     s.clock.Now(),
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requester_id", requesterID).Msg("item request created")
	return request, nil
}

// ListOwn возвращает запросы пользователя вместе с ответившими предметами.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]*models.ItemRequestWithItems, error) {
	exists, err := s.repo.UserExists(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrUserNotFound, requesterID)
	}

	requests, err := s.repo.ListRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// ListAll — все запросы без ответов, свежие первыми.
func (s *RequestService) ListAll(ctx context.Context) ([]*models.ItemRequest, error) {
	return s.repo.ListAllRequests(ctx)
}

// GetByID открыт любому пользователю, как и чтение заявок.
func (s *RequestService) GetByID(ctx context.Context, requestID int64) (*models.ItemRequestWithItems, error) {
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return &models.ItemRequestWithItems{ItemRequest: *request, Items: items}, nil
}

func (s *RequestService) withItems(ctx context.Context, requests []*models.ItemRequest) ([]*models.ItemRequestWithItems, error) {
	result := make([]*models.ItemRequestWithItems, 0, len(requests))
	for _, r := range requests {
		items, err := s.repo.ListItemsByRequest(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &models.ItemRequestWithItems{ItemRequest: *r, Items: items})
	}
	return result, nil
}
