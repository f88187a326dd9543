package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentshare/internal/domain"
	"rentshare/internal/metrics"
	"rentshare/internal/models"

	"github.com/rs/zerolog"
)

// CommentService пропускает комментарий только после завершенной
// подтвержденной аренды: status == APPROVED и end < now.
type CommentService struct {
	repo   domain.Repository
	clock  domain.Clock
	logger *zerolog.Logger
}

func NewCommentService(repo domain.Repository, clock domain.Clock, logger *zerolog.Logger) *CommentService {
	return &CommentService{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

func (s *CommentService) Create(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	now := s.clock.Now()

	exists, err := s.repo.UserExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrUserNotFound, authorID)
	}

	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListBookingsByItemAndBooker(ctx, itemID, authorID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, fmt.Errorf("%w: item_id=%d booker_id=%d", domain.ErrBookingNotFound, itemID, authorID)
	}

	// Право дает любая подтвержденная завершившаяся аренда предмета.
	if !hasCompletedApproved(bookings, now) {
		return nil, fmt.Errorf("%w: item_id=%d author_id=%d", domain.ErrCommentNotAuthorized,
			itemID, authorID)
	}

	comment := &models.Comment{
		ItemID:   itemID,
		AuthorID: authorID,
		Text:     strings.TrimSpace(text),
		Created:  now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	metrics.IncCommentCreated()
	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment created")
	return comment, nil
}

func hasCompletedApproved(bookings []*models.Booking, now time.Time) bool {
	for _, b := range bookings {
		if b.Status == models.StatusApproved && b.End.Before(now) {
			return true
		}
	}
	return false
}

func (s *CommentService) ListByItem(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	return s.repo.ListCommentsByItem(ctx, itemID)
}
