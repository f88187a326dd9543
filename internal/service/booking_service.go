package service

import (
	"context"
	"fmt"
	"time"

	"rentshare/internal/domain"
	"rentshare/internal/metrics"
	"rentshare/internal/models"

	"github.com/rs/zerolog"
)

// BookingService реализует жизненный цикл заявки и временные выборки.
type BookingService struct {
	repo   domain.Repository
	clock  domain.Clock
	logger *zerolog.Logger
}

func NewBookingService(repo domain.Repository, clock domain.Clock, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

// Create валидирует запрос и сохраняет заявку в статусе WAITING.
// Даты проверяются до обращений к хранилищу: start строго раньше end.
// Доступность предмета проверяется только здесь, при подтверждении
// повторной проверки нет.
func (s *BookingService) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error) {
	s.logger.Debug().
		Int64("booker_id", bookerID).
		Int64("item_id", itemID).
		Time("start", start).
		Time("end", end).
		Msg("booking create requested")

	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start=%s end=%s", domain.ErrInvalidBookingDate,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.UserExists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrUserNotFound, bookerID)
	}

	if !item.Available {
		return nil, fmt.Errorf("%w: item_id=%d", domain.ErrItemUnavailable, itemID)
	}

	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Start:    start,
		End:      end,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.logger.Info().Int64("booking_id", booking.ID).Int64("booker_id", bookerID).Msg("booking created")
	return booking, nil
}

// Approve переводит заявку владельца предмета из WAITING в APPROVED или
// REJECTED. Поиск заявки и проверка владельца — один совмещенный запрос:
// по ответу нельзя отличить чужую заявку от несуществующей.
func (s *BookingService) Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (*models.Booking, error) {
	booking, err := s.repo.GetBookingForOwner(ctx, bookingID, ownerID)
	if err != nil {
		return nil, err
	}

	if booking.Status != models.StatusWaiting {
		return nil, fmt.Errorf("%w: status=%s", domain.ErrInvalidStatusTransition, booking.Status)
	}

	newStatus := models.StatusRejected
	if approved {
		newStatus = models.StatusApproved
	}

	updated, err := s.repo.SetBookingStatus(ctx, bookingID, newStatus)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Конкурентное подтверждение успело раньше.
		return nil, fmt.Errorf("%w: booking already resolved", domain.ErrInvalidStatusTransition)
	}

	booking.Status = newStatus
	metrics.IncBookingResolved(string(newStatus))
	s.logger.Info().
		Int64("booking_id", bookingID).
		Int64("owner_id", ownerID).
		Str("status", string(newStatus)).
		Msg("booking approval processed")
	return booking, nil
}

// GetByID возвращает заявку без проверки принадлежности запрашивающего:
// идентификатор пишется только в лог. Сознательно мягкая политика чтения.
func (s *BookingService) GetByID(ctx context.Context, bookingID, requesterID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("booking_id", bookingID).Int64("requester_id", requesterID).Msg("booking fetched")
	return booking, nil
}

// ListByBooker возвращает заявки арендатора, отфильтрованные по статусу
// или положению относительно текущего момента. Часы читаются на каждый
// вызов: одна и та же заявка со временем мигрирует между CURRENT/PAST/FUTURE.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, filter models.BookingFilter) ([]*models.Booking, error) {
	if err := s.checkListAccess(ctx, bookerID, s.repo.CountBookingsByBooker); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	switch filter {
	case models.FilterCurrent:
		return s.repo.ListByBookerCurrent(ctx, bookerID, now)
	case models.FilterPast:
		return s.repo.ListByBookerPast(ctx, bookerID, now)
	case models.FilterFuture:
		return s.repo.ListByBookerFuture(ctx, bookerID, now)
	case models.FilterWaiting:
		return s.repo.ListByBookerStatus(ctx, bookerID, models.StatusWaiting)
	case models.FilterRejected:
		return s.repo.ListByBookerStatus(ctx, bookerID, models.StatusRejected)
	case models.FilterApproved:
		return s.repo.ListByBookerStatus(ctx, bookerID, models.StatusApproved)
	default:
		return s.repo.ListByBooker(ctx, bookerID)
	}
}

// ListByOwner — те же фильтры по заявкам на предметы владельца.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, filter models.BookingFilter) ([]*models.Booking, error) {
	if err := s.checkListAccess(ctx, ownerID, s.repo.CountBookingsByOwner); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	switch filter {
	case models.FilterCurrent:
		return s.repo.ListByOwnerCurrent(ctx, ownerID, now)
	case models.FilterPast:
		return s.repo.ListByOwnerPast(ctx, ownerID, now)
	case models.FilterFuture:
		return s.repo.ListByOwnerFuture(ctx, ownerID, now)
	case models.FilterWaiting:
		return s.repo.ListByOwnerStatus(ctx, ownerID, models.StatusWaiting)
	case models.FilterRejected:
		return s.repo.ListByOwnerStatus(ctx, ownerID, models.StatusRejected)
	case models.FilterApproved:
		return s.repo.ListByOwnerStatus(ctx, ownerID, models.StatusApproved)
	default:
		return s.repo.ListByOwner(ctx, ownerID)
	}
}

// checkListAccess: пользователь должен существовать, и у него должна быть
// хотя бы одна заявка — иначе любая выборка (включая ALL) запрещена.
// Унаследованная причуда контракта, см. DESIGN.md.
func (s *BookingService) checkListAccess(ctx context.Context, userID int64, count func(context.Context, int64) (int, error)) error {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: id=%d", domain.ErrUserNotFound, userID)
	}

	n, err := count(ctx, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id=%d", domain.ErrUnauthorizedGetBookings, userID)
	}
	return nil
}

// ListByDateRange — выборка за период для административного экспорта.
func (s *BookingService) ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	return s.repo.ListBookingsByDateRange(ctx, start, end)
}
