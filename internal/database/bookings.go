package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentshare/internal/domain"
	"rentshare/internal/models"
)

const bookingColumns = `id, item_id, booker_id, start_date, end_date, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO bookings (item_id, booker_id, start_date, end_date, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := tx.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		utc(booking.Start),
		utc(booking.End),
		booking.Status,
		utc(now),
		utc(now),
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// GetBookingForOwner выбирает заявку одним запросом с проверкой владельца
// предмета. Несуществующая и чужая заявка неразличимы по результату.
func (db *DB) GetBookingForOwner(ctx context.Context, bookingID, ownerID int64) (*models.Booking, error) {
	query := `SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status, b.created_at, b.updated_at
              FROM bookings b
              JOIN items i ON i.id = b.item_id
              WHERE b.id = ? AND i.owner_id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, bookingID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUnauthorizedApproval
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking for owner: %w", err)
	}
	return booking, nil
}

// SetBookingStatus переводит заявку из WAITING в новый статус внутри
// транзакции. Защитный предикат status='WAITING' гарантирует, что из двух
// конкурентных подтверждений пройдет ровно одно.
func (db *DB) SetBookingStatus(ctx context.Context, id int64, status models.BookingStatus) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := tx.ExecContext(ctx, query, status, utc(time.Now()), id, models.StatusWaiting)
	if err != nil {
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit status update: %w", err)
	}
	return rows == 1, nil
}

func (db *DB) CountBookingsByBooker(ctx context.Context, bookerID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE booker_id = ?`, bookerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by booker: %w", err)
	}
	return count, nil
}

func (db *DB) CountBookingsByOwner(ctx context.Context, ownerID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM bookings b JOIN items i ON i.id = b.item_id WHERE i.owner_id = ?`
	err := db.QueryRowContext(ctx, query, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by owner: %w", err)
	}
	return count, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

// Выборки списков арендатора. Сортировка по дате начала по убыванию — всегда.

func (db *DB) ListByBooker(ctx context.Context, bookerID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booker_id = ? ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, bookerID)
}

func (db *DB) ListByBookerCurrent(ctx context.Context, bookerID int64, now time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booker_id = ? AND start_date <= ? AND end_date > ?
              ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, bookerID, utc(now), utc(now))
}

func (db *DB) ListByBookerPast(ctx context.Context, bookerID int64, now time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booker_id = ? AND end_date < ?
              ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, bookerID, utc(now))
}

func (db *DB) ListByBookerFuture(ctx context.Context, bookerID int64, now time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booker_id = ? AND start_date > ?
              ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, bookerID, utc(now))
}

func (db *DB) ListByBookerStatus(ctx context.Context, bookerID int64, status models.BookingStatus) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booker_id = ? AND status = ?
              ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, bookerID, status)
}

// Выборки списков владельца: те же предикаты поверх join с items.

const ownerBookingSelect = `SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status, b.created_at, b.updated_at
              FROM bookings b JOIN items i ON i.id = b.item_id`

func (db *DB) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Booking, error) {
	query := ownerBookingSelect + ` WHERE i.owner_id = ? ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, ownerID)
}

func (db *DB) ListByOwnerCurrent(ctx context.Context, ownerID int64, now time.Time) ([]*models.Booking, error) {
	query := ownerBookingSelect + ` WHERE i.owner_id = ? AND b.start_date <= ? AND b.end_date > ?
              ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, ownerID, utc(now), utc(now))
}

func (db *DB) ListByOwnerPast(ctx context.Context, ownerID int64, now time.Time) ([]*models.Booking, error) {
	query := ownerBookingSelect + ` WHERE i.owner_id = ? AND b.end_date < ?
              ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, ownerID, utc(now))
}

func (db *DB) ListByOwnerFuture(ctx context.Context, ownerID int64, now time.Time) ([]*models.Booking, error) {
	query := ownerBookingSelect + ` WHERE i.owner_id = ? AND b.start_date > ?
              ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, ownerID, utc(now))
}

func (db *DB) ListByOwnerStatus(ctx context.Context, ownerID int64, status models.BookingStatus) ([]*models.Booking, error) {
	query := ownerBookingSelect + ` WHERE i.owner_id = ? AND b.status = ?
              ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, ownerID, status)
}

func (db *DB) ListBookingsByItemAndBooker(ctx context.Context, itemID, bookerID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE item_id = ? AND booker_id = ?
              ORDER BY end_date ASC`
	return db.queryBookings(ctx, query, itemID, bookerID)
}

// ListBookingsByDateRange — выборка для экспорта за период по дате начала.
func (db *DB) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE start_date >= ? AND start_date <= ?
              ORDER BY start_date ASC`
	return db.queryBookings(ctx, query, utc(start), utc(end))
}
