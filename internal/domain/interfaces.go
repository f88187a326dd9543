package domain

import (
	"context"
	"time"

	"rentshare/internal/models"
)

// Clock отдает текущее время. Временная классификация бронирований
// зависит от "сейчас", поэтому время инжектируется, а не берется напрямую.
type Clock interface {
	Now() time.Time
}

// Repository — долговременное хранилище бронирований, предметов,
// пользователей и комментариев.
type Repository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	// GetBookingForOwner возвращает заявку только если предмет принадлежит owner.
	GetBookingForOwner(ctx context.Context, bookingID, ownerID int64) (*models.Booking, error)
	// SetBookingStatus переводит заявку из WAITING в новый статус.
	// Возвращает false, если заявка уже не в WAITING.
	SetBookingStatus(ctx context.Context, id int64, status models.BookingStatus) (bool, error)
	CountBookingsByBooker(ctx context.Context, bookerID int64) (int, error)
	CountBookingsByOwner(ctx context.Context, ownerID int64) (int, error)

	ListByBooker(ctx context.Context, bookerID int64) ([]*models.Booking, error)
	ListByBookerCurrent(ctx context.Context, bookerID int64, now time.Time) ([]*models.Booking, error)
	ListByBookerPast(ctx context.Context, bookerID int64, now time.Time) ([]*models.Booking, error)
	ListByBookerFuture(ctx context.Context, bookerID int64, now time.Time) ([]*models.Booking, error)
	ListByBookerStatus(ctx context.Context, bookerID int64, status models.BookingStatus) ([]*models.Booking, error)

	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Booking, error)
	ListByOwnerCurrent(ctx context.Context, ownerID int64, now time.Time) ([]*models.Booking, error)
	ListByOwnerPast(ctx context.Context, ownerID int64, now time.Time) ([]*models.Booking, error)
	ListByOwnerFuture(ctx context.Context, ownerID int64, now time.Time) ([]*models.Booking, error)
	ListByOwnerStatus(ctx context.Context, ownerID int64, status models.BookingStatus) ([]*models.Booking, error)

	// ListBookingsByItemAndBooker — все заявки автора на предмет,
	// для проверки права на комментарий.
	ListBookingsByItemAndBooker(ctx context.Context, itemID, bookerID int64) ([]*models.Booking, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	GetItemForOwner(ctx context.Context, itemID, ownerID int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	ListItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string) ([]*models.Item, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	UserExists(ctx context.Context, id int64) (bool, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	ListRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)
	ListAllRequests(ctx context.Context) ([]*models.ItemRequest, error)
	// ListItemsByRequest — предметы, созданные в ответ на запрос.
	ListItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)

	ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error)
}

// RateLimitRepository хранит счетчики частоты запросов по пользователям.
type RateLimitRepository interface {
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type BookingService interface {
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error)
	Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (*models.Booking, error)
	GetByID(ctx context.Context, bookingID, requesterID int64) (*models.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, filter models.BookingFilter) ([]*models.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, filter models.BookingFilter) ([]*models.Booking, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error)
}

type ItemService interface {
	Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	GetByID(ctx context.Context, itemID int64) (*models.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	Search(ctx context.Context, text string) ([]*models.Item, error)
}

type UserService interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type RequestService interface {
	Create(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error)
	// ListOwn возвращает запросы пользователя вместе с ответами на них.
	ListOwn(ctx context.Context, requesterID int64) ([]*models.ItemRequestWithItems, error)
	ListAll(ctx context.Context) ([]*models.ItemRequest, error)
	GetByID(ctx context.Context, requestID int64) (*models.ItemRequestWithItems, error)
}

type CommentService interface {
	Create(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error)
	ListByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)
}
