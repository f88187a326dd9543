package domain

import "errors"

// Ошибки уровня домена. Транспортный слой отображает их в коды ответа,
// сервисы и хранилище возвращают их через errors.Is-совместимые цепочки.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("item request not found")

	// ErrInvalidBookingDate — даты бронирования равны или перепутаны (start >= end).
	ErrInvalidBookingDate = errors.New("invalid booking dates")

	// ErrItemUnavailable — предмет помечен владельцем как недоступный.
	ErrItemUnavailable = errors.New("item is not available for booking")

	// ErrInvalidStatusTransition — попытка подтвердить заявку не в статусе WAITING.
	ErrInvalidStatusTransition = errors.New("booking status does not allow approval")

	// ErrUnauthorizedApproval — заявка не найдена среди заявок на предметы
	// данного владельца. Чужая заявка и несуществующая неразличимы намеренно.
	ErrUnauthorizedApproval = errors.New("booking not found for this owner")

	// ErrUnauthorizedGetBookings — у пользователя нет ни одной заявки,
	// фильтрованные выборки для него запрещены.
	ErrUnauthorizedGetBookings = errors.New("user has no bookings")

	// ErrCommentNotAuthorized — аренда не подтверждена или еще не завершена.
	ErrCommentNotAuthorized = errors.New("booking is either not approved or not yet completed")

	// ErrOwnItemRequest — попытка ответить предметом на собственный запрос.
	ErrOwnItemRequest = errors.New("cannot create an item for own request")

	ErrEmailExists = errors.New("email already in use")
)
