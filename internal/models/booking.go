package models

import "time"

// Booking — одна заявка на аренду предмета на интервал дат.
// Статус меняется ровно один раз: WAITING -> APPROVED или WAITING -> REJECTED.
type Booking struct {
	ID        int64         `json:"id"`
	ItemID    int64         `json:"item_id"`
	BookerID  int64         `json:"booker_id"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// Terminal сообщает, допускает ли статус дальнейшие переходы.
func (s BookingStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}
