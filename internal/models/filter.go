package models

import (
	"fmt"
	"strings"
)

// BookingFilter — фильтр выборки бронирований для списков арендатора и владельца.
// Временные варианты (CURRENT/PAST/FUTURE) вычисляются относительно "сейчас"
// в момент запроса, статусные — по полю status.
type BookingFilter string

const (
	FilterAll      BookingFilter = "ALL"
	FilterCurrent  BookingFilter = "CURRENT"
	FilterPast     BookingFilter = "PAST"
	FilterFuture   BookingFilter = "FUTURE"
	FilterWaiting  BookingFilter = "WAITING"
	FilterRejected BookingFilter = "REJECTED"
	FilterApproved BookingFilter = "APPROVED"
)

// ParseBookingFilter разбирает значение query-параметра state.
// Пустая строка трактуется как ALL.
func ParseBookingFilter(raw string) (BookingFilter, error) {
	switch f := BookingFilter(strings.ToUpper(strings.TrimSpace(raw))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected, FilterApproved:
		return f, nil
	default:
		return "", fmt.Errorf("unknown booking filter: %q", raw)
	}
}
