package models

import "time"

// ItemRequest — запрос пользователя на предмет, которого нет в каталоге.
// Владельцы отвечают на запрос, создавая предмет со ссылкой на него.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	Created     time.Time `json:"created"`
}

// ItemRequestWithItems — запрос вместе с предметами, созданными в ответ.
type ItemRequestWithItems struct {
	ItemRequest
	Items []*Item `json:"items"`
}
