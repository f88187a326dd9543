package models

import "time"

// Comment создается только после проверки, что автор действительно
// арендовал предмет и аренда завершилась.
type Comment struct {
	ID       int64     `json:"id"`
	ItemID   int64     `json:"item_id"`
	AuthorID int64     `json:"author_id"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}
