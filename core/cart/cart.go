package cart

import (
	"time"

	"github.com/irsalhamdi/art-market/core/artpiece"
)

type Cart struct {
	UserID    string    `json:"-" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Items     []Item    `json:"items" db:"-"`
}

// Item is a pending purchase intent for one unit of a piece. Nothing is
// reserved: stock is only checked for real at checkout.
type Item struct {
	UserID    string    `json:"-" db:"user_id"`
	ArtID     string    `json:"artId" db:"art_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type ItemNew struct {
	ArtID string `json:"artId" validate:"required"`
}

// ItemDetails decorates an item with the listing it points at.
type ItemDetails struct {
	Item
	Art artpiece.ArtPiece `json:"art"`
}
