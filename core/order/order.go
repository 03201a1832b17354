package order

import (
	"time"

	"github.com/irsalhamdi/art-market/core/artpiece"
	"github.com/shopspring/decimal"
)

// Order is the immutable record of a completed checkout. It is only ever
// written inside the checkout transaction and never updated afterwards.
type Order struct {
	ID        string    `json:"id" db:"order_id"`
	BuyerID   string    `json:"buyerId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Item links an order to one purchased piece. Price is a snapshot taken at
// purchase time: editing the listing later must not rewrite order history.
type Item struct {
	OrderID   string          `json:"orderId" db:"order_id"`
	ArtID     string          `json:"artId" db:"art_id"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// Placed is the checkout response: the new order with its lines.
type Placed struct {
	Order
	Items []Item `json:"items"`
}

// ItemDetails decorates an order line with the listing it refers to.
type ItemDetails struct {
	Item
	Art artpiece.ArtPiece `json:"art"`
}

// History is one purchase-history entry.
type History struct {
	Order
	Items []ItemDetails `json:"items"`
}
