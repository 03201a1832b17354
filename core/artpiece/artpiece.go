package artpiece

import (
	"time"

	"github.com/shopspring/decimal"
)

type ArtPiece struct {
	ID          string          `json:"id" db:"art_id"`
	SellerID    string          `json:"sellerId" db:"user_id"`
	LocationID  string          `json:"-" db:"location_id"`
	TypeOfArt   string          `json:"typeOfArt" db:"type_of_art"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	ImageURL    string          `json:"imageUrl" db:"image_url"`
	Stock       int             `json:"stockAmount" db:"stock_amount"`
	Price       decimal.Decimal `json:"price" db:"price"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
	Version     int             `json:"-" db:"version"`
}

// ArtPieceNew carries the multipart form fields of a new listing. The image
// travels separately as a file part.
type ArtPieceNew struct {
	TypeOfArt   string `validate:"required,max=255"`
	Name        string `validate:"required,max=255"`
	Description string `validate:"max=2000"`
	Stock       int    `validate:"gte=0"`
	County      string `validate:"required,max=45"`
	State       string `validate:"required,max=45"`
}

// Filter narrows listing queries. Zero values mean "everything".
type Filter struct {
	Types  []string
	Search string
}
