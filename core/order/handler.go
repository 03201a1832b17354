package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/art-market/api/web"
	"github.com/irsalhamdi/art-market/api/weberr"
	"github.com/irsalhamdi/art-market/core/artpiece"
	"github.com/irsalhamdi/art-market/core/cart"
	"github.com/irsalhamdi/art-market/core/claims"
	"github.com/irsalhamdi/art-market/database"
	"github.com/irsalhamdi/art-market/validate"
	"github.com/jmoiron/sqlx"
)

// place converts the buyer's cart into a purchase order. Everything happens
// inside one transaction: either every cart entry becomes an order line with
// its stock decremented and the cart emptied, or nothing is persisted at all.
//
// Entries are processed in insertion order, so a failing checkout always
// fails on the same entry on retry.
func place(ctx context.Context, db *sqlx.DB, buyerID string) (Placed, error) {
	var placed Placed

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		items, err := cart.FetchItems(ctx, tx, buyerID)
		if err != nil {
			return fmt.Errorf("fetching cart items: %w", err)
		}

		if len(items) == 0 {
			return ErrEmptyCart
		}

		now := time.Now().UTC()
		ord := Order{
			ID:        validate.GenerateID(),
			BuyerID:   buyerID,
			CreatedAt: now,
		}

		if err := Create(ctx, tx, ord); err != nil {
			return fmt.Errorf("creating order: %w", err)
		}

		lines := make([]Item, 0, len(items))
		for _, it := range items {
			ap, err := artpiece.Fetch(ctx, tx, it.ArtID)
			if err != nil {
				return fmt.Errorf("fetching art piece[%s]: %w", it.ArtID, err)
			}

			if ap.SellerID == buyerID {
				return &SelfPurchaseError{Name: ap.Name}
			}

			// Conditional decrement: the WHERE clause rejects sold-out
			// pieces, so two concurrent checkouts cannot both take the
			// last unit.
			sold, err := artpiece.DecrementStock(ctx, tx, it.ArtID)
			if err != nil {
				return fmt.Errorf("decrementing stock of art piece[%s]: %w", it.ArtID, err)
			}
			if !sold {
				return &OutOfStockError{Name: ap.Name}
			}

			line := Item{
				OrderID:   ord.ID,
				ArtID:     it.ArtID,
				Price:     ap.Price,
				CreatedAt: now,
			}

			if err := CreateItem(ctx, tx, line); err != nil {
				return fmt.Errorf("creating order item: %w", err)
			}

			lines = append(lines, line)
		}

		if err := cart.Delete(ctx, tx, buyerID); err != nil {
			return fmt.Errorf("flushing cart: %w", err)
		}

		placed = Placed{Order: ord, Items: lines}
		return nil
	})

	if err != nil {
		return Placed{}, err
	}

	return placed, nil
}

func HandleCheckout(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		placed, err := place(ctx, db, clm.UserID)
		if err != nil {
			var selfErr *SelfPurchaseError
			var stockErr *OutOfStockError
			if errors.Is(err, ErrEmptyCart) || errors.As(err, &selfErr) || errors.As(err, &stockErr) {
				return weberr.NewError(err, err.Error(), http.StatusBadRequest)
			}
			return fmt.Errorf("placing order for user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, placed, http.StatusCreated)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		ords, err := FetchByBuyer(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching orders of user[%s]: %w", clm.UserID, err)
		}

		history := make([]History, 0, len(ords))
		for _, ord := range ords {
			items, err := FetchItems(ctx, db, ord.ID)
			if err != nil {
				return fmt.Errorf("fetching items of order[%s]: %w", ord.ID, err)
			}

			details := make([]ItemDetails, 0, len(items))
			for _, it := range items {
				ap, err := artpiece.Fetch(ctx, db, it.ArtID)
				if err != nil {
					return fmt.Errorf("fetching art piece[%s]: %w", it.ArtID, err)
				}
				details = append(details, ItemDetails{Item: it, Art: ap})
			}

			history = append(history, History{Order: ord, Items: details})
		}

		return web.Respond(ctx, w, history, http.StatusOK)
	}
}
