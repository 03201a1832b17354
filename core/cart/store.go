package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Upsert creates the user's cart on first interaction and refreshes its
// timestamp afterwards.
func Upsert(ctx context.Context, db sqlx.ExtContext, userID string) error {
	const q = `
	INSERT INTO carts
		(user_id, created_at, updated_at)
	VALUES
		($1, $2, $2)
	ON CONFLICT (user_id) DO UPDATE SET updated_at = $2`

	if _, err := db.ExecContext(ctx, q, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("upserting cart: %w", err)
	}

	return nil
}

// FetchItems returns the cart entries in insertion order. Checkout depends
// on that order being stable so failures are reproducible.
func FetchItems(ctx context.Context, db sqlx.ExtContext, userID string) ([]Item, error) {
	const q = `SELECT * FROM cart_items WHERE user_id = $1 ORDER BY created_at, art_id`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, userID); err != nil {
		return nil, fmt.Errorf("selecting cart items: %w", err)
	}

	return items, nil
}

// CreateItem inserts the entry unless it already exists. The returned flag
// is false for the duplicate case.
func CreateItem(ctx context.Context, db sqlx.ExtContext, item Item) (bool, error) {
	const q = `
	INSERT INTO cart_items
		(user_id, art_id, created_at)
	VALUES
		(:user_id, :art_id, :created_at)
	ON CONFLICT (user_id, art_id) DO NOTHING`

	res, err := sqlx.NamedExecContext(ctx, db, q, item)
	if err != nil {
		return false, fmt.Errorf("inserting cart item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}

	return n == 1, nil
}

func DeleteItem(ctx context.Context, db sqlx.ExtContext, userID string, artID string) (bool, error) {
	const q = `DELETE FROM cart_items WHERE user_id = $1 AND art_id = $2`

	res, err := db.ExecContext(ctx, q, userID, artID)
	if err != nil {
		return false, fmt.Errorf("deleting cart item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}

	return n == 1, nil
}

// Delete empties the cart. Clearing an already-empty cart is a no-op.
func Delete(ctx context.Context, db sqlx.ExtContext, userID string) error {
	const q = `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := db.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("deleting cart items: %w", err)
	}

	return nil
}
