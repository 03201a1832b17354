package artpiece

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func Create(ctx context.Context, db sqlx.ExtContext, ap ArtPiece) error {
	const q = `
	INSERT INTO art_pieces
		(art_id, user_id, location_id, type_of_art, name, description, image_url, stock_amount, price, created_at, updated_at)
	VALUES
		(:art_id, :user_id, :location_id, :type_of_art, :name, :description, :image_url, :stock_amount, :price, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, ap); err != nil {
		return fmt.Errorf("inserting art piece: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (ArtPiece, error) {
	const q = `SELECT * FROM art_pieces WHERE art_id = $1`

	var ap ArtPiece
	if err := sqlx.GetContext(ctx, db, &ap, q, id); err != nil {
		return ArtPiece{}, fmt.Errorf("selecting art piece[%s]: %w", id, err)
	}

	return ap, nil
}

func FetchAll(ctx context.Context, db sqlx.ExtContext, filter Filter) ([]ArtPiece, error) {
	q := `SELECT * FROM art_pieces`

	var clauses []string
	var args []interface{}

	if len(filter.Types) > 0 {
		args = append(args, pq.Array(filter.Types))
		clauses = append(clauses, fmt.Sprintf("type_of_art = ANY($%d)", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d OR type_of_art ILIKE $%d)", n, n, n))
	}

	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY created_at DESC"

	aps := []ArtPiece{}
	if err := sqlx.SelectContext(ctx, db, &aps, q, args...); err != nil {
		return nil, fmt.Errorf("selecting art pieces: %w", err)
	}

	return aps, nil
}

func FetchBySeller(ctx context.Context, db sqlx.ExtContext, sellerID string) ([]ArtPiece, error) {
	const q = `SELECT * FROM art_pieces WHERE user_id = $1 ORDER BY created_at DESC`

	aps := []ArtPiece{}
	if err := sqlx.SelectContext(ctx, db, &aps, q, sellerID); err != nil {
		return nil, fmt.Errorf("selecting art pieces of seller[%s]: %w", sellerID, err)
	}

	return aps, nil
}

// SetImageURL attaches the uploaded image to an existing listing. It runs as
// a best-effort follow-up, never in the creation transaction.
func SetImageURL(ctx context.Context, db sqlx.ExtContext, id string, url string) error {
	const q = `
	UPDATE art_pieces SET
		image_url = $2,
		updated_at = $3,
		version = version + 1
	WHERE art_id = $1`

	if _, err := db.ExecContext(ctx, q, id, url, time.Now().UTC()); err != nil {
		return fmt.Errorf("updating image of art piece[%s]: %w", id, err)
	}

	return nil
}

// DecrementStock takes one unit off the shelf only while stock remains.
// Returning false means the piece was already sold out: the conditional
// WHERE closes the check-then-act race between concurrent checkouts.
func DecrementStock(ctx context.Context, db sqlx.ExtContext, id string) (bool, error) {
	const q = `
	UPDATE art_pieces SET
		stock_amount = stock_amount - 1,
		updated_at = $2,
		version = version + 1
	WHERE art_id = $1 AND stock_amount > 0`

	res, err := db.ExecContext(ctx, q, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("decrementing stock of art piece[%s]: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}

	return n == 1, nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM art_pieces WHERE art_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting art piece[%s]: %w", id, err)
	}

	return nil
}
