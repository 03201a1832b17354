package review

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Upsert writes the reviewer's rating of a user, replacing an earlier one.
// One review per (reviewer, reviewed) pair.
func Upsert(ctx context.Context, db sqlx.ExtContext, rev Review) error {
	const q = `
	INSERT INTO reviews
		(review_id, reviewer_id, reviewed_id, rating, created_at)
	VALUES
		(:review_id, :reviewer_id, :reviewed_id, :rating, :created_at)
	ON CONFLICT (reviewer_id, reviewed_id) DO UPDATE SET
		rating = EXCLUDED.rating,
		created_at = EXCLUDED.created_at`

	if _, err := sqlx.NamedExecContext(ctx, db, q, rev); err != nil {
		return fmt.Errorf("upserting review: %w", err)
	}

	return nil
}

func FetchByReviewed(ctx context.Context, db sqlx.ExtContext, reviewedID string) ([]Review, error) {
	const q = `SELECT * FROM reviews WHERE reviewed_id = $1 ORDER BY created_at DESC`

	revs := []Review{}
	if err := sqlx.SelectContext(ctx, db, &revs, q, reviewedID); err != nil {
		return nil, fmt.Errorf("selecting reviews of user[%s]: %w", reviewedID, err)
	}

	return revs, nil
}
