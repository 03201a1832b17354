package review

import "time"

type Review struct {
	ID         string    `json:"id" db:"review_id"`
	ReviewerID string    `json:"reviewerId" db:"reviewer_id"`
	ReviewedID string    `json:"reviewedId" db:"reviewed_id"`
	Rating     int       `json:"rating" db:"rating"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type ReviewNew struct {
	ReviewedID string `json:"reviewedId" validate:"required"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// Summary aggregates the reviews left about one user.
type Summary struct {
	Reviews []Review `json:"reviews"`
	Average float64  `json:"average"`
}
