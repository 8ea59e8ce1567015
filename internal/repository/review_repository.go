package repository

import (
	"context"

	"github.com/vytor/heptareview/internal/models"
)

// BuildReviewFunc derives the review to store from the card's current most
// recent review, which is nil for a card that was never reviewed.
type BuildReviewFunc func(last *models.Review) (models.Review, error)

// ReviewRepository handles review data access. Reviews are append-only.
type ReviewRepository interface {
	// ListForCard returns the card's reviews, newest first.
	ListForCard(ctx context.Context, cardID int64) ([]models.Review, error)
	ListOnDate(ctx context.Context, day models.Date) ([]models.Review, error)
	// Append reads the card's last review, calls build and stores the result
	// without another review for the same card landing in between. It returns
	// nil, nil when the card does not exist.
	Append(ctx context.Context, cardID int64, build BuildReviewFunc) (*models.Review, error)
}
