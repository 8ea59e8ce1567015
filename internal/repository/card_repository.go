package repository

import (
	"context"

	"github.com/vytor/heptareview/internal/models"
)

// CardRepository handles card data access. Reads attach each card's most
// recent review, ordered by review date then id.
type CardRepository interface {
	List(ctx context.Context, filter models.CardFilter) ([]models.CardWithReview, error)
	Count(ctx context.Context, filter models.CardFilter) (int, error)
	Get(ctx context.Context, id int64) (*models.CardWithReview, error)
	Insert(ctx context.Context, card models.Card) (int64, error)
	Update(ctx context.Context, id int64, update models.CardUpdate) (*models.Card, error)
	// Delete removes the card and all of its reviews. It reports whether the
	// card existed.
	Delete(ctx context.Context, id int64) (bool, error)
}
