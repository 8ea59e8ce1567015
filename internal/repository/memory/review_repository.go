package memory

import (
	"context"

	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

type reviewRepository struct {
	store *Store
}

// NewReviewRepository creates a ReviewRepository backed by store.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{store: store}
}

func (r *reviewRepository) ListForCard(ctx context.Context, cardID int64) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews: card_id=%d", cardID)

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := append([]models.Review{}, s.reviews[cardID]...)
	newestFirst(reviews)
	return reviews, nil
}

func (r *reviewRepository) ListOnDate(ctx context.Context, day models.Date) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews on %s", day)

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := []models.Review{}
	for _, list := range s.reviews {
		for _, rv := range list {
			if rv.ReviewDate == day {
				reviews = append(reviews, rv)
			}
		}
	}
	newestFirst(reviews)
	return reviews, nil
}

func (r *reviewRepository) Append(ctx context.Context, cardID int64, build repository.BuildReviewFunc) (*models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("appending review: card_id=%d", cardID)

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[cardID]; !ok {
		log.Debug("card not found: id=%d", cardID)
		return nil, nil
	}
	review, err := build(s.lastReview(cardID))
	if err != nil {
		log.Error("failed to build review: %v", err)
		return nil, err
	}
	s.nextReviewID++
	review.ID = s.nextReviewID
	review.CardID = cardID
	s.reviews[cardID] = append(s.reviews[cardID], review)
	log.Debug("review appended: id=%d, interval=%d, next=%s", review.ID, review.Interval, review.NextReviewDate)
	return &review, nil
}
