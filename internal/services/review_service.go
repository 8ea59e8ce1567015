package services

import (
	"context"

	"github.com/vytor/heptareview/internal/errors"
	"github.com/vytor/heptareview/internal/flashcard"
	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

// ReviewService records reviews and answers which cards are due.
type ReviewService interface {
	SubmitReview(ctx context.Context, submission models.ReviewSubmission) (*models.Review, error)
	DueToday(ctx context.Context) ([]models.CardWithReview, error)
}

type reviewService struct {
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
	today      TodayFunc
}

// NewReviewService creates a new ReviewService
func NewReviewService(cardRepo repository.CardRepository, reviewRepo repository.ReviewRepository, today TodayFunc) ReviewService {
	return &reviewService{cardRepo: cardRepo, reviewRepo: reviewRepo, today: today}
}

func (s *reviewService) SubmitReview(ctx context.Context, sub models.ReviewSubmission) (*models.Review, error) {
	log := logger.FromContext(ctx).WithField("card_id", sub.CardID)

	rating := flashcard.Rating(sub.FamiliarityScore)
	if !rating.IsValid() {
		return nil, errors.NewValidationError("familiarityScore", "must be between 1 and 5")
	}
	if sub.ReviewTimeMinutes != nil && *sub.ReviewTimeMinutes < 0 {
		return nil, errors.NewValidationError("reviewTimeMinutes", "must not be negative")
	}

	today := s.today()
	log.Debug("submitting review: rating=%s, date=%s", rating, today)

	review, err := s.reviewRepo.Append(ctx, sub.CardID, func(last *models.Review) (models.Review, error) {
		schedule, err := flashcard.ComputeNextReview(today, rating, last)
		if err != nil {
			return models.Review{}, err
		}
		return models.Review{
			CardID:            sub.CardID,
			ReviewDate:        today,
			FamiliarityScore:  int(rating),
			Interval:          schedule.Interval,
			NextReviewDate:    schedule.NextReviewDate,
			ReviewTimeMinutes: sub.ReviewTimeMinutes,
			ReviewNotes:       sub.ReviewNotes,
		}, nil
	})
	if err != nil {
		log.Error("failed to record review: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if review == nil {
		return nil, errors.NewNotFoundError("card", sub.CardID)
	}

	log.Info("review recorded: id=%d, interval=%d, next=%s", review.ID, review.Interval, review.NextReviewDate)
	return review, nil
}

func (s *reviewService) DueToday(ctx context.Context) ([]models.CardWithReview, error) {
	log := logger.FromContext(ctx)
	today := s.today()
	log.Debug("selecting cards due on %s", today)

	cards, err := s.cardRepo.List(ctx, models.CardFilter{})
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	due := flashcard.SelectDue(today, cards)
	log.Debug("%d of %d cards due", len(due), len(cards))
	return due, nil
}
