package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/heptareview/internal/errors"
	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

// CardService handles card-related business logic
type CardService interface {
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.CardWithReview, error)
	// CountCards counts the cards matching filter, ignoring Limit and Offset.
	CountCards(ctx context.Context, filter models.CardFilter) (int, error)
	GetCard(ctx context.Context, id int64) (*models.CardWithReview, error)
	CreateCard(ctx context.Context, card models.Card) (*models.Card, error)
	UpdateCard(ctx context.Context, id int64, update models.CardUpdate) (*models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
	ListReviews(ctx context.Context, cardID int64) ([]models.Review, error)
}

type cardService struct {
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
	now        func() time.Time
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, reviewRepo repository.ReviewRepository) CardService {
	return &cardService{cardRepo: cardRepo, reviewRepo: reviewRepo, now: time.Now}
}

func (s *cardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.CardWithReview, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: subject=%q, search=%q", filter.Subject, filter.Search)

	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, errors.NewBadRequestError("limit and offset must not be negative")
	}

	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) CountCards(ctx context.Context, filter models.CardFilter) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("counting cards: subject=%q, search=%q", filter.Subject, filter.Search)

	filter.Limit, filter.Offset = 0, 0
	n, err := s.cardRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count cards: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}

func (s *cardService) GetCard(ctx context.Context, id int64) (*models.CardWithReview, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting card: id=%d", id)

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *cardService) CreateCard(ctx context.Context, card models.Card) (*models.Card, error) {
	log := logger.FromContext(ctx)

	card.Name = strings.TrimSpace(card.Name)
	card.Subject = strings.TrimSpace(card.Subject)
	if card.Name == "" {
		return nil, errors.NewValidationError("cardName", "cannot be empty")
	}
	if card.Subject == "" {
		return nil, errors.NewValidationError("subject", "cannot be empty")
	}
	log.Debug("creating card: name=%q, subject=%q", card.Name, card.Subject)

	card.ID = 0
	card.CreatedAt = s.now()
	id, err := s.cardRepo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	card.ID = id

	log.Info("card created: id=%d", id)
	return &card, nil
}

func (s *cardService) UpdateCard(ctx context.Context, id int64, update models.CardUpdate) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%d", id)

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, errors.NewValidationError("cardName", "cannot be empty")
		}
		update.Name = &name
	}
	if update.Subject != nil {
		subject := strings.TrimSpace(*update.Subject)
		if subject == "" {
			return nil, errors.NewValidationError("subject", "cannot be empty")
		}
		update.Subject = &subject
	}

	card, err := s.cardRepo.Update(ctx, id, update)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d", id)

	deleted, err := s.cardRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("card", id)
	}
	log.Info("card deleted: id=%d", id)
	return nil
}

func (s *cardService) ListReviews(ctx context.Context, cardID int64) ([]models.Review, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing reviews: card_id=%d", cardID)

	if _, err := s.GetCard(ctx, cardID); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListForCard(ctx, cardID)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return reviews, nil
}
