package services

import (
	"context"

	"github.com/vytor/heptareview/internal/errors"
	"github.com/vytor/heptareview/internal/flashcard"
	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

// StatsService handles dashboard statistics
type StatsService interface {
	GetStats(ctx context.Context) (*models.CardStats, error)
	GetSubjectDistribution(ctx context.Context) ([]models.SubjectCount, error)
	GetFamiliarityDistribution(ctx context.Context) ([]models.FamiliarityCount, error)
}

type statsService struct {
	cardRepo    repository.CardRepository
	reviewRepo  repository.ReviewRepository
	subjectRepo repository.SubjectRepository
	today       TodayFunc
}

// NewStatsService creates a new StatsService
func NewStatsService(cardRepo repository.CardRepository, reviewRepo repository.ReviewRepository, subjectRepo repository.SubjectRepository, today TodayFunc) StatsService {
	return &statsService{cardRepo: cardRepo, reviewRepo: reviewRepo, subjectRepo: subjectRepo, today: today}
}

func (s *statsService) GetStats(ctx context.Context) (*models.CardStats, error) {
	log := logger.FromContext(ctx)
	today := s.today()
	log.Debug("computing stats for %s", today)

	cards, err := s.cardRepo.List(ctx, models.CardFilter{})
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	reviews, err := s.reviewRepo.ListOnDate(ctx, today)
	if err != nil {
		log.Error("failed to list today's reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats := flashcard.ComputeStats(today, cards, reviews)
	return &stats, nil
}

func (s *statsService) GetSubjectDistribution(ctx context.Context) ([]models.SubjectCount, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing subject distribution")

	subjects, err := s.subjectRepo.List(ctx)
	if err != nil {
		log.Error("failed to list subjects: %v", err)
		return nil, errors.NewInternalError(err)
	}
	cards, err := s.cardRepo.List(ctx, models.CardFilter{})
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return flashcard.SubjectDistribution(subjects, cards), nil
}

func (s *statsService) GetFamiliarityDistribution(ctx context.Context) ([]models.FamiliarityCount, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing familiarity distribution")

	cards, err := s.cardRepo.List(ctx, models.CardFilter{})
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return flashcard.FamiliarityDistribution(cards), nil
}
