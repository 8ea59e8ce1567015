package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ListForCard(ctx context.Context, cardID int64) ([]models.Review, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListOnDate(ctx context.Context, day models.Date) ([]models.Review, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

// Append records the call. Tests that need the build function can read it
// from args.Get(2) in a Run callback.
func (m *MockReviewRepository) Append(ctx context.Context, cardID int64, build repository.BuildReviewFunc) (*models.Review, error) {
	args := m.Called(ctx, cardID, build)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}
