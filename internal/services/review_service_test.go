package services_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/heptareview/internal/errors"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
	"github.com/vytor/heptareview/internal/repository/memory"
	"github.com/vytor/heptareview/internal/services"
	"github.com/vytor/heptareview/internal/testutil/mocks"
)

var june1 = models.NewDate(2024, time.June, 1)

func intPtr(v int) *int { return &v }

func TestSubmitReview_ComputesScheduleFromLastReview(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	reviews := new(mocks.MockReviewRepository)
	svc := services.NewReviewService(cards, reviews, services.FixedDay(june1))

	last := &models.Review{ID: 3, CardID: 7, Interval: 10, ReviewDate: june1.AddDays(-10)}
	var built models.Review
	reviews.On("Append", mock.Anything, int64(7), mock.Anything).
		Run(func(args mock.Arguments) {
			build := args.Get(2).(repository.BuildReviewFunc)
			var err error
			built, err = build(last)
			require.NoError(t, err)
			built.ID = 4
		}).
		Return(&built, nil)

	got, err := svc.SubmitReview(context.Background(), models.ReviewSubmission{
		CardID:            7,
		FamiliarityScore:  3,
		ReviewTimeMinutes: intPtr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), got.ID)
	assert.Equal(t, int64(7), got.CardID)
	assert.Equal(t, june1, got.ReviewDate)
	assert.Equal(t, 3, got.FamiliarityScore)
	assert.Equal(t, 12, got.Interval)
	assert.Equal(t, models.NewDate(2024, time.June, 13), got.NextReviewDate)
	assert.Equal(t, 5, *got.ReviewTimeMinutes)
	reviews.AssertExpectations(t)
}

func TestSubmitReview_InvalidRating(t *testing.T) {
	reviews := new(mocks.MockReviewRepository)
	svc := services.NewReviewService(new(mocks.MockCardRepository), reviews, services.FixedDay(june1))

	for _, score := range []int{0, 6, -3} {
		_, err := svc.SubmitReview(context.Background(), models.ReviewSubmission{CardID: 1, FamiliarityScore: score})
		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, 400, appErr.Status)
	}
	reviews.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitReview_NegativeMinutes(t *testing.T) {
	svc := services.NewReviewService(new(mocks.MockCardRepository), new(mocks.MockReviewRepository), services.FixedDay(june1))

	_, err := svc.SubmitReview(context.Background(), models.ReviewSubmission{CardID: 1, FamiliarityScore: 3, ReviewTimeMinutes: intPtr(-1)})
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestSubmitReview_CardNotFound(t *testing.T) {
	reviews := new(mocks.MockReviewRepository)
	reviews.On("Append", mock.Anything, int64(99), mock.Anything).Return(nil, nil)
	svc := services.NewReviewService(new(mocks.MockCardRepository), reviews, services.FixedDay(june1))

	_, err := svc.SubmitReview(context.Background(), models.ReviewSubmission{CardID: 99, FamiliarityScore: 4})
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestSubmitReview_RepositoryError(t *testing.T) {
	reviews := new(mocks.MockReviewRepository)
	reviews.On("Append", mock.Anything, int64(1), mock.Anything).Return(nil, stderrors.New("disk full"))
	svc := services.NewReviewService(new(mocks.MockCardRepository), reviews, services.FixedDay(june1))

	_, err := svc.SubmitReview(context.Background(), models.ReviewSubmission{CardID: 1, FamiliarityScore: 4})
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInternal, appErr.Code)
	assert.Equal(t, 500, appErr.Status)
}

func TestDueToday_FiltersCards(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	cards.On("List", mock.Anything, models.CardFilter{}).Return([]models.CardWithReview{
		{Card: models.Card{ID: 1}},
		{Card: models.Card{ID: 2}, LastReview: &models.Review{NextReviewDate: june1.AddDays(1)}},
		{Card: models.Card{ID: 3}, LastReview: &models.Review{NextReviewDate: june1}},
	}, nil)
	svc := services.NewReviewService(cards, new(mocks.MockReviewRepository), services.FixedDay(june1))

	due, err := svc.DueToday(context.Background())
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, int64(1), due[0].ID)
	assert.Equal(t, int64(3), due[1].ID)
}

func TestReviewFlow_FirstReviewThenDue(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cardRepo := memory.NewCardRepository(store)
	reviewRepo := memory.NewReviewRepository(store)

	cardSvc := services.NewCardService(cardRepo, reviewRepo)
	card, err := cardSvc.CreateCard(ctx, models.Card{Name: "Deadlock", Subject: "Operating Systems"})
	require.NoError(t, err)

	day := june1
	reviewSvc := services.NewReviewService(cardRepo, reviewRepo, func() models.Date { return day })

	review, err := reviewSvc.SubmitReview(ctx, models.ReviewSubmission{CardID: card.ID, FamiliarityScore: 4})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Interval)
	assert.Equal(t, models.NewDate(2024, time.June, 6), review.NextReviewDate)

	day = models.NewDate(2024, time.June, 5)
	due, err := reviewSvc.DueToday(ctx)
	require.NoError(t, err)
	assert.Empty(t, due)

	day = models.NewDate(2024, time.June, 6)
	due, err = reviewSvc.DueToday(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, card.ID, due[0].ID)

	// A second review grows from the stored interval: round(5 * 1.8) = 9.
	review, err = reviewSvc.SubmitReview(ctx, models.ReviewSubmission{CardID: card.ID, FamiliarityScore: 4})
	require.NoError(t, err)
	assert.Equal(t, 9, review.Interval)
	assert.Equal(t, models.NewDate(2024, time.June, 15), review.NextReviewDate)
}
