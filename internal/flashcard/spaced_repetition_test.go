package flashcard_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/heptareview/internal/flashcard"
	"github.com/vytor/heptareview/internal/models"
)

func prior(interval int) *models.Review {
	return &models.Review{ID: 1, CardID: 1, Interval: interval, FamiliarityScore: 3}
}

func TestComputeNextReview_FirstReview(t *testing.T) {
	today := models.NewDate(2024, time.June, 1)
	want := map[flashcard.Rating]int{
		flashcard.VeryHard: 1,
		flashcard.Hard:     2,
		flashcard.Medium:   3,
		flashcard.Easy:     5,
		flashcard.VeryEasy: 7,
	}

	for rating, interval := range want {
		t.Run(rating.String(), func(t *testing.T) {
			s, err := flashcard.ComputeNextReview(today, rating, nil)
			require.NoError(t, err)
			assert.Equal(t, interval, s.Interval)
			assert.Equal(t, today.AddDays(interval), s.NextReviewDate)
		})
	}
}

func TestComputeNextReview_Growth(t *testing.T) {
	today := models.NewDate(2024, time.June, 1)
	tests := []struct {
		name   string
		rating flashcard.Rating
		prior  int
		want   int
	}{
		{"very hard resets", flashcard.VeryHard, 120, 1},
		{"hard halves", flashcard.Hard, 10, 5},
		{"hard rounds half up", flashcard.Hard, 5, 3},
		{"hard never below one", flashcard.Hard, 1, 1},
		{"medium", flashcard.Medium, 10, 12},
		{"easy", flashcard.Easy, 5, 9},
		{"very easy", flashcard.VeryEasy, 7, 23},
		{"very easy clamps", flashcard.VeryEasy, 200, 365},
		{"easy clamps at max", flashcard.Easy, 365, 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := flashcard.ComputeNextReview(today, tt.rating, prior(tt.prior))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Interval)
		})
	}
}

func TestComputeNextReview_VeryHardAlwaysOne(t *testing.T) {
	today := models.NewDate(2024, time.June, 1)
	for p := flashcard.MinInterval; p <= flashcard.MaxInterval; p++ {
		s, err := flashcard.ComputeNextReview(today, flashcard.VeryHard, prior(p))
		require.NoError(t, err)
		require.Equal(t, 1, s.Interval, "prior %d", p)
	}
}

func TestComputeNextReview_VeryEasyFormula(t *testing.T) {
	today := models.NewDate(2024, time.June, 1)
	for p := flashcard.MinInterval; p <= flashcard.MaxInterval; p++ {
		want := int(math.Round(float64(p) * 3.25))
		if want > 365 {
			want = 365
		}
		s, err := flashcard.ComputeNextReview(today, flashcard.VeryEasy, prior(p))
		require.NoError(t, err)
		require.Equal(t, want, s.Interval, "prior %d", p)
	}
}

func TestComputeNextReview_IntervalAlwaysInRange(t *testing.T) {
	today := models.NewDate(2024, time.June, 1)
	for r := flashcard.VeryHard; r <= flashcard.VeryEasy; r++ {
		for p := flashcard.MinInterval; p <= flashcard.MaxInterval; p++ {
			s, err := flashcard.ComputeNextReview(today, r, prior(p))
			require.NoError(t, err)
			require.GreaterOrEqual(t, s.Interval, flashcard.MinInterval)
			require.LessOrEqual(t, s.Interval, flashcard.MaxInterval)
			require.Equal(t, today.AddDays(s.Interval), s.NextReviewDate)
		}
	}
}

func TestComputeNextReview_CalendarBoundaries(t *testing.T) {
	s, err := flashcard.ComputeNextReview(models.NewDate(2024, time.January, 30), flashcard.Medium, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Interval)
	assert.Equal(t, models.NewDate(2024, time.February, 2), s.NextReviewDate)

	s, err = flashcard.ComputeNextReview(models.NewDate(2024, time.February, 28), flashcard.Hard, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Interval)
	assert.Equal(t, models.NewDate(2024, time.March, 1), s.NextReviewDate)
}

func TestComputeNextReview_InvalidInput(t *testing.T) {
	today := models.NewDate(2024, time.June, 1)

	for _, r := range []flashcard.Rating{0, 6, -1} {
		_, err := flashcard.ComputeNextReview(today, r, nil)
		assert.ErrorIs(t, err, flashcard.ErrInvalidRating)
		_, err = flashcard.ComputeNextReview(today, r, prior(4))
		assert.ErrorIs(t, err, flashcard.ErrInvalidRating)
	}

	_, err := flashcard.ComputeNextReview(today, flashcard.Easy, prior(0))
	assert.ErrorIs(t, err, flashcard.ErrInvalidInterval)
}

func TestRating_String(t *testing.T) {
	assert.Equal(t, "Medium", flashcard.Medium.String())
	assert.Equal(t, "Rating(9)", flashcard.Rating(9).String())
	assert.True(t, flashcard.Easy.IsValid())
	assert.False(t, flashcard.Rating(0).IsValid())
}
