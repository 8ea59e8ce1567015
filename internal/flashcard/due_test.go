package flashcard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/heptareview/internal/flashcard"
	"github.com/vytor/heptareview/internal/models"
)

func card(id int64, subject string, last *models.Review) models.CardWithReview {
	return models.CardWithReview{
		Card:       models.Card{ID: id, Name: "card", Subject: subject},
		LastReview: last,
	}
}

func reviewed(id, cardID int64, on models.Date, score, interval int) *models.Review {
	return &models.Review{
		ID:               id,
		CardID:           cardID,
		ReviewDate:       on,
		FamiliarityScore: score,
		Interval:         interval,
		NextReviewDate:   on.AddDays(interval),
	}
}

func TestSelectDue(t *testing.T) {
	asOf := models.NewDate(2024, time.June, 10)
	never := card(1, "Math", nil)
	onDay := card(2, "Math", reviewed(1, 2, asOf.AddDays(-3), 3, 3))
	tomorrow := card(3, "Math", reviewed(2, 3, asOf.AddDays(-2), 3, 3))
	overdue := card(4, "Math", reviewed(3, 4, asOf.AddDays(-30), 1, 1))

	due := flashcard.SelectDue(asOf, []models.CardWithReview{tomorrow, overdue, never, onDay})

	require.Len(t, due, 3)
	assert.Equal(t, []int64{4, 1, 2}, []int64{due[0].ID, due[1].ID, due[2].ID})
}

func TestSelectDue_NeverReviewedAlwaysDue(t *testing.T) {
	cards := []models.CardWithReview{card(1, "Math", nil)}
	for _, asOf := range []models.Date{
		models.NewDate(1970, time.January, 1),
		models.NewDate(2024, time.February, 29),
		models.NewDate(2999, time.December, 31),
	} {
		assert.Len(t, flashcard.SelectDue(asOf, cards), 1)
	}
}

func TestComputeStats(t *testing.T) {
	today := models.NewDate(2024, time.June, 10)

	// Card 1 reviewed twice today, card 2 due within the week, card 3 never
	// reviewed, card 4 due beyond the week.
	r1a := reviewed(1, 1, today, 2, 1)
	r1b := reviewed(2, 1, today, 2, 1)
	r2 := reviewed(3, 2, today.AddDays(-1), 4, 7)
	r4 := reviewed(4, 4, today.AddDays(-2), 5, 30)

	cards := []models.CardWithReview{
		card(1, "Math", r1b),
		card(2, "Math", r2),
		card(3, "History", nil),
		card(4, "History", r4),
	}
	reviews := []models.Review{*r1a, *r1b, *r2, *r4}

	stats := flashcard.ComputeStats(today, cards, reviews)

	assert.Equal(t, 4, stats.TotalCards)
	assert.Equal(t, 1, stats.CardsToReviewToday)
	assert.Equal(t, 1, stats.CompletedToday)
	assert.Equal(t, 2, stats.DueSoon)
	assert.InDelta(t, 3.7, stats.AvgFamiliarity, 1e-9)
}

func TestComputeStats_AvgFamiliarity(t *testing.T) {
	today := models.NewDate(2024, time.June, 10)

	stats := flashcard.ComputeStats(today, []models.CardWithReview{
		card(1, "Math", reviewed(1, 1, today.AddDays(-5), 2, 1)),
		card(2, "Math", reviewed(2, 2, today.AddDays(-5), 4, 1)),
	}, nil)
	assert.Equal(t, 3.0, stats.AvgFamiliarity)

	empty := flashcard.ComputeStats(today, []models.CardWithReview{card(1, "Math", nil)}, nil)
	assert.Equal(t, 0.0, empty.AvgFamiliarity)
	assert.Equal(t, 1, empty.CardsToReviewToday)
}

func TestSubjectDistribution(t *testing.T) {
	subjects := []models.Subject{{ID: 1, Name: "Math"}, {ID: 2, Name: "History"}, {ID: 3, Name: "Art"}}
	cards := []models.CardWithReview{
		card(1, "Math", nil),
		card(2, "Math", nil),
		card(3, "History", nil),
		card(4, "Biology", nil),
	}

	got := flashcard.SubjectDistribution(subjects, cards)

	assert.Equal(t, []models.SubjectCount{
		{Subject: "Math", Count: 2},
		{Subject: "History", Count: 1},
		{Subject: "Art", Count: 0},
	}, got)
}

func TestFamiliarityDistribution(t *testing.T) {
	day := models.NewDate(2024, time.June, 1)
	cards := []models.CardWithReview{
		card(1, "Math", reviewed(1, 1, day, 2, 2)),
		card(2, "Math", reviewed(2, 2, day, 2, 2)),
		card(3, "Math", reviewed(3, 3, day, 5, 7)),
		card(4, "Math", nil),
	}

	got := flashcard.FamiliarityDistribution(cards)

	assert.Equal(t, []models.FamiliarityCount{
		{Level: 1, Count: 0},
		{Level: 2, Count: 2},
		{Level: 3, Count: 0},
		{Level: 4, Count: 0},
		{Level: 5, Count: 1},
	}, got)

	assert.Len(t, flashcard.FamiliarityDistribution(nil), 5)
}

func TestFirstReviewThenSelectDue(t *testing.T) {
	submitted := models.NewDate(2024, time.June, 1)

	s, err := flashcard.ComputeNextReview(submitted, flashcard.Easy, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Interval)
	assert.Equal(t, models.NewDate(2024, time.June, 6), s.NextReviewDate)

	c := card(1, "Math", &models.Review{
		ID:               1,
		CardID:           1,
		ReviewDate:       submitted,
		FamiliarityScore: int(flashcard.Easy),
		Interval:         s.Interval,
		NextReviewDate:   s.NextReviewDate,
	})
	cards := []models.CardWithReview{c}

	assert.Len(t, flashcard.SelectDue(models.NewDate(2024, time.June, 6), cards), 1)
	assert.Empty(t, flashcard.SelectDue(models.NewDate(2024, time.June, 5), cards))
}
