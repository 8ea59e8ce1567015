package flashcard

import (
	"math"

	"github.com/vytor/heptareview/internal/models"
)

// DueSoonDays is the look-ahead window, in days after asOf, for DueSoon.
const DueSoonDays = 7

// IsDue reports whether c should be reviewed on asOf. Cards that were never
// reviewed are always due.
func IsDue(c models.CardWithReview, asOf models.Date) bool {
	if c.LastReview == nil {
		return true
	}
	return !c.LastReview.NextReviewDate.After(asOf)
}

// SelectDue returns the cards due on asOf, in input order.
func SelectDue(asOf models.Date, cards []models.CardWithReview) []models.CardWithReview {
	due := make([]models.CardWithReview, 0, len(cards))
	for _, c := range cards {
		if IsDue(c, asOf) {
			due = append(due, c)
		}
	}
	return due
}

// ComputeStats aggregates the dashboard counters for asOf. reviews must
// contain at least every review recorded on asOf; others are ignored.
func ComputeStats(asOf models.Date, cards []models.CardWithReview, reviews []models.Review) models.CardStats {
	stats := models.CardStats{TotalCards: len(cards)}
	horizon := asOf.AddDays(DueSoonDays)

	var scoreSum, scored int
	for _, c := range cards {
		if IsDue(c, asOf) {
			stats.CardsToReviewToday++
		}
		if c.LastReview == nil {
			continue
		}
		next := c.LastReview.NextReviewDate
		if next.After(asOf) && !next.After(horizon) {
			stats.DueSoon++
		}
		scoreSum += c.LastReview.FamiliarityScore
		scored++
	}

	seen := make(map[int64]struct{})
	for _, r := range reviews {
		if r.ReviewDate == asOf {
			seen[r.CardID] = struct{}{}
		}
	}
	stats.CompletedToday = len(seen)

	if scored > 0 {
		stats.AvgFamiliarity = math.Round(float64(scoreSum)/float64(scored)*10) / 10
	}
	return stats
}

// SubjectDistribution counts cards per existing subject, keeping the order of
// subjects and including subjects without cards. Cards whose subject label no
// longer matches a subject are not counted.
func SubjectDistribution(subjects []models.Subject, cards []models.CardWithReview) []models.SubjectCount {
	counts := make(map[string]int, len(subjects))
	for _, c := range cards {
		counts[c.Subject]++
	}
	out := make([]models.SubjectCount, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, models.SubjectCount{Subject: s.Name, Count: counts[s.Name]})
	}
	return out
}

// FamiliarityDistribution counts reviewed cards by their last familiarity
// score. The result always has one entry per level, 1 through 5.
func FamiliarityDistribution(cards []models.CardWithReview) []models.FamiliarityCount {
	out := make([]models.FamiliarityCount, 0, int(VeryEasy))
	for level := VeryHard; level <= VeryEasy; level++ {
		out = append(out, models.FamiliarityCount{Level: int(level)})
	}
	for _, c := range cards {
		if c.LastReview == nil {
			continue
		}
		r := Rating(c.LastReview.FamiliarityScore)
		if r.IsValid() {
			out[r-1].Count++
		}
	}
	return out
}
