package worker

import (
	"context"

	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
)

// StatsProvider computes the dashboard counters for the current day.
// Declared here so this package does not import services.
type StatsProvider interface {
	GetStats(ctx context.Context) (*models.CardStats, error)
}

// DueDigestJob logs how many cards are due. OnDigest, if set, receives
// the computed stats.
type DueDigestJob struct {
	Stats    StatsProvider
	OnDigest func(models.CardStats)
}

func (j *DueDigestJob) Name() string { return "due_digest" }

func (j *DueDigestJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	stats, err := j.Stats.GetStats(ctx)
	if err != nil {
		return err
	}
	log.WithFields(map[string]any{
		"due":       stats.CardsToReviewToday,
		"due_soon":  stats.DueSoon,
		"completed": stats.CompletedToday,
		"total":     stats.TotalCards,
	}).Info("%d of %d cards due today, %d more this week, avg familiarity %.1f",
		stats.CardsToReviewToday, stats.TotalCards, stats.DueSoon, stats.AvgFamiliarity)

	if j.OnDigest != nil {
		j.OnDigest(*stats)
	}
	return nil
}
