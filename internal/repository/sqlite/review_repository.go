package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) ListForCard(ctx context.Context, cardID int64) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews: card_id=%d", cardID)

	return r.list(ctx, log, squirrel.Eq{"card_id": cardID})
}

func (r *reviewRepository) ListOnDate(ctx context.Context, day models.Date) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews on %s", day)

	return r.list(ctx, log, squirrel.Eq{"review_date": day})
}

func (r *reviewRepository) list(ctx context.Context, log *logger.Logger, where squirrel.Sqlizer) ([]models.Review, error) {
	sqlStr, args, err := sqlBuilder.Select(reviewColumns).
		From("reviews").
		Where(where).
		OrderBy("review_date DESC", "id DESC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query reviews: %v", err)
		return nil, err
	}
	reviews, err := scanReviews(rows)
	if err != nil {
		log.Error("failed to scan reviews: %v", err)
		return nil, err
	}
	log.Debug("found %d reviews", len(reviews))
	return reviews, nil
}

func (r *reviewRepository) Append(ctx context.Context, cardID int64, build repository.BuildReviewFunc) (*models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("appending review: card_id=%d", cardID)

	var stored *models.Review
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM cards WHERE id = ?`, cardID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		last, err := lastReview(ctx, tx, cardID)
		if err != nil {
			return err
		}
		review, err := build(last)
		if err != nil {
			return err
		}
		review.CardID = cardID

		sqlStr, args, err := sqlBuilder.Insert("reviews").
			Columns("card_id", "review_date", "familiarity_score", "interval_days", "next_review_date", "review_time_minutes", "review_notes").
			Values(review.CardID, review.ReviewDate, review.FamiliarityScore, review.Interval, review.NextReviewDate, review.ReviewTimeMinutes, review.ReviewNotes).
			ToSql()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		if review.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		stored = &review
		return nil
	})
	if err != nil {
		log.Error("failed to append review: %v", err)
		return nil, err
	}
	if stored == nil {
		log.Debug("card not found: id=%d", cardID)
		return nil, nil
	}
	log.Debug("review appended: id=%d, interval=%d, next=%s", stored.ID, stored.Interval, stored.NextReviewDate)
	return stored, nil
}
