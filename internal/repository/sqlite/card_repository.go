package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

// Joins each card to its most recent review, if any.
const latestReviewJoin = `reviews r ON r.id = (
    SELECT r2.id FROM reviews r2
    WHERE r2.card_id = c.id
    ORDER BY r2.review_date DESC, r2.id DESC
    LIMIT 1
)`

var cardWithReviewColumns = []string{
	"c.id", "c.card_name", "c.subject", "c.note", "c.created_at",
	"r.id", "r.card_id", "r.review_date", "r.familiarity_score", "r.interval_days",
	"r.next_review_date", "r.review_time_minutes", "r.review_notes",
}

func applyCardFilter(query squirrel.SelectBuilder, filter models.CardFilter) squirrel.SelectBuilder {
	if filter.Subject != "" {
		query = query.Where(squirrel.Eq{"c.subject": filter.Subject})
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(squirrel.Expr(`(c.card_name LIKE ? ESCAPE '\' OR c.note LIKE ? ESCAPE '\')`, pattern, pattern))
	}
	return query
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.CardWithReview, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: subject=%q, search=%q, limit=%d, offset=%d", filter.Subject, filter.Search, filter.Limit, filter.Offset)

	query := sqlBuilder.Select(cardWithReviewColumns...).
		From("cards c").
		LeftJoin(latestReviewJoin)
	query = applyCardFilter(query, filter).OrderBy("c.id")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	} else if filter.Offset > 0 {
		// SQLite only accepts OFFSET after a LIMIT.
		query = query.Limit(math.MaxInt64)
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	cards := []models.CardWithReview{}
	for rows.Next() {
		c, err := scanCardWithReview(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating card rows: %v", err)
		return nil, err
	}
	log.Debug("found %d cards", len(cards))
	return cards, nil
}

func (r *cardRepository) Count(ctx context.Context, filter models.CardFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	query := applyCardFilter(sqlBuilder.Select("COUNT(*)").From("cards c"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.CardWithReview, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching card: id=%d", id)

	sqlStr, args, err := sqlBuilder.Select(cardWithReviewColumns...).
		From("cards c").
		LeftJoin(latestReviewJoin).
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanCardWithReview(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to fetch card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) Insert(ctx context.Context, card models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: name=%q, subject=%q", card.Name, card.Subject)

	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}

	sqlStr, args, err := sqlBuilder.Insert("cards").
		Columns("card_name", "subject", "note", "created_at").
		Values(card.Name, card.Subject, card.Note, card.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) Update(ctx context.Context, id int64, update models.CardUpdate) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d", id)

	set := map[string]any{}
	if update.Name != nil {
		set["card_name"] = *update.Name
	}
	if update.Subject != nil {
		set["subject"] = *update.Subject
	}
	if update.Note != nil {
		set["note"] = *update.Note
	}

	var card *models.Card
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if len(set) > 0 {
			sqlStr, args, err := sqlBuilder.Update("cards").SetMap(set).Where(squirrel.Eq{"id": id}).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
				return err
			}
		}

		c, err := scanCard(tx.QueryRowContext(ctx,
			`SELECT id, card_name, subject, note, created_at FROM cards WHERE id = ?`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		card = &c
		return nil
	})
	if err != nil {
		log.Error("failed to update card: %v", err)
		return nil, err
	}
	if card == nil {
		log.Debug("card not found: id=%d", id)
	}
	return card, nil
}

func (r *cardRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	var deleted bool
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE card_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return false, err
	}
	log.Debug("card delete: id=%d, existed=%t", id, deleted)
	return deleted, nil
}

func scanCard(row rowScanner) (models.Card, error) {
	var (
		c    models.Card
		note sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Subject, &note, &c.CreatedAt); err != nil {
		return models.Card{}, err
	}
	c.Note = stringPtr(note)
	return c, nil
}

func scanCardWithReview(row rowScanner) (models.CardWithReview, error) {
	var (
		c        models.CardWithReview
		note     sql.NullString
		reviewID sql.NullInt64
		cardID   sql.NullInt64
		reviewed sql.Null[models.Date]
		score    sql.NullInt64
		interval sql.NullInt64
		next     sql.Null[models.Date]
		minutes  sql.NullInt64
		notes    sql.NullString
	)
	err := row.Scan(&c.ID, &c.Name, &c.Subject, &note, &c.CreatedAt,
		&reviewID, &cardID, &reviewed, &score, &interval, &next, &minutes, &notes)
	if err != nil {
		return models.CardWithReview{}, err
	}
	c.Note = stringPtr(note)
	if reviewID.Valid {
		c.LastReview = &models.Review{
			ID:                reviewID.Int64,
			CardID:            cardID.Int64,
			ReviewDate:        reviewed.V,
			FamiliarityScore:  int(score.Int64),
			Interval:          int(interval.Int64),
			NextReviewDate:    next.V,
			ReviewTimeMinutes: intPtr(minutes),
			ReviewNotes:       stringPtr(notes),
		}
	}
	return c, nil
}
