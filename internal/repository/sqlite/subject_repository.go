package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

type subjectRepository struct {
	db *sql.DB
}

// NewSubjectRepository creates a new SubjectRepository implementation
func NewSubjectRepository(db *sql.DB) repository.SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("listing subjects")

	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM subjects ORDER BY id`)
	if err != nil {
		log.Error("failed to query subjects: %v", err)
		return nil, err
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			log.Error("failed to scan subject row: %v", err)
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *subjectRepository) Create(ctx context.Context, name string) (*models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("creating subject: name=%q", name)

	key := models.SubjectKey(name)
	var subject models.Subject
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT id, name FROM subjects WHERE name_key = ?`, key).Scan(&subject.ID, &subject.Name)
		if err == nil {
			log.Debug("subject already exists: id=%d", subject.ID)
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		res, err := tx.ExecContext(ctx, `INSERT INTO subjects (name, name_key) VALUES (?, ?)`, name, key)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		subject = models.Subject{ID: id, Name: name}
		log.Debug("subject inserted: id=%d", id)
		return nil
	})
	if err != nil {
		log.Error("failed to create subject: %v", err)
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("deleting subject: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete subject: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
