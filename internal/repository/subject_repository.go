package repository

import (
	"context"

	"github.com/vytor/heptareview/internal/models"
)

// SubjectRepository handles subject data access
type SubjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	// Create returns the existing subject when one with the same name,
	// compared case-insensitively, is already stored.
	Create(ctx context.Context, name string) (*models.Subject, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
