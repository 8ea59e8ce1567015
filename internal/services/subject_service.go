package services

import (
	"context"
	"strings"

	"github.com/vytor/heptareview/internal/errors"
	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

// SubjectService handles subject-related business logic
type SubjectService interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	CreateSubject(ctx context.Context, name string) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error
}

type subjectService struct {
	subjectRepo repository.SubjectRepository
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjectRepo repository.SubjectRepository) SubjectService {
	return &subjectService{subjectRepo: subjectRepo}
}

func (s *subjectService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing subjects")

	subjects, err := s.subjectRepo.List(ctx)
	if err != nil {
		log.Error("failed to list subjects: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return subjects, nil
}

func (s *subjectService) CreateSubject(ctx context.Context, name string) (*models.Subject, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	log.Debug("creating subject: name=%q", name)

	subject, err := s.subjectRepo.Create(ctx, name)
	if err != nil {
		log.Error("failed to create subject: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return subject, nil
}

func (s *subjectService) DeleteSubject(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting subject: id=%d", id)

	deleted, err := s.subjectRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete subject: %v", err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("subject", id)
	}
	return nil
}
