package memory

import (
	"context"

	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

type subjectRepository struct {
	store *Store
}

// NewSubjectRepository creates a SubjectRepository backed by store.
func NewSubjectRepository(store *Store) repository.SubjectRepository {
	return &subjectRepository{store: store}
}

func (r *subjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("listing subjects")

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	subjects := make([]models.Subject, 0, len(s.subjects))
	for _, id := range sortedIDs(s.subjects) {
		subjects = append(subjects, s.subjects[id])
	}
	return subjects, nil
}

func (r *subjectRepository) Create(ctx context.Context, name string) (*models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("creating subject: name=%q", name)

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.SubjectKey(name)
	for _, existing := range s.subjects {
		if models.SubjectKey(existing.Name) == key {
			log.Debug("subject already exists: id=%d", existing.ID)
			return &existing, nil
		}
	}
	s.nextSubjectID++
	subject := models.Subject{ID: s.nextSubjectID, Name: name}
	s.subjects[subject.ID] = subject
	log.Debug("subject inserted: id=%d", subject.ID)
	return &subject, nil
}

func (r *subjectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("deleting subject: id=%d", id)

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subjects[id]; !ok {
		return false, nil
	}
	delete(s.subjects, id)
	return true, nil
}
