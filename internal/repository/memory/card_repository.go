package memory

import (
	"context"
	"strings"

	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

type cardRepository struct {
	store *Store
}

// NewCardRepository creates a CardRepository backed by store.
func NewCardRepository(store *Store) repository.CardRepository {
	return &cardRepository{store: store}
}

func matchesFilter(c models.Card, filter models.CardFilter) bool {
	if filter.Subject != "" && c.Subject != filter.Subject {
		return false
	}
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		note := ""
		if c.Note != nil {
			note = *c.Note
		}
		if !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(note), q) {
			return false
		}
	}
	return true
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.CardWithReview, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: subject=%q, search=%q, limit=%d, offset=%d", filter.Subject, filter.Search, filter.Limit, filter.Offset)

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := []models.CardWithReview{}
	skipped := 0
	for _, id := range sortedIDs(s.cards) {
		c := s.cards[id]
		if !matchesFilter(c, filter) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(cards) == filter.Limit {
			break
		}
		cards = append(cards, s.withLastReview(c))
	}
	log.Debug("found %d cards", len(cards))
	return cards, nil
}

func (r *cardRepository) Count(ctx context.Context, filter models.CardFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("counting cards: subject=%q, search=%q", filter.Subject, filter.Search)

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, c := range s.cards {
		if matchesFilter(c, filter) {
			n++
		}
	}
	return n, nil
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.CardWithReview, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cards[id]
	if !ok {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	cw := s.withLastReview(c)
	return &cw, nil
}

func (r *cardRepository) Insert(ctx context.Context, card models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: name=%q, subject=%q", card.Name, card.Subject)

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCardID++
	card.ID = s.nextCardID
	if card.CreatedAt.IsZero() {
		card.CreatedAt = s.now()
	}
	s.cards[card.ID] = card
	log.Debug("card inserted: id=%d", card.ID)
	return card.ID, nil
}

func (r *cardRepository) Update(ctx context.Context, id int64, update models.CardUpdate) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d", id)

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cards[id]
	if !ok {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Subject != nil {
		c.Subject = *update.Subject
	}
	if update.Note != nil {
		note := *update.Note
		c.Note = &note
	}
	s.cards[id] = c
	return &c, nil
}

func (r *cardRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[id]; !ok {
		return false, nil
	}
	log.Debug("card deleted with %d reviews: id=%d", len(s.reviews[id]), id)
	delete(s.cards, id)
	delete(s.reviews, id)
	return true, nil
}
