// Package memory provides in-process implementations of the repositories.
// Data lives for the lifetime of the Store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vytor/heptareview/internal/models"
)

// Store holds cards, reviews and subjects behind a single lock so a card
// delete and its review cascade are observed together.
type Store struct {
	mu       sync.RWMutex
	cards    map[int64]models.Card
	reviews  map[int64][]models.Review // key: card id, oldest first
	subjects map[int64]models.Subject
	now      func() time.Time

	nextCardID    int64
	nextReviewID  int64
	nextSubjectID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		cards:    make(map[int64]models.Card),
		reviews:  make(map[int64][]models.Review),
		subjects: make(map[int64]models.Subject),
		now:      time.Now,
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return nil }

// lastReview must be called with s.mu held.
func (s *Store) lastReview(cardID int64) *models.Review {
	var last *models.Review
	for i := range s.reviews[cardID] {
		r := s.reviews[cardID][i]
		if last == nil || r.NewerThan(*last) {
			last = &r
		}
	}
	return last
}

func (s *Store) withLastReview(c models.Card) models.CardWithReview {
	return models.CardWithReview{Card: c, LastReview: s.lastReview(c.ID)}
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func newestFirst(reviews []models.Review) {
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].NewerThan(reviews[j]) })
}
