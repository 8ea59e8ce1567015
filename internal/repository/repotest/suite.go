// Package repotest holds a behavioural test suite that every repository
// implementation must pass.
package repotest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository"
)

// Repos bundles one implementation of each repository over shared storage.
type Repos struct {
	Cards    repository.CardRepository
	Reviews  repository.ReviewRepository
	Subjects repository.SubjectRepository
}

// Suite runs against fresh storage built by New for every test.
type Suite struct {
	suite.Suite
	New func(t *testing.T) Repos

	ctx   context.Context
	repos Repos
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.repos = s.New(s.T())
}

func strPtr(v string) *string { return &v }

func (s *Suite) insertCard(name, subject string, note *string) int64 {
	id, err := s.repos.Cards.Insert(s.ctx, models.Card{
		Name:      name,
		Subject:   subject,
		Note:      note,
		CreatedAt: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	s.Require().Greater(id, int64(0))
	return id
}

func (s *Suite) appendReview(cardID int64, on models.Date, score, interval int) models.Review {
	r, err := s.repos.Reviews.Append(s.ctx, cardID, func(*models.Review) (models.Review, error) {
		return models.Review{
			ReviewDate:       on,
			FamiliarityScore: score,
			Interval:         interval,
			NextReviewDate:   on.AddDays(interval),
		}, nil
	})
	s.Require().NoError(err)
	s.Require().NotNil(r)
	return *r
}

func (s *Suite) TestCardInsertAndGet() {
	id := s.insertCard("Paging", "Operating Systems", strPtr("page tables"))

	got, err := s.repos.Cards.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(id, got.ID)
	s.Equal("Paging", got.Name)
	s.Equal("Operating Systems", got.Subject)
	s.Require().NotNil(got.Note)
	s.Equal("page tables", *got.Note)
	s.WithinDuration(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC), got.CreatedAt, time.Second)
	s.Nil(got.LastReview)
}

func (s *Suite) TestCardGet_NotFound() {
	got, err := s.repos.Cards.Get(s.ctx, 9999)
	s.NoError(err)
	s.Nil(got)
}

func (s *Suite) TestCardList_FiltersAndPages() {
	a := s.insertCard("Binary search", "Algorithms", nil)
	b := s.insertCard("Heaps", "Algorithms", strPtr("Priority queues"))
	c := s.insertCard("French Revolution", "History", strPtr("1789"))
	d := s.insertCard("50% rule", "Algorithms", nil)

	all, err := s.repos.Cards.List(s.ctx, models.CardFilter{})
	s.Require().NoError(err)
	s.Equal([]int64{a, b, c, d}, ids(all))

	bySubject, err := s.repos.Cards.List(s.ctx, models.CardFilter{Subject: "Algorithms"})
	s.Require().NoError(err)
	s.Equal([]int64{a, b, d}, ids(bySubject))

	byNote, err := s.repos.Cards.List(s.ctx, models.CardFilter{Search: "PRIORITY"})
	s.Require().NoError(err)
	s.Equal([]int64{b}, ids(byNote))

	byName, err := s.repos.Cards.List(s.ctx, models.CardFilter{Search: "revolution"})
	s.Require().NoError(err)
	s.Equal([]int64{c}, ids(byName))

	literal, err := s.repos.Cards.List(s.ctx, models.CardFilter{Search: "0%"})
	s.Require().NoError(err)
	s.Equal([]int64{d}, ids(literal))

	page, err := s.repos.Cards.List(s.ctx, models.CardFilter{Subject: "Algorithms", Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Equal([]int64{b}, ids(page))

	tail, err := s.repos.Cards.List(s.ctx, models.CardFilter{Offset: 3})
	s.Require().NoError(err)
	s.Equal([]int64{d}, ids(tail))

	count, err := s.repos.Cards.Count(s.ctx, models.CardFilter{Subject: "Algorithms"})
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *Suite) TestCardList_AttachesLatestReview() {
	id := s.insertCard("TCP handshake", "Networking", nil)
	other := s.insertCard("UDP", "Networking", nil)

	june5 := models.NewDate(2024, time.June, 5)
	june6 := models.NewDate(2024, time.June, 6)

	s.appendReview(id, june6, 3, 3)
	s.appendReview(id, june5, 1, 1) // older date appended later
	sameDay := s.appendReview(id, june6, 4, 5)

	cards, err := s.repos.Cards.List(s.ctx, models.CardFilter{})
	s.Require().NoError(err)
	s.Require().Len(cards, 2)

	s.Require().NotNil(cards[0].LastReview)
	s.Equal(sameDay.ID, cards[0].LastReview.ID)
	s.Equal(june6, cards[0].LastReview.ReviewDate)
	s.Equal(models.NewDate(2024, time.June, 11), cards[0].LastReview.NextReviewDate)
	s.Nil(cards[1].LastReview)
	s.Equal(other, cards[1].ID)

	got, err := s.repos.Cards.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(sameDay.ID, got.LastReview.ID)

	history, err := s.repos.Reviews.ListForCard(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	s.Equal(sameDay, history[0])
}

func (s *Suite) TestCardUpdate() {
	id := s.insertCard("Eigenvalues", "Linear Algebra", nil)

	updated, err := s.repos.Cards.Update(s.ctx, id, models.CardUpdate{Note: strPtr("Av = λv")})
	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Equal("Eigenvalues", updated.Name)
	s.Equal("Linear Algebra", updated.Subject)
	s.Equal("Av = λv", *updated.Note)

	updated, err = s.repos.Cards.Update(s.ctx, id, models.CardUpdate{Name: strPtr("Eigenvectors"), Subject: strPtr("Math")})
	s.Require().NoError(err)
	s.Equal("Eigenvectors", updated.Name)
	s.Equal("Math", updated.Subject)
	s.Equal("Av = λv", *updated.Note)

	missing, err := s.repos.Cards.Update(s.ctx, 9999, models.CardUpdate{Name: strPtr("x")})
	s.NoError(err)
	s.Nil(missing)
}

func (s *Suite) TestCardDelete_CascadesReviews() {
	id := s.insertCard("Mitosis", "Biology", nil)
	keep := s.insertCard("Meiosis", "Biology", nil)
	day := models.NewDate(2024, time.June, 1)
	s.appendReview(id, day, 3, 3)
	s.appendReview(keep, day, 3, 3)

	deleted, err := s.repos.Cards.Delete(s.ctx, id)
	s.Require().NoError(err)
	s.True(deleted)

	got, err := s.repos.Cards.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Nil(got)

	reviews, err := s.repos.Reviews.ListForCard(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(reviews)

	onDay, err := s.repos.Reviews.ListOnDate(s.ctx, day)
	s.Require().NoError(err)
	s.Len(onDay, 1)
	s.Equal(keep, onDay[0].CardID)

	deleted, err = s.repos.Cards.Delete(s.ctx, id)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *Suite) TestReviewAppend_PassesLastReview() {
	id := s.insertCard("Recursion", "Programming", nil)
	day := models.NewDate(2024, time.June, 1)

	var seen []*models.Review
	build := func(last *models.Review) (models.Review, error) {
		seen = append(seen, last)
		interval := 2
		if last != nil {
			interval = last.Interval * 2
		}
		minutes := 4
		return models.Review{
			ReviewDate:        day,
			FamiliarityScore:  4,
			Interval:          interval,
			NextReviewDate:    day.AddDays(interval),
			ReviewTimeMinutes: &minutes,
			ReviewNotes:       strPtr("fine"),
		}, nil
	}

	first, err := s.repos.Reviews.Append(s.ctx, id, build)
	s.Require().NoError(err)
	second, err := s.repos.Reviews.Append(s.ctx, id, build)
	s.Require().NoError(err)

	s.Require().Len(seen, 2)
	s.Nil(seen[0])
	s.Equal(first.ID, seen[1].ID)
	s.Equal(4, second.Interval)
	s.Equal(id, second.CardID)

	history, err := s.repos.Reviews.ListForCard(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(second.ID, history[0].ID)
	s.Equal(first.ID, history[1].ID)
	s.Require().NotNil(history[0].ReviewTimeMinutes)
	s.Equal(4, *history[0].ReviewTimeMinutes)
	s.Equal("fine", *history[0].ReviewNotes)
}

func (s *Suite) TestReviewAppend_MissingCard() {
	called := false
	r, err := s.repos.Reviews.Append(s.ctx, 9999, func(*models.Review) (models.Review, error) {
		called = true
		return models.Review{}, nil
	})
	s.NoError(err)
	s.Nil(r)
	s.False(called)
}

func (s *Suite) TestReviewAppend_BuildErrorStoresNothing() {
	id := s.insertCard("Graphs", "Algorithms", nil)
	boom := errors.New("boom")

	r, err := s.repos.Reviews.Append(s.ctx, id, func(*models.Review) (models.Review, error) {
		return models.Review{}, boom
	})
	s.ErrorIs(err, boom)
	s.Nil(r)

	history, err := s.repos.Reviews.ListForCard(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *Suite) TestReviewAppend_ConcurrentCallsSerialize() {
	id := s.insertCard("Mutex", "Operating Systems", nil)
	day := models.NewDate(2024, time.June, 1)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repos.Reviews.Append(s.ctx, id, func(last *models.Review) (models.Review, error) {
				interval := 1
				if last != nil {
					interval = last.Interval + 1
				}
				return models.Review{ReviewDate: day, FamiliarityScore: 3, Interval: interval, NextReviewDate: day.AddDays(interval)}, nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	history, err := s.repos.Reviews.ListForCard(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(history, n)
	for i, r := range history {
		s.Equal(n-i, r.Interval, "every append must observe the previous one")
	}
}

func (s *Suite) TestReviewListOnDate() {
	a := s.insertCard("A", "X", nil)
	b := s.insertCard("B", "X", nil)
	today := models.NewDate(2024, time.June, 10)

	s.appendReview(a, today.AddDays(-1), 3, 3)
	r1 := s.appendReview(a, today, 4, 5)
	r2 := s.appendReview(b, today, 2, 2)

	got, err := s.repos.Reviews.ListOnDate(s.ctx, today)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(r2.ID, got[0].ID)
	s.Equal(r1.ID, got[1].ID)

	none, err := s.repos.Reviews.ListOnDate(s.ctx, today.AddDays(1))
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *Suite) TestSubjects() {
	history, err := s.repos.Subjects.Create(s.ctx, "History")
	s.Require().NoError(err)
	physics, err := s.repos.Subjects.Create(s.ctx, "Physics")
	s.Require().NoError(err)

	again, err := s.repos.Subjects.Create(s.ctx, "hIsToRy")
	s.Require().NoError(err)
	s.Equal(history.ID, again.ID)
	s.Equal("History", again.Name)

	economics, err := s.repos.Subjects.Create(s.ctx, "Économie")
	s.Require().NoError(err)
	lower, err := s.repos.Subjects.Create(s.ctx, "économie")
	s.Require().NoError(err)
	s.Equal(economics.ID, lower.ID)
	s.Equal("Économie", lower.Name)

	list, err := s.repos.Subjects.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]models.Subject{*history, *physics, *economics}, list)

	deleted, err := s.repos.Subjects.Delete(s.ctx, history.ID)
	s.Require().NoError(err)
	s.True(deleted)
	deleted, err = s.repos.Subjects.Delete(s.ctx, history.ID)
	s.Require().NoError(err)
	s.False(deleted)

	list, err = s.repos.Subjects.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]models.Subject{*physics, *economics}, list)
}

func ids(cards []models.CardWithReview) []int64 {
	out := make([]int64, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}
