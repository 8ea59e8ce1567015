package memory_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
	"github.com/vytor/heptareview/internal/repository/memory"
	"github.com/vytor/heptareview/internal/repository/repotest"
)

func TestRepositories(t *testing.T) {
	suite.Run(t, &repotest.Suite{New: func(t *testing.T) repotest.Repos {
		store := memory.NewStore()
		return repotest.Repos{
			Cards:    memory.NewCardRepository(store),
			Reviews:  memory.NewReviewRepository(store),
			Subjects: memory.NewSubjectRepository(store),
		}
	}})
}

func TestRepositories_LogWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.NewContext(context.Background(), logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(logger.DEBUG),
		logger.WithColors(false),
	))

	store := memory.NewStore()
	cards := memory.NewCardRepository(store)
	reviews := memory.NewReviewRepository(store)
	subjects := memory.NewSubjectRepository(store)

	id, err := cards.Insert(ctx, models.Card{Name: "Mutex", Subject: "Concurrency"})
	require.NoError(t, err)
	_, err = reviews.Append(ctx, id, func(*models.Review) (models.Review, error) {
		day := models.NewDate(2024, 6, 1)
		return models.Review{ReviewDate: day, FamiliarityScore: 3, Interval: 3, NextReviewDate: day.AddDays(3)}, nil
	})
	require.NoError(t, err)
	_, err = subjects.Create(ctx, "Concurrency")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "card_repo")
	assert.Contains(t, out, "card inserted: id=1")
	assert.Contains(t, out, "review_repo")
	assert.Contains(t, out, "review appended: id=1, interval=3, next=2024-06-04")
	assert.Contains(t, out, "subject_repo")
	assert.Contains(t, out, `creating subject: name="Concurrency"`)
}
