package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"tgclasses/internal/logger"
	"tgclasses/internal/models"
	"tgclasses/internal/repository"
	"tgclasses/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invalidationCounter struct{ calls int }

func (c *invalidationCounter) Invalidate(context.Context) { c.calls++ }

type failingPurger struct{}

func (failingPurger) PurgeBefore(context.Context, time.Time) (int64, error) {
	return 0, errors.New("db is gone")
}

func TestPurgePastClassesRemovesOnlyExpired(t *testing.T) {
	db := storagetest.NewDB(t)
	repos := repository.New(db, logger.Discard())
	ctx := context.Background()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	creator, err := repos.Users.Create(ctx, &models.User{TelegramID: 111, FirstName: "Анна"})
	require.NoError(t, err)

	old, err := repos.Classes.Create(ctx, repository.NewClass{Topic: "Old", ClassTime: now.AddDate(0, 0, -10)}, creator.ID)
	require.NoError(t, err)
	recent, err := repos.Classes.Create(ctx, repository.NewClass{Topic: "Recent", ClassTime: now.AddDate(0, 0, -2)}, creator.ID)
	require.NoError(t, err)
	_, err = repos.RSVPs.CreateOrUpdate(ctx, old.ID, creator.ID, models.RSVPStatusYes)
	require.NoError(t, err)

	cache := &invalidationCounter{}
	planner := NewPlanner(repos.Classes, cache, 7, logger.Discard())
	planner.now = func() time.Time { return now }

	n, err := planner.PurgePastClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, cache.calls)

	gone, err := repos.Classes.Get(ctx, old.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := repos.Classes.Get(ctx, recent.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)

	var rsvps int64
	require.NoError(t, db.Model(&models.RSVP{}).Count(&rsvps).Error)
	assert.Zero(t, rsvps)

	n, err = planner.PurgePastClasses(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, cache.calls, "пустая очистка не сбрасывает кэш")
}

func TestPurgePastClassesReturnsError(t *testing.T) {
	planner := NewPlanner(failingPurger{}, nil, 1, logger.Discard())

	_, err := planner.PurgePastClasses(context.Background())
	assert.Error(t, err)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	planner := NewPlanner(failingPurger{}, nil, 1, logger.Discard())

	_, err := planner.Start("not a cron")
	assert.Error(t, err)

	c, err := planner.Start("0 0 3 * * *")
	require.NoError(t, err)
	c.Stop()
}
