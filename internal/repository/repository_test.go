package repository_test

import (
	"context"
	"errors"
	"testing"
	"tgclasses/internal/logger"
	"tgclasses/internal/models"
	"tgclasses/internal/repository"
	"tgclasses/internal/storage/storagetest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepos(t *testing.T) (*repository.Repositories, *gorm.DB) {
	t.Helper()
	db := storagetest.NewDB(t)
	return repository.New(db, logger.Discard()), db
}

func createUser(t *testing.T, repos *repository.Repositories, telegramID int64, name string) *models.User {
	t.Helper()
	user, err := repos.Users.Create(context.Background(), &models.User{TelegramID: telegramID, FirstName: name})
	require.NoError(t, err, "Ошибка создания пользователя %d", telegramID)
	return user
}

func createClass(t *testing.T, repos *repository.Repositories, creator *models.User, topic string, at time.Time) *models.Class {
	t.Helper()
	class, err := repos.Classes.Create(context.Background(), repository.NewClass{
		Topic:       topic,
		Description: topic + " description",
		ClassTime:   at,
	}, creator.ID)
	require.NoError(t, err, "Ошибка создания занятия %s", topic)
	return class
}

func strPtr(s string) *string { return &s }

func TestUserLookups(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	user := createUser(t, repos, 111, "Ann")
	assert.NotZero(t, user.ID)

	byID, err := repos.Users.Get(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, int64(111), byID.TelegramID)

	byTelegram, err := repos.Users.GetByTelegramID(ctx, 111)
	require.NoError(t, err)
	require.NotNil(t, byTelegram)
	assert.Equal(t, user.ID, byTelegram.ID)

	missing, err := repos.Users.Get(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repos.Users.GetByTelegramID(ctx, 222)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateUserDuplicateTelegramID(t *testing.T) {
	repos, _ := setupRepos(t)
	createUser(t, repos, 111, "Ann")

	_, err := repos.Users.Create(context.Background(), &models.User{TelegramID: 111, FirstName: "Other"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrConstraintViolation))
}

func TestCreateClassLoadsCreator(t *testing.T) {
	repos, _ := setupRepos(t)
	creator := createUser(t, repos, 111, "Ann")
	at := time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC)

	class := createClass(t, repos, creator, "Intro", at)

	assert.NotZero(t, class.ID)
	assert.Equal(t, creator.ID, class.CreatorID)
	assert.Equal(t, int64(111), class.Creator.TelegramID)
	assert.Empty(t, class.RSVPs)
	assert.Empty(t, class.Questions)
	assert.True(t, class.ClassTime.Equal(at))
}

func TestCreateClassUnknownCreator(t *testing.T) {
	repos, _ := setupRepos(t)

	_, err := repos.Classes.Create(context.Background(), repository.NewClass{Topic: "Ghost", ClassTime: time.Now()}, 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrConstraintViolation))
}

func TestListClassesPaginatesAndPreloads(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()
	creator := createUser(t, repos, 111, "Ann")
	guest := createUser(t, repos, 222, "Bob")

	base := time.Now().Add(24 * time.Hour).UTC()
	first := createClass(t, repos, creator, "First", base)
	createClass(t, repos, creator, "Second", base.Add(time.Hour))
	createClass(t, repos, creator, "Third", base.Add(2*time.Hour))

	_, err := repos.RSVPs.CreateOrUpdate(ctx, first.ID, guest.ID, models.RSVPStatusYes)
	require.NoError(t, err)
	_, err = repos.Questions.Create(ctx, first.ID, guest.ID, "Нужен ноутбук?")
	require.NoError(t, err)

	all, err := repos.Classes.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "First", all[0].Topic)
	assert.Equal(t, "Ann", all[0].Creator.FirstName)
	require.Len(t, all[0].RSVPs, 1)
	assert.Equal(t, "Bob", all[0].RSVPs[0].User.FirstName)
	require.Len(t, all[0].Questions, 1)
	assert.Equal(t, int64(222), all[0].Questions[0].User.TelegramID)

	page, err := repos.Classes.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Second", page[0].Topic)

	empty, err := repos.Classes.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestNormalizePage(t *testing.T) {
	offset, limit := repository.NormalizePage(-5, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, repository.DefaultLimit, limit)

	_, limit = repository.NormalizePage(0, 50000)
	assert.Equal(t, repository.MaxLimit, limit)
}

func TestUpdateClassPartial(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()
	creator := createUser(t, repos, 111, "Ann")
	at := time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC)
	class := createClass(t, repos, creator, "Intro", at)

	updated, err := repos.Classes.Update(ctx, class.ID, repository.ClassChanges{Topic: strPtr("Advanced")})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Advanced", updated.Topic)
	assert.Equal(t, "Intro description", updated.Description)
	assert.True(t, updated.ClassTime.Equal(at))
	assert.Equal(t, "Ann", updated.Creator.FirstName)

	newTime := at.Add(48 * time.Hour)
	updated, err = repos.Classes.Update(ctx, class.ID, repository.ClassChanges{Description: strPtr(""), ClassTime: &newTime})
	require.NoError(t, err)
	assert.Equal(t, "Advanced", updated.Topic)
	assert.Equal(t, "", updated.Description)
	assert.True(t, updated.ClassTime.Equal(newTime))
}

func TestUpdateClassMissing(t *testing.T) {
	repos, _ := setupRepos(t)

	updated, err := repos.Classes.Update(context.Background(), 404, repository.ClassChanges{Topic: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteClassCascades(t *testing.T) {
	repos, db := setupRepos(t)
	ctx := context.Background()
	creator := createUser(t, repos, 111, "Ann")
	guest := createUser(t, repos, 222, "Bob")
	class := createClass(t, repos, creator, "Intro", time.Now())
	other := createClass(t, repos, creator, "Other", time.Now())

	_, err := repos.RSVPs.CreateOrUpdate(ctx, class.ID, guest.ID, models.RSVPStatusYes)
	require.NoError(t, err)
	_, err = repos.RSVPs.CreateOrUpdate(ctx, other.ID, guest.ID, models.RSVPStatusNo)
	require.NoError(t, err)
	_, err = repos.Questions.Create(ctx, class.ID, guest.ID, "Где проходит?")
	require.NoError(t, err)

	deleted, err := repos.Classes.Delete(ctx, class.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "Intro", deleted.Topic)
	assert.Len(t, deleted.RSVPs, 1)

	gone, err := repos.Classes.Get(ctx, class.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var rsvpCount, questionCount int64
	require.NoError(t, db.Model(&models.RSVP{}).Where("class_id = ?", class.ID).Count(&rsvpCount).Error)
	require.NoError(t, db.Model(&models.Question{}).Where("class_id = ?", class.ID).Count(&questionCount).Error)
	assert.Zero(t, rsvpCount)
	assert.Zero(t, questionCount)

	var remaining int64
	require.NoError(t, db.Model(&models.RSVP{}).Where("class_id = ?", other.ID).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	again, err := repos.Classes.Delete(ctx, class.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestCreateOrUpdateRSVPKeepsSingleRow(t *testing.T) {
	repos, db := setupRepos(t)
	ctx := context.Background()
	creator := createUser(t, repos, 111, "Ann")
	guest := createUser(t, repos, 222, "Bob")
	class := createClass(t, repos, creator, "Intro", time.Now())

	first, err := repos.RSVPs.CreateOrUpdate(ctx, class.ID, guest.ID, models.RSVPStatusYes)
	require.NoError(t, err)
	assert.Equal(t, models.RSVPStatusYes, first.Status)
	assert.Equal(t, "Bob", first.User.FirstName)

	second, err := repos.RSVPs.CreateOrUpdate(ctx, class.ID, guest.ID, models.RSVPStatusNo)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.RSVPStatusNo, second.Status)

	var count int64
	require.NoError(t, db.Model(&models.RSVP{}).Where("class_id = ? AND user_id = ?", class.ID, guest.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateOrUpdateRSVPMissingClass(t *testing.T) {
	repos, _ := setupRepos(t)
	guest := createUser(t, repos, 222, "Bob")

	_, err := repos.RSVPs.CreateOrUpdate(context.Background(), 404, guest.ID, models.RSVPStatusYes)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrConstraintViolation))
}

func TestPurgeBefore(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()
	creator := createUser(t, repos, 111, "Ann")
	guest := createUser(t, repos, 222, "Bob")

	now := time.Now().UTC()
	old := createClass(t, repos, creator, "Old", now.Add(-72*time.Hour))
	createClass(t, repos, creator, "Upcoming", now.Add(72*time.Hour))
	_, err := repos.RSVPs.CreateOrUpdate(ctx, old.ID, guest.ID, models.RSVPStatusYes)
	require.NoError(t, err)

	purged, err := repos.Classes.PurgeBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	left, err := repos.Classes.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Upcoming", left[0].Topic)

	purged, err = repos.Classes.PurgeBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, purged)
}
