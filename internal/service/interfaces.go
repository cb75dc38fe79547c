package service

import (
	"context"
	"tgclasses/internal/models"
	"tgclasses/internal/repository"
	"tgclasses/internal/schemas"
)

// UserStore ищет и создаёт пользователей
type UserStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// ClassStore читает и изменяет занятия
type ClassStore interface {
	List(ctx context.Context, offset, limit int) ([]models.Class, error)
	Get(ctx context.Context, id uint) (*models.Class, error)
	Find(ctx context.Context, id uint) (*models.Class, error)
	Create(ctx context.Context, fields repository.NewClass, creatorID uint) (*models.Class, error)
	Update(ctx context.Context, id uint, changes repository.ClassChanges) (*models.Class, error)
	Delete(ctx context.Context, id uint) (*models.Class, error)
}

// RSVPStore сохраняет RSVP
type RSVPStore interface {
	CreateOrUpdate(ctx context.Context, classID, userID uint, status string) (*models.RSVP, error)
}

// QuestionStore сохраняет вопросы
type QuestionStore interface {
	Create(ctx context.Context, classID, userID uint, text string) (*models.Question, error)
}

// ListCache кэширует страницы списка занятий. Get возвращает версию кэша на момент чтения,
// Set сохраняет страницу именно под ней.
type ListCache interface {
	Get(ctx context.Context, offset, limit int) ([]schemas.Class, int64, bool)
	Set(ctx context.Context, version int64, offset, limit int, classes []schemas.Class)
	Invalidate(ctx context.Context)
}

// Notifier рассылает события по занятию подписчикам
type Notifier interface {
	Notify(classID uint, eventType string, payload interface{})
}

// Ensure repositories satisfy the store interfaces
var (
	_ UserStore     = (*repository.UserRepository)(nil)
	_ ClassStore    = (*repository.ClassRepository)(nil)
	_ RSVPStore     = (*repository.RSVPRepository)(nil)
	_ QuestionStore = (*repository.QuestionRepository)(nil)
)

type noopCache struct{}

func (noopCache) Get(context.Context, int, int) ([]schemas.Class, int64, bool) { return nil, -1, false }
func (noopCache) Set(context.Context, int64, int, int, []schemas.Class)        {}
func (noopCache) Invalidate(context.Context)                                   {}

type noopNotifier struct{}

func (noopNotifier) Notify(uint, string, interface{}) {}
