package repository

import (
	"context"
	"errors"
	"log/slog"
	"tgclasses/internal/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// NewClass содержит поля создаваемого занятия
type NewClass struct {
	Topic       string
	Description string
	ClassTime   time.Time
}

// ClassChanges описывает частичное обновление: nil-поля не меняются
type ClassChanges struct {
	Topic       *string
	Description *string
	ClassTime   *time.Time
}

// Empty сообщает, что обновлять нечего
func (c ClassChanges) Empty() bool {
	return c.Topic == nil && c.Description == nil && c.ClassTime == nil
}

// ClassRepository управляет занятиями и их дочерними записями
type ClassRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewClassRepository создаёт репозиторий занятий
func NewClassRepository(db *gorm.DB, logger *slog.Logger) *ClassRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassRepository{db: db, logger: logger}
}

// withRelations подгружает создателя, RSVP с пользователями и вопросы с пользователями
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Creator").
		Preload("RSVPs", func(db *gorm.DB) *gorm.DB { return db.Order("rsvps.id ASC") }).
		Preload("RSVPs.User").
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id ASC") }).
		Preload("Questions.User")
}

// NormalizePage приводит offset/limit к допустимым значениям
func NormalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit
}

// List возвращает страницу занятий в порядке создания вместе со связанными записями
func (r *ClassRepository) List(ctx context.Context, offset, limit int) ([]models.Class, error) {
	offset, limit = NormalizePage(offset, limit)

	classes := make([]models.Class, 0)
	err := withRelations(r.db.WithContext(ctx)).
		Order("classes.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&classes).Error
	if err != nil {
		return nil, wrap("list classes", err)
	}
	return classes, nil
}

// Get возвращает занятие со связанными записями или nil
func (r *ClassRepository) Get(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	err := withRelations(r.db.WithContext(ctx)).First(&class, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get class", err)
	}
	return &class, nil
}

// Find возвращает только строку занятия, без связей, или nil
func (r *ClassRepository) Find(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	err := r.db.WithContext(ctx).First(&class, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("find class", err)
	}
	return &class, nil
}

// Create сохраняет занятие от имени creatorID
func (r *ClassRepository) Create(ctx context.Context, fields NewClass, creatorID uint) (*models.Class, error) {
	class := models.Class{
		Topic:       fields.Topic,
		Description: fields.Description,
		ClassTime:   fields.ClassTime.UTC(),
		CreatorID:   creatorID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&class).Error; err != nil {
			return err
		}
		return withRelations(tx).First(&class, class.ID).Error
	})
	if err != nil {
		return nil, wrap("create class", err)
	}
	return &class, nil
}

// Update применяет только заданные поля changes. Возвращает nil, если занятия нет.
func (r *ClassRepository) Update(ctx context.Context, id uint, changes ClassChanges) (*models.Class, error) {
	var class models.Class
	found := true

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&class, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return err
		}

		updates := map[string]interface{}{}
		if changes.Topic != nil {
			updates["topic"] = *changes.Topic
		}
		if changes.Description != nil {
			updates["description"] = *changes.Description
		}
		if changes.ClassTime != nil {
			updates["class_time"] = changes.ClassTime.UTC()
		}
		if len(updates) > 0 {
			if err := tx.Model(&class).Updates(updates).Error; err != nil {
				return err
			}
		}

		return withRelations(tx).First(&class, id).Error
	})
	if err != nil {
		return nil, wrap("update class", err)
	}
	if !found {
		return nil, nil
	}
	return &class, nil
}

// Delete удаляет занятие вместе с его RSVP и вопросами.
// Возвращает снимок удалённого занятия или nil, если его не было.
func (r *ClassRepository) Delete(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	found := true

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := withRelations(tx).First(&class, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return err
		}
		return deleteClasses(tx, []uint{id})
	})
	if err != nil {
		return nil, wrap("delete class", err)
	}
	if !found {
		return nil, nil
	}
	return &class, nil
}

// PurgeBefore удаляет занятия, прошедшие раньше cutoff, и возвращает их количество
func (r *ClassRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var ids []uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Class{}).Where("class_time < ?", cutoff.UTC()).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return deleteClasses(tx, ids)
	})
	if err != nil {
		return 0, wrap("purge classes", err)
	}
	return int64(len(ids)), nil
}

func deleteClasses(tx *gorm.DB, ids []uint) error {
	if err := tx.Where("class_id IN ?", ids).Delete(&models.RSVP{}).Error; err != nil {
		return err
	}
	if err := tx.Where("class_id IN ?", ids).Delete(&models.Question{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Class{}).Error
}
