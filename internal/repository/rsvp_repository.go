package repository

import (
	"context"
	"log/slog"
	"tgclasses/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RSVPRepository хранит ответы пользователей на приглашение к занятию
type RSVPRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewRSVPRepository создаёт репозиторий RSVP
func NewRSVPRepository(db *gorm.DB, logger *slog.Logger) *RSVPRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RSVPRepository{db: db, logger: logger}
}

// CreateOrUpdate вставляет RSVP или перезаписывает статус существующей записи для пары (userID, classID).
// Конфликт разрешается самой базой по индексу idx_rsvp_user_class, поэтому параллельные вызовы не создают дублей.
func (r *RSVPRepository) CreateOrUpdate(ctx context.Context, classID, userID uint, status string) (*models.RSVP, error) {
	rsvp := models.RSVP{
		UserID:  userID,
		ClassID: classID,
		Status:  status,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "class_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&rsvp).Error
		if err != nil {
			return err
		}

		var stored models.RSVP
		if err := tx.Preload("User").
			Where("user_id = ? AND class_id = ?", userID, classID).
			First(&stored).Error; err != nil {
			return err
		}
		rsvp = stored
		return nil
	})
	if err != nil {
		return nil, wrap("create or update rsvp", err)
	}
	return &rsvp, nil
}
