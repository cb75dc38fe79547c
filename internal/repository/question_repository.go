package repository

import (
	"context"
	"log/slog"
	"tgclasses/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionRepository сохраняет вопросы к занятиям
type QuestionRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewQuestionRepository(db *gorm.DB, logger *slog.Logger) *QuestionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionRepository{db: db, logger: logger}
}

// Create добавляет вопрос пользователя к занятию
func (r *QuestionRepository) Create(ctx context.Context, classID, userID uint, text string) (*models.Question, error) {
	question := models.Question{
		UserID:  userID,
		ClassID: classID,
		Text:    text,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&question).Error; err != nil {
			return err
		}
		return tx.Preload("User").First(&question, question.ID).Error
	})
	if err != nil {
		return nil, wrap("create question", err)
	}
	return &question, nil
}
