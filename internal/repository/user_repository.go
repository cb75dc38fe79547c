package repository

import (
	"context"
	"errors"
	"log/slog"
	"tgclasses/internal/models"

	"gorm.io/gorm"
)

// UserRepository читает и создаёт пользователей
type UserRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserRepository создаёт репозиторий пользователей
func NewUserRepository(db *gorm.DB, logger *slog.Logger) *UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{db: db, logger: logger}
}

// Get возвращает пользователя по внутреннему id или nil, если его нет
func (r *UserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get user", err)
	}
	return &user, nil
}

// GetByTelegramID возвращает пользователя по внешнему идентификатору или nil
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get user by telegram id", err)
	}
	return &user, nil
}

// Create сохраняет нового пользователя. Повторный telegram_id даёт ErrConstraintViolation.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Omit("Classes", "RSVPs", "Questions").Create(user).Error; err != nil {
		r.logger.Warn("failed to create user",
			slog.Int64("telegram_id", user.TelegramID),
			slog.String("error", err.Error()),
		)
		return nil, wrap("create user", err)
	}
	return user, nil
}
