package repository

import (
	"log/slog"

	"gorm.io/gorm"
)

// Repositories собирает репозитории поверх одного подключения
type Repositories struct {
	Users     *UserRepository
	Classes   *ClassRepository
	RSVPs     *RSVPRepository
	Questions *QuestionRepository
}

func New(db *gorm.DB, logger *slog.Logger) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db, logger),
		Classes:   NewClassRepository(db, logger),
		RSVPs:     NewRSVPRepository(db, logger),
		Questions: NewQuestionRepository(db, logger),
	}
}
