package models

import (
	"time"
)

// Статусы RSVP
const (
	RSVPStatusYes       = "yes"
	RSVPStatusNo        = "no"
	RSVPStatusTentative = "tentative"
)

// ValidRSVPStatus сообщает, является ли s допустимым статусом RSVP
func ValidRSVPStatus(s string) bool {
	switch s {
	case RSVPStatusYes, RSVPStatusNo, RSVPStatusTentative:
		return true
	}
	return false
}

type User struct {
	ID         uint   `gorm:"primaryKey"`
	TelegramID int64  `gorm:"uniqueIndex;not null"` // Идентификатор пользователя в Telegram
	FirstName  string `gorm:"size:255;not null"`
	LastName   string `gorm:"size:255"`
	Username   string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Classes   []Class    `gorm:"foreignKey:CreatorID"`
	RSVPs     []RSVP     `gorm:"foreignKey:UserID"`
	Questions []Question `gorm:"foreignKey:UserID"`
}

type Class struct {
	ID          uint      `gorm:"primaryKey"`
	Topic       string    `gorm:"size:255;index;not null"`
	Description string    `gorm:"type:text"`
	ClassTime   time.Time `gorm:"index;not null"`
	CreatorID   uint      `gorm:"index;not null"`
	Creator     User      `gorm:"foreignKey:CreatorID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	RSVPs     []RSVP     `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"`
	Questions []Question `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"`
}

// RSVP хранит намерение пользователя посетить занятие. На пару (user, class) допускается одна запись.
type RSVP struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_rsvp_user_class"`
	User      User   `gorm:"foreignKey:UserID"`
	ClassID   uint   `gorm:"not null;uniqueIndex:idx_rsvp_user_class;index"`
	Status    string `gorm:"size:50;not null"` // "yes", "no", "tentative"
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RSVP) TableName() string {
	return "rsvps"
}

type Question struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	User      User   `gorm:"foreignKey:UserID"`
	ClassID   uint   `gorm:"index;not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// All перечисляет модели в порядке миграции
func All() []interface{} {
	return []interface{}{&User{}, &Class{}, &RSVP{}, &Question{}}
}
