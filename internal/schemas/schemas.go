package schemas

import (
	"bytes"
	"encoding/json"
	"tgclasses/internal/models"
	"time"
)

// User публично представляет пользователя
type User struct {
	ID         uint   `json:"id" example:"1"`
	TelegramID int64  `json:"telegram_id" example:"111"`
	FirstName  string `json:"first_name" example:"Анна"`
	LastName   string `json:"last_name,omitempty"`
	Username   string `json:"username,omitempty"`
}

// Question содержит вопрос к занятию вместе с автором
type Question struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ClassID   uint      `json:"class_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"user"`
}

// RSVP представляет ответ пользователя на занятие
type RSVP struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ClassID   uint      `json:"class_id"`
	Status    string    `json:"status" example:"yes"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `json:"user"`
}

// Class представляет занятие с создателем, RSVP и вопросами
type Class struct {
	ID          uint       `json:"id"`
	Topic       string     `json:"topic" example:"Intro"`
	Description string     `json:"description"`
	ClassTime   time.Time  `json:"class_time"`
	CreatorID   uint       `json:"creator_id"`
	Creator     User       `json:"creator"`
	RSVPs       []RSVP     `json:"rsvps"`
	Questions   []Question `json:"questions"`
}

// ClassCreateRequest описывает запрос на создание занятия. Создатель ищется или создаётся по telegram id.
type ClassCreateRequest struct {
	Topic             string    `json:"topic" binding:"required"`
	Description       string    `json:"description"`
	ClassTime         time.Time `json:"class_time" binding:"required"`
	CreatorTelegramID int64     `json:"creator_telegram_id" binding:"required"`
	CreatorFirstName  string    `json:"creator_first_name" binding:"required"`
	CreatorLastName   string    `json:"creator_last_name,omitempty"`
	CreatorUsername   string    `json:"creator_username,omitempty"`
}

// ClassUpdate описывает частичное обновление; отсутствующие поля не меняются
type ClassUpdate struct {
	Topic       Optional[string]    `json:"topic,omitzero" swaggertype:"string"`
	Description Optional[string]    `json:"description,omitzero" swaggertype:"string"`
	ClassTime   Optional[time.Time] `json:"class_time,omitzero" swaggertype:"string" format:"date-time"`
}

// ClassUpdateRequest: обновление от имени updater_telegram_id.
// update_data хранится как есть и разбирается через Changes после проверки прав.
type ClassUpdateRequest struct {
	UpdaterTelegramID int64           `json:"updater_telegram_id" binding:"required"`
	UpdateData        json.RawMessage `json:"update_data"`
}

// Changes разбирает update_data. Отсутствующий или null update_data означает пустое обновление.
func (r ClassUpdateRequest) Changes() (ClassUpdate, error) {
	var update ClassUpdate
	if len(bytes.TrimSpace(r.UpdateData)) == 0 {
		return update, nil
	}
	if err := json.Unmarshal(r.UpdateData, &update); err != nil {
		return ClassUpdate{}, err
	}
	return update, nil
}

// RsvpRequest: ответ на занятие от имени telegram_id
type RsvpRequest struct {
	TelegramID int64  `json:"telegram_id" binding:"required"`
	Status     string `json:"status" binding:"required,rsvpstatus" example:"yes"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name,omitempty"`
	Username   string `json:"username,omitempty"`
}

// QuestionRequest: вопрос к занятию от имени telegram_id
type QuestionRequest struct {
	TelegramID int64  `json:"telegram_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name,omitempty"`
	Username   string `json:"username,omitempty"`
}

func NewUser(u models.User) User {
	return User{
		ID:         u.ID,
		TelegramID: u.TelegramID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Username:   u.Username,
	}
}

func NewRSVP(r models.RSVP) RSVP {
	return RSVP{
		ID:        r.ID,
		UserID:    r.UserID,
		ClassID:   r.ClassID,
		Status:    r.Status,
		UpdatedAt: r.UpdatedAt,
		User:      NewUser(r.User),
	}
}

func NewQuestion(q models.Question) Question {
	return Question{
		ID:        q.ID,
		UserID:    q.UserID,
		ClassID:   q.ClassID,
		Text:      q.Text,
		CreatedAt: q.CreatedAt,
		User:      NewUser(q.User),
	}
}

// NewClass переводит модель в ответ; пустые списки сериализуются как []
func NewClass(c models.Class) Class {
	rsvps := make([]RSVP, 0, len(c.RSVPs))
	for _, r := range c.RSVPs {
		rsvps = append(rsvps, NewRSVP(r))
	}
	questions := make([]Question, 0, len(c.Questions))
	for _, q := range c.Questions {
		questions = append(questions, NewQuestion(q))
	}

	return Class{
		ID:          c.ID,
		Topic:       c.Topic,
		Description: c.Description,
		ClassTime:   c.ClassTime,
		CreatorID:   c.CreatorID,
		Creator:     NewUser(c.Creator),
		RSVPs:       rsvps,
		Questions:   questions,
	}
}

func NewClasses(classes []models.Class) []Class {
	out := make([]Class, 0, len(classes))
	for _, c := range classes {
		out = append(out, NewClass(c))
	}
	return out
}
