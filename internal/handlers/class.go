package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"tgclasses/internal/response"
	"tgclasses/internal/schemas"

	"github.com/gin-gonic/gin"
)

// ClassService описывает операции над занятиями, которые вызывают обработчики
type ClassService interface {
	CreateClass(ctx context.Context, req schemas.ClassCreateRequest) (*schemas.Class, error)
	ListClasses(ctx context.Context, offset, limit int) ([]schemas.Class, error)
	GetClass(ctx context.Context, classID uint) (*schemas.Class, error)
	RSVP(ctx context.Context, classID uint, req schemas.RsvpRequest) (*schemas.RSVP, error)
	AskQuestion(ctx context.Context, classID uint, req schemas.QuestionRequest) (*schemas.Question, error)
	UpdateClass(ctx context.Context, classID uint, req schemas.ClassUpdateRequest) (*schemas.Class, error)
	DeleteClass(ctx context.Context, classID uint, deleterTelegramID int64) (*schemas.Class, error)
}

// LiveFeed подписывает websocket-соединение на события занятия
type LiveFeed interface {
	Serve(w http.ResponseWriter, r *http.Request, classID uint)
}

type ClassHandler struct {
	svc    ClassService
	feed   LiveFeed
	logger *slog.Logger
}

func NewClassHandler(svc ClassService, feed LiveFeed, logger *slog.Logger) *ClassHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassHandler{svc: svc, feed: feed, logger: logger}
}

func parseClassID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("class_id"), 10, 64)
	if err != nil {
		invalidClassID(c)
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string, defaultValue int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return value, nil
}

// CreateClass создаёт занятие
// @Summary		Создание занятия
// @Description	Создаёт занятие. Создатель находится по telegram id или создаётся
// @Tags			classes
// @Accept			json
// @Produce		json
// @Param			input	body		schemas.ClassCreateRequest	true	"Данные занятия"
// @Success		200		{object}	schemas.Class
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/classes/ [post]
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req schemas.ClassCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	class, err := h.svc.CreateClass(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

// ListClasses возвращает страницу занятий
// @Summary		Список занятий
// @Description	Занятия по возрастанию id с создателем, RSVP и вопросами
// @Tags			classes
// @Produce		json
// @Param			skip	query		int	false	"Сколько пропустить"	default(0)
// @Param			limit	query		int	false	"Сколько вернуть"		default(100)
// @Success		200		{array}		schemas.Class
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/classes/ [get]
func (h *ClassHandler) ListClasses(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		badRequest(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 100)
	if err != nil {
		badRequest(c, err)
		return
	}

	classes, err := h.svc.ListClasses(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

// GetClass возвращает занятие
// @Summary		Получение занятия
// @Tags			classes
// @Produce		json
// @Param			class_id	path		int	true	"ID занятия"
// @Success		200			{object}	schemas.Class
// @Failure		400			{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_CLASS_ID)"
// @Failure		404			{object}	response.ErrorResponse	"Занятие не найдено (CLASS_NOT_FOUND)"
// @Router			/api/classes/{class_id} [get]
func (h *ClassHandler) GetClass(c *gin.Context) {
	classID, ok := parseClassID(c)
	if !ok {
		return
	}

	class, err := h.svc.GetClass(c.Request.Context(), classID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

// RSVP записывает ответ пользователя на занятие
// @Summary		Ответ на занятие
// @Description	Создаёт или обновляет единственный RSVP пользователя для занятия
// @Tags			classes
// @Accept			json
// @Produce		json
// @Param			class_id	path		int					true	"ID занятия"
// @Param			input		body		schemas.RsvpRequest	true	"Ответ"
// @Success		200			{object}	schemas.RSVP
// @Failure		400			{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_CLASS_ID)"
// @Failure		404			{object}	response.ErrorResponse	"Занятие не найдено (CLASS_NOT_FOUND)"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/classes/{class_id}/rsvp [post]
func (h *ClassHandler) RSVP(c *gin.Context) {
	classID, ok := parseClassID(c)
	if !ok {
		return
	}

	var req schemas.RsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rsvp, err := h.svc.RSVP(c.Request.Context(), classID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rsvp)
}

// AskQuestion добавляет вопрос к занятию
// @Summary		Вопрос к занятию
// @Tags			classes
// @Accept			json
// @Produce		json
// @Param			class_id	path		int						true	"ID занятия"
// @Param			input		body		schemas.QuestionRequest	true	"Вопрос"
// @Success		200			{object}	schemas.Question
// @Failure		400			{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_CLASS_ID)"
// @Failure		404			{object}	response.ErrorResponse	"Занятие не найдено (CLASS_NOT_FOUND)"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/classes/{class_id}/questions [post]
func (h *ClassHandler) AskQuestion(c *gin.Context) {
	classID, ok := parseClassID(c)
	if !ok {
		return
	}

	var req schemas.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	question, err := h.svc.AskQuestion(c.Request.Context(), classID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// UpdateClass частично обновляет занятие
// @Summary		Обновление занятия
// @Description	Меняет только переданные поля. Доступно только создателю
// @Tags			classes
// @Accept			json
// @Produce		json
// @Param			class_id	path		int							true	"ID занятия"
// @Param			input		body		schemas.ClassUpdateRequest	true	"Изменения"
// @Success		200			{object}	schemas.Class
// @Failure		400			{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_CLASS_ID)"
// @Failure		403			{object}	response.ErrorResponse	"Не создатель (FORBIDDEN)"
// @Failure		404			{object}	response.ErrorResponse	"Занятие не найдено (CLASS_NOT_FOUND)"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/classes/{class_id} [put]
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	classID, ok := parseClassID(c)
	if !ok {
		return
	}

	var req schemas.ClassUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	class, err := h.svc.UpdateClass(c.Request.Context(), classID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

// DeleteClass удаляет занятие вместе с RSVP и вопросами
// @Summary		Удаление занятия
// @Description	Доступно только создателю
// @Tags			classes
// @Produce		json
// @Param			class_id			path		int	true	"ID занятия"
// @Param			deleter_telegram_id	query		int	true	"Telegram id удаляющего"
// @Success		200					{object}	response.DeleteResponse
// @Failure		400					{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_CLASS_ID)"
// @Failure		403					{object}	response.ErrorResponse	"Не создатель (FORBIDDEN)"
// @Failure		404					{object}	response.ErrorResponse	"Занятие не найдено (CLASS_NOT_FOUND)"
// @Failure		500					{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/classes/{class_id} [delete]
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	classID, ok := parseClassID(c)
	if !ok {
		return
	}

	deleterID, err := strconv.ParseInt(c.Query("deleter_telegram_id"), 10, 64)
	if err != nil {
		badRequest(c, errors.New("deleter_telegram_id is required and must be an integer"))
		return
	}

	class, err := h.svc.DeleteClass(c.Request.Context(), classID, deleterID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.DeleteResponse{Status: "deleted", ClassID: class.ID})
}

// ClassFeed обновляет соединение до WebSocket и подписывает его на события занятия
// @Summary		События занятия
// @Description	rsvp_updated, question_asked, class_updated, class_deleted
// @Tags			classes
// @Param			class_id	path	int	true	"ID занятия"
// @Failure		400			{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_CLASS_ID)"
// @Router			/api/classes/{class_id}/ws [get]
func (h *ClassHandler) ClassFeed(c *gin.Context) {
	classID, ok := parseClassID(c)
	if !ok {
		return
	}
	h.feed.Serve(c.Writer, c.Request, classID)
}
