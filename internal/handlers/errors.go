package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"tgclasses/internal/middleware"
	"tgclasses/internal/models"
	"tgclasses/internal/response"
	"tgclasses/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators добавляет в валидатор gin тег rsvpstatus и имена полей из json-тегов.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("rsvpstatus", func(fl validator.FieldLevel) bool {
			return models.ValidRSVPStatus(fl.Field().String())
		})
	})
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "rsvpstatus":
		return fmt.Sprintf("%s must be one of: yes no tentative", field)
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}

func validationDetails(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, msgForTag(fe))
	}
	return strings.Join(messages, "; ")
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    response.CodeValidation,
		Message: "Ошибка валидации данных",
		Details: validationDetails(err),
	})
}

func invalidClassID(c *gin.Context) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    response.CodeInvalidClassID,
		Message: "Неверный идентификатор занятия",
	})
}

// writeError переводит ошибку сервиса в HTTP-ответ. Неожиданные ошибки логируются,
// но клиенту их текст не отдаётся.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeClassNotFound,
			Message: "Занятие не найдено",
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    response.CodeForbidden,
			Message: "Изменять занятие может только его создатель",
		})
	default:
		_ = c.Error(err)
		logger.Error("request failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "Внутренняя ошибка сервера",
		})
	}
}
