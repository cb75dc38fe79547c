package response

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: status must be one of: yes no tentative
	Details string `json:"details,omitempty"`
}

// DeleteResponse подтверждает удаление занятия
type DeleteResponse struct {
	Status  string `json:"status" example:"deleted"`
	ClassID uint   `json:"class_id" example:"1"`
}

// HealthResponse показывает состояние сервиса и его зависимостей
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
	Cache    string `json:"cache,omitempty" example:"ok"`
}

// Коды ошибок
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeInvalidClassID = "INVALID_CLASS_ID"
	CodeClassNotFound  = "CLASS_NOT_FOUND"
	CodeForbidden      = "FORBIDDEN"
	CodeDB             = "DB_ERROR"
)
