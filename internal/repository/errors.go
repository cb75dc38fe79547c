package repository

import (
	"errors"
	"fmt"
	"tgclasses/internal/storage"
)

// ErrConstraintViolation возвращается, когда хранилище отклонило запись из-за
// уникального ключа или внешнего ключа
var ErrConstraintViolation = errors.New("constraint violation")

// wrap оборачивает ошибку хранилища, выделяя нарушения ограничений в отдельный вид
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if storage.IsConstraintViolation(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrConstraintViolation, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
