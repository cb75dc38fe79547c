package service

import "errors"

// Ошибки уровня сервиса
var (
	// Занятие не найдено
	ErrNotFound = errors.New("class not found")
	// Пользователь не является создателем занятия
	ErrForbidden = errors.New("not the class creator")
	// Запрос не прошёл проверку
	ErrValidation = errors.New("validation failed")
)
