package service

import "errors"

// Ошибки бизнес-логики. Хендлеры различают их через errors.Is
// для выбора HTTP-статуса: валидация -> 400, не найдено -> 404.
var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrValidation       = errors.New("validation failed")
)
