package service

import (
	"github.com/google/uuid"
)

// IDGenerator определяет контракт генерации непрозрачных идентификаторов.
// Выносится в интерфейс, чтобы в тестах использовать детерминированные id.
type IDGenerator interface {
	IncidentID() string
	CommentID() string
}

type uuidGenerator struct{}

// NewUUIDGenerator возвращает генератор id на основе UUID
// с префиксами inc_/c_ исторического формата хранилища.
func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) IncidentID() string {
	return "inc_" + uuid.NewString()
}

func (uuidGenerator) CommentID() string {
	return "c_" + uuid.NewString()
}
