package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/disasteralert/disasteralert/internal/models"
	"github.com/disasteralert/disasteralert/internal/service"
)

// MemoryStore держит коллекцию в памяти процесса. Используется в тестах
// как взаимозаменяемая реализация RecordStore.
type MemoryStore struct {
	db *models.Database
}

// NewMemoryStore создает хранилище, инициализированное переданной коллекцией.
// При nil коллекция инициализируется стартовым набором данных.
func NewMemoryStore(db *models.Database) *MemoryStore {
	if db == nil {
		db = SeedDatabase(time.Now())
	}
	return &MemoryStore{db: db}
}

// Load возвращает глубокую копию коллекции: мутации до Save не видны хранилищу
func (s *MemoryStore) Load(context.Context) (*models.Database, error) {
	return copyDatabase(s.db)
}

// Save полностью замещает коллекцию
func (s *MemoryStore) Save(_ context.Context, db *models.Database) error {
	copied, err := copyDatabase(db)
	if err != nil {
		return err
	}
	s.db = copied
	return nil
}

func copyDatabase(db *models.Database) (*models.Database, error) {
	data, err := json.Marshal(db)
	if err != nil {
		return nil, fmt.Errorf("failed to copy database: %w", err)
	}
	copied := &models.Database{}
	if err := json.Unmarshal(data, copied); err != nil {
		return nil, fmt.Errorf("failed to copy database: %w", err)
	}
	if copied.Incidents == nil {
		copied.Incidents = []*models.Incident{}
	}
	if copied.Users == nil {
		copied.Users = []*models.User{}
	}
	return copied, nil
}

var _ service.RecordStore = (*MemoryStore)(nil)
