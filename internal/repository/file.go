package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/disasteralert/disasteralert/internal/models"
	"github.com/disasteralert/disasteralert/internal/service"
)

// FileStore хранит всю коллекцию в одном JSON-документе на диске.
// Каждый Load читает файл целиком, каждый Save полностью его замещает.
type FileStore struct {
	path string
}

func NewFileStore(path string) service.RecordStore {
	return &FileStore{path: path}
}

// Load возвращает текущую коллекцию. Отсутствующий файл не ошибка:
// хранилище инициализируется стартовым набором данных.
func (s *FileStore) Load(ctx context.Context) (*models.Database, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read store file: %w", err)
		}
		seed := SeedDatabase(time.Now())
		if err := s.Save(ctx, seed); err != nil {
			return nil, fmt.Errorf("failed to initialize store file: %w", err)
		}
		return seed, nil
	}

	db := &models.Database{}
	if err := json.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("failed to unmarshal store file: %w", err)
	}
	if db.Incidents == nil {
		db.Incidents = []*models.Incident{}
	}
	if db.Users == nil {
		db.Users = []*models.User{}
	}
	return db, nil
}

// Save сохраняет коллекцию атомарно: запись во временный файл и переименование,
// чтобы падение процесса посреди записи не испортило документ
func (s *FileStore) Save(_ context.Context, db *models.Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
