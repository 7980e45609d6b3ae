package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/disasteralert/disasteralert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Load_SeedsOnFirstUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	store := NewFileStore(path)

	db, err := store.Load(context.Background())

	require.NoError(t, err)
	// Стартовый набор: 5 инцидентов по 5 категориям, все 4 статуса, 5 пользователей
	assert.Len(t, db.Incidents, 5)
	assert.Len(t, db.Users, 5)

	categories := make(map[string]bool)
	statuses := make(map[string]bool)
	for _, inc := range db.Incidents {
		categories[inc.Category] = true
		statuses[inc.Status] = true
	}
	assert.Len(t, categories, 5)
	assert.Len(t, statuses, 4)

	// Файл создан при инициализации
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestFileStore_Load_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	err := os.WriteFile(path, []byte(`{"incidents":[{"id":"inc_1","title":"Fire"}],"users":[]}`), 0o644)
	require.NoError(t, err)

	store := NewFileStore(path)
	db, err := store.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, db.Incidents, 1)
	assert.Equal(t, "inc_1", db.Incidents[0].ID)
	// Существующий файл не перезаписывается стартовыми данными
	assert.Empty(t, db.Users)
}

func TestFileStore_Save_FullyReplaces(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")
	store := NewFileStore(path)

	_, err := store.Load(ctx) // инициализация стартовыми данными
	require.NoError(t, err)

	replacement := &models.Database{
		Incidents: []*models.Incident{{ID: "inc_only", Title: "Only one", Comments: []models.Comment{}}},
		Users:     []*models.User{},
	}
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, replacement))

	db, err := store.Load(ctx)
	require.NoError(t, err)
	// Сохранение полностью замещает прежнее содержимое
	require.Len(t, db.Incidents, 1)
	assert.Equal(t, "inc_only", db.Incidents[0].ID)
	assert.Empty(t, db.Users)
}

func TestFileStore_Save_PrettyPrinted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(ctx, &models.Database{
		Incidents: []*models.Incident{},
		Users:     []*models.User{},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"incidents\"")
}

func TestFileStore_Save_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "db.json"))

	require.NoError(t, store.Save(ctx, &models.Database{
		Incidents: []*models.Incident{},
		Users:     []*models.User{},
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "db.json", entries[0].Name())
}
