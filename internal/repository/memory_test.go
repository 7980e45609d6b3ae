package repository

import (
	"context"
	"testing"

	"github.com/disasteralert/disasteralert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SeedsWhenNil(t *testing.T) {
	store := NewMemoryStore(nil)

	db, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, db.Incidents, 5)
	assert.Len(t, db.Users, 5)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(&models.Database{
		Incidents: []*models.Incident{{ID: "inc_1", Likes: 0}},
		Users:     []*models.User{},
	})

	db, err := store.Load(ctx)
	require.NoError(t, err)

	// Мутация загруженной копии не видна хранилищу без Save
	db.Incidents[0].Likes = 42

	fresh, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Incidents[0].Likes)
}

func TestMemoryStore_SaveFullyReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil)

	err := store.Save(ctx, &models.Database{
		Incidents: []*models.Incident{{ID: "inc_only"}},
		Users:     []*models.User{},
	})
	require.NoError(t, err)

	db, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, db.Incidents, 1)
	assert.Equal(t, "inc_only", db.Incidents[0].ID)
	assert.Empty(t, db.Users)
}
