package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/disasteralert/disasteralert/internal/models"
	"github.com/disasteralert/disasteralert/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore - реляционный вариант хранилища: пара плоских таблиц
// incidents/users без внешних ключей и индексов сверх первичного ключа.
// Комментарии лежат в колонке jsonb, чтобы таблица оставалась плоской.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore создает хранилище и однократно записывает стартовый
// набор данных, если таблицы пусты
func NewPostgresStore(ctx context.Context, db *pgxpool.Pool) (service.RecordStore, error) {
	store := &PostgresStore{db: db}

	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM incidents;`).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count incidents: %w", err)
	}
	if count == 0 {
		if err := store.Save(ctx, SeedDatabase(time.Now())); err != nil {
			return nil, fmt.Errorf("failed to seed postgres store: %w", err)
		}
	}
	return store, nil
}

// Load возвращает всю коллекцию целиком
func (s *PostgresStore) Load(ctx context.Context) (*models.Database, error) {
	incidents, err := s.loadIncidents(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Database{Incidents: incidents, Users: users}, nil
}

// Save полностью замещает содержимое обеих таблиц
func (s *PostgresStore) Save(ctx context.Context, db *models.Database) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM incidents;`)
	batch.Queue(`DELETE FROM users;`)

	for _, inc := range db.Incidents {
		comments, err := json.Marshal(inc.Comments)
		if err != nil {
			return fmt.Errorf("failed to marshal comments for incident %s: %w", inc.ID, err)
		}
		batch.Queue(`
			INSERT INTO incidents (id, title, description, location, category, image_url, reporter_id, status, comments, likes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`,
			inc.ID,
			inc.Title,
			inc.Description,
			inc.Location,
			inc.Category,
			inc.ImageURL,
			inc.ReporterID,
			inc.Status,
			comments,
			inc.Likes,
			inc.CreatedAt,
		)
	}
	for _, u := range db.Users {
		batch.Queue(`INSERT INTO users (id, name) VALUES ($1, $2);`, u.ID, u.Name)
	}

	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

func (s *PostgresStore) loadIncidents(ctx context.Context) ([]*models.Incident, error) {
	query := `
		SELECT
			id,
			title,
			description,
			location,
			category,
			image_url,
			reporter_id,
			status,
			comments,
			likes,
			created_at
		FROM incidents
		ORDER BY created_at DESC;
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident := &models.Incident{}
		var comments []byte
		err := rows.Scan(
			&incident.ID,
			&incident.Title,
			&incident.Description,
			&incident.Location,
			&incident.Category,
			&incident.ImageURL,
			&incident.ReporterID,
			&incident.Status,
			&comments,
			&incident.Likes,
			&incident.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		if err := json.Unmarshal(comments, &incident.Comments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal comments for incident %s: %w", incident.ID, err)
		}
		if incident.Comments == nil {
			incident.Comments = []models.Comment{}
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error incidents iteration: %w", err)
	}
	return incidents, nil
}

func (s *PostgresStore) loadUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM users;`)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error users iteration: %w", err)
	}
	return users, nil
}
