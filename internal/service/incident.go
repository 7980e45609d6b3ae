package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disasteralert/disasteralert/internal/config"
	"github.com/disasteralert/disasteralert/internal/models"
	"github.com/disasteralert/disasteralert/internal/webhook"
	"github.com/sirupsen/logrus"
)

// RecordStore определяет контракт хранилища: вся коллекция инцидентов
// и пользователей загружается и сохраняется как единое целое.
// Save полностью замещает прежнее содержимое, без частичного слияния.
type RecordStore interface {
	Load(ctx context.Context) (*models.Database, error)
	Save(ctx context.Context, db *models.Database) error
}

// IncidentService определяет контракт бизнес-логики управления инцидентами
type IncidentService interface {
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	CreateIncident(ctx context.Context, input models.NewIncident) (*models.Incident, error)
	GetIncident(ctx context.Context, id string) (*models.Incident, error)
	UpdateStatus(ctx context.Context, id, status string) (string, error)
	AddComment(ctx context.Context, id, author, text string) (*models.Comment, error)
	LikeIncident(ctx context.Context, id string) (int, error)
	DeleteIncident(ctx context.Context, id string) error
	ListByReporter(ctx context.Context, reporterID string) ([]*models.Incident, error)
	GetAnalytics(ctx context.Context) (*models.Analytics, error)
}

type incidentService struct {
	store     RecordStore
	ids       IDGenerator
	logger    *logrus.Logger
	cfg       *config.Config
	publisher webhook.Publisher
	now       func() time.Time
}

func NewIncidentService(store RecordStore, ids IDGenerator, logger *logrus.Logger, cfg *config.Config, publisher webhook.Publisher) IncidentService {
	return &incidentService{
		store:     store,
		ids:       ids,
		logger:    logger,
		cfg:       cfg,
		publisher: publisher,
		now:       time.Now,
	}
}

// ListIncidents возвращает отфильтрованный список инцидентов, новые первыми
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
	})

	db, err := s.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load record store")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	incidents := FilterIncidents(db.Incidents, filter)
	log.WithField("count", len(incidents)).Debug("Incidents listed")
	return incidents, nil
}

// CreateIncident создает инцидент и при необходимости синтезирует пользователя-репортера
func (s *incidentService) CreateIncident(ctx context.Context, input models.NewIncident) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateIncident",
		"title":   input.Title,
	})
	log.Info("Attempting to create a new incident")

	if err := validateNewIncident(input); err != nil {
		log.WithError(err).Warn("Incident validation failed")
		return nil, err
	}

	db, err := s.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load record store")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}

	reporterID := input.ReporterID
	incident := &models.Incident{
		ID:          s.ids.IncidentID(),
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Category:    strings.ToLower(input.Category),
		ImageURL:    input.ImageURL,
		ReporterID:  reporterID,
		Status:      models.StatusReported,
		Comments:    []models.Comment{},
		Likes:       0,
		CreatedAt:   s.now(),
	}
	if incident.ReporterID == "" {
		incident.ReporterID = "anonymous"
	}

	db.Incidents = append(db.Incidents, incident)

	// Пользователь синтезируется только при явно переданном reporterId
	if reporterID != "" && !userExists(db.Users, reporterID) {
		db.Users = append(db.Users, &models.User{ID: reporterID, Name: reporterID})
	}

	if err := s.store.Save(ctx, db); err != nil {
		log.WithError(err).Error("Failed to save record store")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}

	s.publish(ctx, log, webhook.Event{
		Type:      webhook.EventIncidentCreated,
		Incident:  incident,
		Timestamp: s.now(),
	})

	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	return incident, nil
}

// GetIncident получает инцидент по ID
func (s *incidentService) GetIncident(ctx context.Context, id string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	db, err := s.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load record store")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	incident := findIncident(db.Incidents, id)
	if incident == nil {
		log.Warn("Incident not found")
		return nil, ErrIncidentNotFound
	}
	return incident, nil
}

// UpdateStatus устанавливает новый статус инцидента. Переходы между статусами
// не ограничены: допустимо любое значение из фиксированного набора.
func (s *incidentService) UpdateStatus(ctx context.Context, id, status string) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateStatus",
		"incident_id": id,
		"status":      status,
	})
	log.Info("Attempting to update incident status")

	if status == "" {
		return "", fmt.Errorf("%w: status required", ErrValidation)
	}
	normalized := strings.ToLower(status)
	if !models.IsValidStatus(normalized) {
		log.Warn("Invalid status value")
		return "", ErrInvalidStatus
	}

	db, err := s.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load record store")
		return "", fmt.Errorf("service: could not update status: %w", err)
	}

	incident := findIncident(db.Incidents, id)
	if incident == nil {
		log.Warn("Attempted to update status of a non-existent incident")
		return "", ErrIncidentNotFound
	}

	incident.Status = normalized
	if err := s.store.Save(ctx, db); err != nil {
		log.WithError(err).Error("Failed to save record store")
		return "", fmt.Errorf("service: could not update status: %w", err)
	}

	s.publish(ctx, log, webhook.Event{
		Type:      webhook.EventStatusChanged,
		Incident:  incident,
		Timestamp: s.now(),
	})

	log.Info("Incident status updated successfully")
	return normalized, nil
}

// AddComment добавляет комментарий в конец последовательности комментариев инцидента
func (s *incidentService) AddComment(ctx context.Context, id, author, text string) (*models.Comment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "AddComment",
		"incident_id": id,
	})

	if text == "" {
		return nil, fmt.Errorf("%w: text required", ErrValidation)
	}
	if author == "" {
		author = "anonymous"
	}

	db, err := s.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load record store")
		return nil, fmt.Errorf("service: could not add comment: %w", err)
	}

	incident := findIncident(db.Incidents, id)
	if incident == nil {
		log.Warn("Attempted to comment on a non-existent incident")
		return nil, ErrIncidentNotFound
	}

	comment := models.Comment{
		ID:        s.ids.CommentID(),
		Author:    author,
		Text:      text,
		Timestamp: s.now(),
	}
	incident.Comments = append(incident.Comments, comment)

	if err := s.store.Save(ctx, db); err != nil {
		log.WithError(err).Error("Failed to save record store")
		return nil, fmt.Errorf("service: could not add comment: %w", err)
	}

	log.WithField("comment_id", comment.ID).Info("Comment added successfully")
	return &comment, nil
}

// LikeIncident увеличивает счетчик лайков ровно на единицу.
// Операция не идемпотентна: повторные вызовы накапливаются, дедупликации нет.
func (s *incidentService) LikeIncident(ctx context.Context, id string) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "LikeIncident",
		"incident_id": id,
	})

	db, err := s.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load record store")
		return 0, fmt.Errorf("service: could not like incident: %w", err)
	}

	incident := findIncident(db.Incidents, id)
	if incident == nil {
		log.Warn("Attempted to like a non-existent incident")
		return 0, ErrIncidentNotFound
	}

	incident.Likes++
	if err := s.store.Save(ctx, db); err != nil {
		log.WithError(err).Error("Failed to save record store")
		return 0, fmt.Errorf("service: could not like incident: %w", err)
	}

	return incident.Likes, nil
}

// DeleteIncident полностью удаляет инцидент из коллекции
func (s *incidentService) DeleteIncident(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
	})
	log.Info("Attempting to delete incident")

	db, err := s.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load record store")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}

	idx := -1
	for i, inc := range db.Incidents {
		if inc.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		log.Warn("Attempted to delete a non-existent incident")
		return ErrIncidentNotFound
	}

	db.Incidents = append(db.Incidents[:idx], db.Incidents[idx+1:]...)
	if err := s.store.Save(ctx, db); err != nil {
		log.WithError(err).Error("Failed to save record store")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}

	log.Info("Incident deleted successfully")
	return nil
}

// ListByReporter возвращает все инциденты указанного репортера, новые первыми
func (s *incidentService) ListByReporter(ctx context.Context, reporterID string) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "ListByReporter",
		"reporter_id": reporterID,
	})

	db, err := s.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load record store")
		return nil, fmt.Errorf("service: could not list incidents by reporter: %w", err)
	}

	incidents := make([]*models.Incident, 0)
	for _, inc := range db.Incidents {
		if inc.ReporterID == reporterID {
			incidents = append(incidents, inc)
		}
	}
	sortNewestFirst(incidents)
	return incidents, nil
}

// GetAnalytics считает сводку по всей коллекции заново на каждый вызов
func (s *incidentService) GetAnalytics(ctx context.Context) (*models.Analytics, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "GetAnalytics",
	})

	db, err := s.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load record store")
		return nil, fmt.Errorf("service: could not compute analytics: %w", err)
	}

	analytics := &models.Analytics{
		Total:      len(db.Incidents),
		ByCategory: make(map[string]int),
		ByStatus:   make(map[string]int),
	}
	for _, inc := range db.Incidents {
		analytics.ByCategory[inc.Category]++
		analytics.ByStatus[inc.Status]++
	}
	return analytics, nil
}

// publish отправляет событие вебхука; ошибка публикации не срывает запрос
func (s *incidentService) publish(ctx context.Context, log *logrus.Entry, event webhook.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish webhook event")
	}
}

func validateNewIncident(input models.NewIncident) error {
	switch {
	case input.Title == "":
		return fmt.Errorf("%w: title required", ErrValidation)
	case input.Description == "":
		return fmt.Errorf("%w: description required", ErrValidation)
	case input.Location == "":
		return fmt.Errorf("%w: location required", ErrValidation)
	case input.Category == "":
		return fmt.Errorf("%w: category required", ErrValidation)
	}
	return nil
}

func findIncident(incidents []*models.Incident, id string) *models.Incident {
	for _, inc := range incidents {
		if inc.ID == id {
			return inc
		}
	}
	return nil
}

func userExists(users []*models.User, id string) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}
