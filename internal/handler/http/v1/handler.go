package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/disasteralert/disasteralert/internal/config"
	"github.com/disasteralert/disasteralert/internal/models"
	"github.com/disasteralert/disasteralert/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// respondError выбирает HTTP-статус по таксономии ошибок сервиса:
// валидация -> 400, не найдено -> 404, все остальное -> 500
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrIncidentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Request failed with internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary List incidents
// @Description Get incidents, optionally filtered by category, status, free-text query and activity.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param category query string false "Exact category match"
// @Param status query string false "Exact status match"
// @Param q query string false "Case-insensitive substring over title/description/location"
// @Param onlyActive query string false "When 'true', excludes resolved incidents"
// @Success 200 {array} IncidentResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	filter := models.IncidentFilter{
		Category:   c.Query("category"),
		Status:     c.Query("status"),
		Query:      c.Query("q"),
		OnlyActive: c.Query("onlyActive") == "true",
	}

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Create a new incident
// @Description Report a new incident. Title, description, location and category are required.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidentService.CreateIncident(c.Request.Context(), DTOToNewIncident(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Update incident status
// @Description Set the incident status to any value of the fixed set (case-insensitive). Transitions are unrestricted.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param status body UpdateStatusRequest true "Status update request"
// @Success 200 {object} StatusUpdateResponse
// @Failure 400 {object} map[string]string "Missing or invalid status"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/status [put]
func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "updateStatus").WithField("id", id)

	var input UpdateStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.incidentService.UpdateStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, StatusUpdateResponse{Success: true, ID: id, Status: status})
}

// @Summary Add a comment to an incident
// @Description Append a comment to the incident's comment sequence. Author defaults to "anonymous".
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param comment body AddCommentRequest true "Comment request"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} map[string]string "Missing text"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/comment [post]
func (h *Handler) addComment(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "addComment").WithField("id", id)

	var input AddCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.incidentService.AddComment(c.Request.Context(), id, input.Author, input.Text)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToCommentResponse(*comment))
}

// @Summary Like an incident
// @Description Increment the incident's like counter by one. Not idempotent.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} LikeResponse
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/like [post]
func (h *Handler) likeIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "likeIncident").WithField("id", id)

	likes, err := h.incidentService.LikeIncident(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, LikeResponse{Success: true, Likes: likes})
}

// @Summary Delete an incident
// @Description Remove the incident from the collection entirely.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} DeleteResponse
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	if err := h.incidentService.DeleteIncident(c.Request.Context(), id); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Success: true})
}

// @Summary List a user's incidents
// @Description Get all incidents reported by the given user, newest first.
// @Tags Users
// @Accept json
// @Produce json
// @Param userId path string true "Reporter user ID"
// @Success 200 {array} IncidentResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/{userId}/incidents [get]
func (h *Handler) listUserIncidents(c *gin.Context) {
	userID := c.Param("userId")
	log := h.logger.WithField("method", "listUserIncidents").WithField("user_id", userID)

	incidents, err := h.incidentService.ListByReporter(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get analytics
// @Description Total incident count plus per-category and per-status counts, computed fresh.
// @Tags Analytics
// @Accept json
// @Produce json
// @Success 200 {object} AnalyticsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics [get]
func (h *Handler) getAnalytics(c *gin.Context) {
	log := h.logger.WithField("method", "getAnalytics")

	analytics, err := h.incidentService.GetAnalytics(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAnalyticsResponse(analytics))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// @Summary Ping
// @Description Quick availability probe with server time in unix milliseconds
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{OK: true, Time: time.Now().UnixMilli()})
}

// @Summary API root
// @Description Human-readable liveness message
// @Tags System
// @Produce plain
// @Success 200 {string} string "DisasterAlert API is running."
// @Router / [get]
func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "DisasterAlert API is running.")
}
