package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/disasteralert/disasteralert/internal/config"
	"github.com/disasteralert/disasteralert/internal/models"
	"github.com/disasteralert/disasteralert/internal/repository"
	"github.com/disasteralert/disasteralert/internal/service"
	"github.com/disasteralert/disasteralert/internal/webhook"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp собирает полный стек API поверх in-memory хранилища
// со стартовым набором данных
func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{}
	store := repository.NewMemoryStore(nil)
	svc := service.NewIncidentService(store, service.NewUUIDGenerator(), logger, cfg, webhook.NewNoopPublisher())
	handler := NewHandler(svc, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	handler.RegisterRoutes(router)
	return router
}

func TestFlow_SeededAnalytics(t *testing.T) {
	router := newTestApp(t)

	w := makeRequest(router, "GET", "/analytics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp AnalyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Стартовый набор: 5 инцидентов, по одному в каждой категории,
	// два из них в статусе reported
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, map[string]int{
		"fire": 1, "flood": 1, "earthquake": 1, "cyclone": 1, "landslide": 1,
	}, resp.ByCategory)
	assert.Equal(t, map[string]int{
		"reported": 2, "verified": 1, "in_progress": 1, "resolved": 1,
	}, resp.ByStatus)
}

func TestFlow_CreateNormalizesCategory(t *testing.T) {
	router := newTestApp(t)
	reqBody := CreateIncidentRequest{
		Title:       "Warehouse fire",
		Description: "Smoke visible from the highway",
		Location:    "Dock 7",
		Category:    "FIRE",
	}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/incidents", bytes.NewBuffer(bodyBytes))

	require.Equal(t, http.StatusCreated, w.Code)
	var created IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "fire", created.Category)
	assert.Equal(t, models.StatusReported, created.Status)
	assert.Equal(t, "anonymous", created.ReporterID)
	assert.Equal(t, 0, created.Likes)
	assert.Empty(t, created.Comments)

	// Созданный инцидент читается по ID
	w = makeRequest(router, "GET", "/incidents/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestFlow_LikesAccumulate(t *testing.T) {
	router := newTestApp(t)

	// У inc_flood в стартовом наборе 2 лайка
	w := makeRequest(router, "POST", "/incidents/inc_flood/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var first LikeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, 3, first.Likes)

	w = makeRequest(router, "POST", "/incidents/inc_flood/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var second LikeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, 4, second.Likes)
}

func TestFlow_StatusRoundTrip(t *testing.T) {
	router := newTestApp(t)
	reqBody := UpdateStatusRequest{Status: "RESOLVED"}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "PUT", "/incidents/inc_demo/status", bytes.NewBuffer(bodyBytes))

	require.Equal(t, http.StatusOK, w.Code)
	var resp StatusUpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "resolved", resp.Status)

	// Новый статус виден при чтении и скрывает инцидент из активных
	w = makeRequest(router, "GET", "/incidents/inc_demo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var incident IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &incident))
	assert.Equal(t, models.StatusResolved, incident.Status)

	w = makeRequest(router, "GET", "/incidents?onlyActive=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var active []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &active))
	for _, inc := range active {
		assert.NotEqual(t, models.StatusResolved, inc.Status)
	}
}

func TestFlow_CommentAppended(t *testing.T) {
	router := newTestApp(t)
	reqBody := AddCommentRequest{Author: "max", Text: "Road is blocked"}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/incidents/inc_demo/comment", bytes.NewBuffer(bodyBytes))

	require.Equal(t, http.StatusCreated, w.Code)
	var comment CommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	assert.Equal(t, "max", comment.Author)
	assert.Equal(t, "Road is blocked", comment.Text)

	// В стартовом наборе у inc_demo уже есть один комментарий
	w = makeRequest(router, "GET", "/incidents/inc_demo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var incident IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &incident))
	require.Len(t, incident.Comments, 2)
	assert.Equal(t, comment.ID, incident.Comments[1].ID)
}

func TestFlow_DeleteThenGetNotFound(t *testing.T) {
	router := newTestApp(t)

	w := makeRequest(router, "DELETE", "/incidents/inc_eq", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = makeRequest(router, "GET", "/incidents/inc_eq", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "incident not found")

	// Аналитика пересчитывается после удаления
	w = makeRequest(router, "GET", "/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp AnalyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Total)
	assert.NotContains(t, resp.ByCategory, "earthquake")
}

func TestFlow_ReporterGetsSynthesizedUserAndHistory(t *testing.T) {
	router := newTestApp(t)
	reqBody := CreateIncidentRequest{
		Title:       "Power line down",
		Description: "Sparks near the crossing",
		Location:    "5th Ave",
		Category:    "fire",
		ReporterID:  "user_new",
	}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/incidents", bytes.NewBuffer(bodyBytes))
	require.Equal(t, http.StatusCreated, w.Code)
	var created IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = makeRequest(router, "GET", "/users/user_new/incidents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, created.ID, history[0].ID)
}

func TestFlow_FilterCombination(t *testing.T) {
	router := newTestApp(t)

	w := makeRequest(router, "GET", "/incidents?category=flood&status=reported", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "inc_flood", resp[0].ID)

	// Категория сравнивается строго, без нормализации регистра в фильтре
	w = makeRequest(router, "GET", "/incidents?category=FLOOD", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var empty []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.Empty(t, empty)
}
