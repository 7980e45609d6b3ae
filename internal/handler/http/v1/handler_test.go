package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/disasteralert/disasteralert/internal/config"
	"github.com/disasteralert/disasteralert/internal/models"
	"github.com/disasteralert/disasteralert/internal/service"
	"github.com/disasteralert/disasteralert/internal/service/mocks"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockIncidentService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockIncidentService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	handler.RegisterRoutes(router)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateIncident_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateIncidentRequest{
		Title:       "Fire",
		Description: "Small fire",
		Location:    "Elm St",
		Category:    "FIRE",
	}
	expectedIncident := &models.Incident{
		ID:          "inc_test",
		Title:       reqBody.Title,
		Description: reqBody.Description,
		Location:    reqBody.Location,
		Category:    "fire",
		ReporterID:  "anonymous",
		Status:      models.StatusReported,
		Comments:    []models.Comment{},
		Likes:       0,
		CreatedAt:   time.Now(),
	}

	mockService.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		Return(expectedIncident, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "inc_test", resp.ID)
	assert.Equal(t, "fire", resp.Category)
	assert.Equal(t, models.StatusReported, resp.Status)
}

func TestCreateIncident_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/incidents", bytes.NewBufferString(`{"title": "test"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateIncident_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateIncidentRequest{ // Отсутствует Location
		Title:       "Fire",
		Description: "Small fire",
		Category:    "fire",
	}

	mockService.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Location' failed on the 'required' tag")
}

func TestCreateIncident_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateIncidentRequest{
		Title:       "Fire",
		Description: "Small fire",
		Location:    "Elm St",
		Category:    "fire",
	}

	mockService.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("disk failure")).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestListIncidents_PassesFilter(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expectedFilter := models.IncidentFilter{
		Category:   "flood",
		Status:     "reported",
		Query:      "main",
		OnlyActive: true,
	}
	expectedIncidents := []*models.Incident{
		{ID: "inc_flood", Category: "flood", Status: "reported", Comments: []models.Comment{}},
	}

	mockService.EXPECT().
		ListIncidents(gomock.Any(), expectedFilter).
		Return(expectedIncidents, nil).
		Times(1)

	w := makeRequest(router, "GET", "/incidents?category=flood&status=reported&q=main&onlyActive=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "inc_flood", resp[0].ID)
}

func TestListIncidents_EmptyResultIsJSONArray(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListIncidents(gomock.Any(), models.IncidentFilter{}).
		Return([]*models.Incident{}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/incidents", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetIncident_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expectedIncident := &models.Incident{
		ID:       "inc_1",
		Title:    "Retrieved Incident",
		Status:   models.StatusVerified,
		Comments: []models.Comment{},
	}

	mockService.EXPECT().GetIncident(gomock.Any(), "inc_1").Return(expectedIncident, nil).Times(1)

	w := makeRequest(router, "GET", "/incidents/inc_1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp IncidentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "inc_1", resp.ID)
	assert.Equal(t, expectedIncident.Title, resp.Title)
}

func TestGetIncident_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetIncident(gomock.Any(), "inc_missing").Return(nil, service.ErrIncidentNotFound).Times(1)

	w := makeRequest(router, "GET", "/incidents/inc_missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "incident not found")
}

func TestUpdateStatus_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := UpdateStatusRequest{Status: "Verified"}

	mockService.EXPECT().
		UpdateStatus(gomock.Any(), "inc_1", "Verified").
		Return("verified", nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "PUT", "/incidents/inc_1/status", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatusUpdateResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "inc_1", resp.ID)
	assert.Equal(t, "verified", resp.Status)
}

func TestUpdateStatus_MissingStatus(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PUT", "/incidents/inc_1/status", bytes.NewBufferString(`{}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Status' failed on the 'required' tag")
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := UpdateStatusRequest{Status: "closed"}

	mockService.EXPECT().
		UpdateStatus(gomock.Any(), "inc_1", "closed").
		Return("", service.ErrInvalidStatus).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "PUT", "/incidents/inc_1/status", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid status")
}

func TestUpdateStatus_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := UpdateStatusRequest{Status: "verified"}

	mockService.EXPECT().
		UpdateStatus(gomock.Any(), "inc_missing", "verified").
		Return("", service.ErrIncidentNotFound).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "PUT", "/incidents/inc_missing/status", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "incident not found")
}

func TestAddComment_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := AddCommentRequest{Text: "help"}
	expectedComment := &models.Comment{
		ID:        "c_test",
		Author:    "anonymous",
		Text:      "help",
		Timestamp: time.Now(),
	}

	mockService.EXPECT().
		AddComment(gomock.Any(), "inc_1", "", "help").
		Return(expectedComment, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/incidents/inc_1/comment", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp CommentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "c_test", resp.ID)
	assert.Equal(t, "anonymous", resp.Author)
	assert.Equal(t, "help", resp.Text)
}

func TestAddComment_MissingText(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().AddComment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/incidents/inc_1/comment", bytes.NewBufferString(`{"author":"max"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Text' failed on the 'required' tag")
}

func TestAddComment_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := AddCommentRequest{Text: "help"}

	mockService.EXPECT().
		AddComment(gomock.Any(), "inc_missing", "", "help").
		Return(nil, service.ErrIncidentNotFound).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/incidents/inc_missing/comment", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"incident not found"`)
}

func TestLikeIncident_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().LikeIncident(gomock.Any(), "inc_1").Return(3, nil).Times(1)

	w := makeRequest(router, "POST", "/incidents/inc_1/like", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp LikeResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Likes)
}

func TestLikeIncident_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().LikeIncident(gomock.Any(), "inc_missing").Return(0, service.ErrIncidentNotFound).Times(1)

	w := makeRequest(router, "POST", "/incidents/inc_missing/like", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "incident not found")
}

func TestDeleteIncident_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().DeleteIncident(gomock.Any(), "inc_1").Return(nil).Times(1)

	w := makeRequest(router, "DELETE", "/incidents/inc_1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestDeleteIncident_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().DeleteIncident(gomock.Any(), "inc_missing").Return(service.ErrIncidentNotFound).Times(1)

	w := makeRequest(router, "DELETE", "/incidents/inc_missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "incident not found")
}

func TestListUserIncidents_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expectedIncidents := []*models.Incident{
		{ID: "inc_1", ReporterID: "user_1", Comments: []models.Comment{}},
		{ID: "inc_2", ReporterID: "user_1", Comments: []models.Comment{}},
	}

	mockService.EXPECT().ListByReporter(gomock.Any(), "user_1").Return(expectedIncidents, nil).Times(1)

	w := makeRequest(router, "GET", "/users/user_1/incidents", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestGetAnalytics_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expectedAnalytics := &models.Analytics{
		Total:      5,
		ByCategory: map[string]int{"fire": 1, "flood": 1, "earthquake": 1, "cyclone": 1, "landslide": 1},
		ByStatus:   map[string]int{"reported": 2, "verified": 1, "in_progress": 1, "resolved": 1},
	}

	mockService.EXPECT().GetAnalytics(gomock.Any()).Return(expectedAnalytics, nil).Times(1)

	w := makeRequest(router, "GET", "/analytics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp AnalyticsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, expectedAnalytics.ByCategory, resp.ByCategory)
	assert.Equal(t, expectedAnalytics.ByStatus, resp.ByStatus)
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestPing_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp PingResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.NotZero(t, resp.Time)
}

func TestRoot_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DisasterAlert API is running.", w.Body.String())
}

func TestCORSMiddleware_SetsHeaders(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListIncidents(gomock.Any(), gomock.Any()).
		Return([]*models.Incident{}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/incidents", nil)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type,Authorization", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSMiddleware_OptionsShortCircuits(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	// Preflight не должен доходить до хендлеров
	mockService.EXPECT().ListIncidents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "OPTIONS", "/incidents", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
