package v1

import (
	"time"
)

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Location    string  `json:"location" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	ReporterID  string  `json:"reporterId,omitempty"`
}

// UpdateStatusRequest DTO для смены статуса инцидента
// @Description DTO для смены статуса инцидента
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AddCommentRequest DTO для добавления комментария
// @Description DTO для добавления комментария
type AddCommentRequest struct {
	Author string `json:"author,omitempty"`
	Text   string `json:"text" validate:"required"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	Category    string            `json:"category"`
	ImageURL    *string           `json:"imageUrl"`
	ReporterID  string            `json:"reporterId"`
	Status      string            `json:"status"`
	Comments    []CommentResponse `json:"comments"`
	Likes       int               `json:"likes"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// CommentResponse DTO для ответа с комментарием
// @Description DTO для ответа с комментарием
type CommentResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusUpdateResponse DTO подтверждения смены статуса
// @Description DTO подтверждения смены статуса
type StatusUpdateResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Status  string `json:"status"`
}

// LikeResponse DTO для ответа с новым числом лайков
// @Description DTO для ответа с новым числом лайков
type LikeResponse struct {
	Success bool `json:"success"`
	Likes   int  `json:"likes"`
}

// DeleteResponse DTO подтверждения удаления
// @Description DTO подтверждения удаления
type DeleteResponse struct {
	Success bool `json:"success"`
}

// AnalyticsResponse DTO для ответа со сводкой по коллекции
// @Description DTO для ответа со сводкой по коллекции
type AnalyticsResponse struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"byCategory"`
	ByStatus   map[string]int `json:"byStatus"`
}

// HealthResponse DTO для ответа health-check
// @Description DTO для ответа health-check
type HealthResponse struct {
	OK bool `json:"ok"`
}

// PingResponse DTO для ответа ping
// @Description DTO для ответа ping
type PingResponse struct {
	OK   bool  `json:"ok"`
	Time int64 `json:"time"`
}
