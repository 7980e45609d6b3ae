package models

import (
	"time"
)

// Статусы жизненного цикла инцидента.
// Порядок декларативный: любое значение можно установить в любой момент.
const (
	StatusReported   = "reported"
	StatusVerified   = "verified"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// Statuses - полный набор допустимых статусов
var Statuses = []string{StatusReported, StatusVerified, StatusInProgress, StatusResolved}

// IsValidStatus проверяет, входит ли значение в набор допустимых статусов
func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

type Incident struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"imageUrl"`
	ReporterID  string    `json:"reporterId"`
	Status      string    `json:"status"`
	Comments    []Comment `json:"comments"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment - комментарий к инциденту, порядок хранения = порядок поступления
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewIncident - входные данные операции создания инцидента
type NewIncident struct {
	Title       string
	Description string
	Location    string
	Category    string
	ImageURL    *string
	ReporterID  string
}

// IncidentFilter - параметры фильтрации списка инцидентов.
// Все поля опциональны и комбинируются через логическое И.
type IncidentFilter struct {
	Category   string
	Status     string
	Query      string
	OnlyActive bool
}

// Analytics - сводка по всей коллекции, считается заново на каждый запрос
type Analytics struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"byCategory"`
	ByStatus   map[string]int `json:"byStatus"`
}
