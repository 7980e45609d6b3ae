package repository

import (
	"time"

	"github.com/disasteralert/disasteralert/internal/models"
)

// SeedDatabase возвращает стартовый набор данных: пять инцидентов по пяти
// категориям, охватывающих все четыре статуса, и соответствующие пользователи.
// Записывается при первом обращении к пустому хранилищу.
func SeedDatabase(now time.Time) *models.Database {
	return &models.Database{
		Incidents: []*models.Incident{
			{
				ID:          "inc_demo",
				Title:       "Demo: small fire near market",
				Description: "Smoke at corner shop",
				Location:    "MG Road",
				Category:    "fire",
				ReporterID:  "user_demo",
				Status:      models.StatusReported,
				Comments: []models.Comment{
					{ID: "c_demo", Author: "Responder", Text: "On the way", Timestamp: now},
				},
				Likes:     0,
				CreatedAt: now.Add(-1 * time.Hour),
			},
			{
				ID:          "inc_flood",
				Title:       "Flooded street in downtown",
				Description: "Heavy rain caused flooding on Main St.",
				Location:    "Main St",
				Category:    "flood",
				ReporterID:  "user_flood",
				Status:      models.StatusReported,
				Comments:    []models.Comment{},
				Likes:       2,
				CreatedAt:   now.Add(-2 * time.Hour),
			},
			{
				ID:          "inc_eq",
				Title:       "Minor earthquake felt",
				Description: "Tremors reported by residents",
				Location:    "Sector 21",
				Category:    "earthquake",
				ReporterID:  "user_eq",
				Status:      models.StatusVerified,
				Comments:    []models.Comment{},
				Likes:       1,
				CreatedAt:   now.Add(-3 * time.Hour),
			},
			{
				ID:          "inc_cyclone",
				Title:       "Cyclone warning issued",
				Description: "Authorities have issued a cyclone warning for coastal areas.",
				Location:    "Coastal Zone",
				Category:    "cyclone",
				ReporterID:  "user_cyclone",
				Status:      models.StatusInProgress,
				Comments:    []models.Comment{},
				Likes:       3,
				CreatedAt:   now.Add(-4 * time.Hour),
			},
			{
				ID:          "inc_landslide",
				Title:       "Landslide blocks highway",
				Description: "Debris on road after heavy rain",
				Location:    "Hill Highway",
				Category:    "landslide",
				ReporterID:  "user_land",
				Status:      models.StatusResolved,
				Comments:    []models.Comment{},
				Likes:       0,
				CreatedAt:   now.Add(-5 * time.Hour),
			},
		},
		Users: []*models.User{
			{ID: "user_demo", Name: "Demo User"},
			{ID: "user_flood", Name: "Flood Reporter"},
			{ID: "user_eq", Name: "EQ Reporter"},
			{ID: "user_cyclone", Name: "Cyclone Reporter"},
			{ID: "user_land", Name: "Landslide Reporter"},
		},
	}
}
