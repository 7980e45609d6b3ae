package service

import (
	"sort"
	"strings"

	"github.com/disasteralert/disasteralert/internal/models"
)

// FilterIncidents - чистая функция фильтрации и сортировки коллекции инцидентов.
// Все условия фильтра комбинируются через И; результат отсортирован по убыванию
// времени создания (новые первыми), сортировка стабильная.
func FilterIncidents(incidents []*models.Incident, filter models.IncidentFilter) []*models.Incident {
	result := make([]*models.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if matchesFilter(inc, filter) {
			result = append(result, inc)
		}
	}
	sortNewestFirst(result)
	return result
}

func matchesFilter(inc *models.Incident, filter models.IncidentFilter) bool {
	if filter.Category != "" && inc.Category != filter.Category {
		return false
	}
	if filter.Status != "" && inc.Status != filter.Status {
		return false
	}
	if filter.Query != "" && !matchesQuery(inc, filter.Query) {
		return false
	}
	if filter.OnlyActive && inc.Status == models.StatusResolved {
		return false
	}
	return true
}

// matchesQuery - регистронезависимый поиск подстроки по названию,
// описанию и месту (ИЛИ между полями)
func matchesQuery(inc *models.Incident, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(inc.Title), q) ||
		strings.Contains(strings.ToLower(inc.Description), q) ||
		strings.Contains(strings.ToLower(inc.Location), q)
}

func sortNewestFirst(incidents []*models.Incident) {
	sort.SliceStable(incidents, func(i, j int) bool {
		return incidents[i].CreatedAt.After(incidents[j].CreatedAt)
	})
}
