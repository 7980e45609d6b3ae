package v1

import "github.com/disasteralert/disasteralert/internal/models"

// DTOToNewIncident преобразует DTO создания во входные данные сервиса
func DTOToNewIncident(dto CreateIncidentRequest) models.NewIncident {
	return models.NewIncident{
		Title:       dto.Title,
		Description: dto.Description,
		Location:    dto.Location,
		Category:    dto.Category,
		ImageURL:    dto.ImageURL,
		ReporterID:  dto.ReporterID,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	comments := make([]CommentResponse, len(model.Comments))
	for i, c := range model.Comments {
		comments[i] = ModelToCommentResponse(c)
	}
	return &IncidentResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Location:    model.Location,
		Category:    model.Category,
		ImageURL:    model.ImageURL,
		ReporterID:  model.ReporterID,
		Status:      model.Status,
		Comments:    comments,
		Likes:       model.Likes,
		CreatedAt:   model.CreatedAt,
	}
}

// ModelToCommentResponse преобразует комментарий в DTO для ответа
func ModelToCommentResponse(model models.Comment) CommentResponse {
	return CommentResponse{
		ID:        model.ID,
		Author:    model.Author,
		Text:      model.Text,
		Timestamp: model.Timestamp,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToAnalyticsResponse преобразует сводку в DTO для ответа
func ModelToAnalyticsResponse(model *models.Analytics) *AnalyticsResponse {
	return &AnalyticsResponse{
		Total:      model.Total,
		ByCategory: model.ByCategory,
		ByStatus:   model.ByStatus,
	}
}
