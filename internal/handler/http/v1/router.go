package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API.
// Маршруты живут в корне без префикса версии: публичные пути - часть контракта.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.root)
	router.GET("/ping", h.ping)
	router.GET("/health", h.healthCheck)

	// Маршруты для управления инцидентами
	incidents := router.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.POST("", h.createIncident)
		incidents.GET("/:id", h.getIncident)
		incidents.PUT("/:id/status", h.updateStatus)
		incidents.POST("/:id/comment", h.addComment)
		incidents.POST("/:id/like", h.likeIncident)
		incidents.DELETE("/:id", h.deleteIncident)
	}

	// История инцидентов пользователя
	router.GET("/users/:userId/incidents", h.listUserIncidents)

	// Сводная аналитика
	router.GET("/analytics", h.getAnalytics)
}
