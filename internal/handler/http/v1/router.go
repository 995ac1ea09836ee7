package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты локального API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты работы с инцидентами
	incidents := api.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.POST("/refresh", h.refreshIncidents)
		incidents.GET("/:id/history", h.getHistory)
		incidents.POST("/:id/assign", h.assignIncident)
		incidents.POST("/:id/status", h.updateStatus)
	}

	// Маршруты авто-диспетчеризации
	dispatchGroup := api.Group("/dispatch")
	{
		dispatchGroup.GET("", h.dispatchStatus)
		dispatchGroup.POST("/enable", h.enableDispatch)
		dispatchGroup.POST("/disable", h.disableDispatch)
		dispatchGroup.GET("/attempts", h.claimHistory)
	}

	// Маршрут приема геолокации
	api.POST("/location", h.updateLocation)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
