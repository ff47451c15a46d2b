package app

import (
	"github.com/gin-gonic/gin"

	"fittrack.io/notifier/internal/api/handlers"
	"fittrack.io/notifier/internal/api/middleware"
)

func newRouter(server *handlers.Server) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	health := v1.Group("/health")
	health.GET("/live", server.GetLiveness)
	health.GET("/ready", server.GetReadiness)

	admin := v1.Group("/admin")
	admin.POST("/announcements", server.CreateAnnouncement)
	admin.POST("/sweeps/:kind", server.TriggerSweep)
	admin.GET("/users/:id/notifications", server.ListUserNotifications)
	admin.GET("/log/level", server.GetLogLevel)
	admin.PUT("/log/level", server.SetLogLevel)

	return router
}
