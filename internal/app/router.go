package app

import (
	"escape_room_backend/internal/config"
	"escape_room_backend/internal/middleware"
	"escape_room_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Team-facing routes, no authentication: teams identify themselves
	// by their team id alone.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/rooms", c.game.ListRooms)
		public.GET("/rooms/:room/state", c.game.GetState)
		public.POST("/rooms/:room/answers", c.game.SubmitAnswer)
		public.GET("/workbook/template", c.workbook.DownloadTemplate)
	}

	// Admin routes behind the shared secret: question-set replacement
	// and progress resets.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AdminAuthMiddleware(cfg.Admin.Secret))
	{
		admin.POST("/workbook", c.workbook.Upload)
		admin.DELETE("/teams/:team", c.admin.ResetTeam)
		admin.DELETE("/teams/:team/rooms/:room", c.admin.ResetRoom)
	}
}
