package notification

import (
	"campus-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.RateLimitByUser(2, 10), h.List)
		notifications.GET("/unread", middleware.RateLimitByUser(5, 20), h.UnreadCount)
		notifications.POST("/read", middleware.RateLimitByUser(1, 5), h.MarkAllRead)
	}
}
