package attendance

import (
	"campus-portal/internal/middleware"
	"campus-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.POST("/mark",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.Mark,
		)

		attendance.GET("/subjects/:subjectId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetBySubjectAndDate,
		)

		attendance.GET("/students/:studentId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetForStudent,
		)

		attendance.GET("/students/:studentId/summary",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetSummary,
		)
	}
}
