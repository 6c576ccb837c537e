package school

import (
	"campus-portal/internal/middleware"
	"campus-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	schools := r.Group("/schools")
	schools.Use(middleware.AuthMiddleware())
	{
		schools.GET("/me",
			middleware.RateLimitByUser(2, 10),
			handler.GetMe,
		)

		schools.PUT("/me",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "school", "update"),
			handler.UpdateMe,
		)

		schools.POST("/me/accreditations",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RBACAuthorize(rbacService, "school", "update"),
			handler.UpsertAccreditation,
		)

		schools.GET("/me/accreditations",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "school", "read"),
			handler.ListAccreditations,
		)

		schools.DELETE("/me/accreditations/:type",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "school", "delete"),
			handler.DeleteAccreditation,
		)
	}
}
