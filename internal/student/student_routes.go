package student

import (
	"campus-portal/internal/middleware"
	"campus-portal/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	students := r.Group("/students")
	students.Use(middleware.AuthMiddleware())
	students.Use(middleware.ContextLogger(logger))
	{
		students.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "student", "read"),
			handler.GetAll,
		)

		students.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "student", "read"),
			handler.GetOptions,
		)

		students.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "student", "read"),
			handler.GetById,
		)

		students.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "student", "create"),
			handler.Create,
		)

		students.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "student", "update"),
			handler.Update,
		)

		students.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "student", "delete"),
			handler.Delete,
		)
	}
}
