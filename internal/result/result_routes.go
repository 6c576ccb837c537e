package result

import (
	"campus-portal/internal/middleware"
	"campus-portal/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	results := r.Group("/results")
	results.Use(middleware.AuthMiddleware())
	{
		results.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "result", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		results.POST("/import",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "result", "create"),
			handler.Import,
		)

		results.GET("/export",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "result", "read"),
			handler.Export,
		)

		results.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "result", "read"),
			handler.GetAll,
		)

		results.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "result", "read"),
			handler.GetById,
		)

		results.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "result", "update"),
			handler.Update,
		)

		results.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "result", "delete"),
			handler.Delete,
		)
	}
}
