package leaverequest

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
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetAll,
		)

		leaves.GET("/approvals",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			handler.ListForApprover,
		)

		leaves.GET("/mine",
			middleware.RateLimitByUser(3, 10),
			handler.ListMine,
		)

		leaves.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetById,
		)

		leaves.GET("/:id/decisions",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.ListDecisions,
		)

		leaves.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			handler.Submit,
		)

		leaves.POST("/:id/decision",
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			handler.ApplyDecision,
		)

		leaves.POST("/:id/resubmit",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			handler.Resubmit,
		)
	}
}
