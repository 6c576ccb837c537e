package batch

import (
	"campus-portal/internal/middleware"
	"campus-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
) {
	batches := r.Group("/batches")

	batches.Use(middleware.AuthMiddleware())

	{
		batches.GET("", middleware.RBACAuthorize(rbacService, "batch", "read"), h.GetAll)
		batches.POST("", middleware.RBACAuthorize(rbacService, "batch", "create"), h.Create)
		batches.GET("/:id", middleware.RBACAuthorize(rbacService, "batch", "read"), h.GetById)
		batches.PUT("/:id", middleware.RBACAuthorize(rbacService, "batch", "update"), h.Update)
		batches.DELETE("/:id", middleware.RBACAuthorize(rbacService, "batch", "delete"), h.Delete)
	}
}
