package subject

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
	subjects := r.Group("/subjects")

	subjects.Use(middleware.AuthMiddleware())

	{
		subjects.GET("", middleware.RBACAuthorize(rbacService, "subject", "read"), h.GetAll)
		subjects.POST("", middleware.RBACAuthorize(rbacService, "subject", "create"), h.Create)
		subjects.GET("/:id", middleware.RBACAuthorize(rbacService, "subject", "read"), h.GetById)
		subjects.PUT("/:id", middleware.RBACAuthorize(rbacService, "subject", "update"), h.Update)
		subjects.DELETE("/:id", middleware.RBACAuthorize(rbacService, "subject", "delete"), h.Delete)
	}
}
