package notification

import (
	"net/http"

	"campus-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User ID not found in context", nil)
		return
	}

	list := h.service.ListForUser(c.Request.Context(), userID)
	response.Success(c, http.StatusOK, list, nil)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User ID not found in context", nil)
		return
	}

	count := h.service.UnreadCount(c.Request.Context(), userID)
	response.Success(c, http.StatusOK, gin.H{"unread": count}, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User ID not found in context", nil)
		return
	}

	h.service.MarkAllRead(c.Request.Context(), userID)
	response.Success(c, http.StatusOK, gin.H{"marked_read": true}, nil)
}
