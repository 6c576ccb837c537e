package attendance

import (
	"net/http"

	"campus-portal/internal/shared/apperror"
	"campus-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Mark(c *gin.Context) {
	schoolID := c.GetString("school_id")
	actorID := c.GetString("user_id")

	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http mark attendance validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Mark(c.Request.Context(), schoolID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetBySubjectAndDate(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetBySubjectAndDate(
		c.Request.Context(),
		schoolID,
		c.Param("subjectId"),
		c.Query("date"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetForStudent(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetForStudent(c.Request.Context(), schoolID, c.Param("studentId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetSummary(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetSummary(
		c.Request.Context(),
		schoolID,
		c.Param("studentId"),
		c.Query("subject_id"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
