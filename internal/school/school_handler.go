package school

import (
	"net/http"

	schoolerrors "campus-portal/internal/school/errors"
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
	l := zap.L().Named("school.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("school.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetMe(c *gin.Context) {
	schoolID := c.GetString("school_id")
	if schoolID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "School ID not found in context", nil)
		return
	}

	sch, err := h.service.GetByID(c.Request.Context(), schoolID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sch, nil)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	schoolID := c.GetString("school_id")
	if schoolID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "School ID not found in context", nil)
		return
	}

	var req UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	sch, err := h.service.Update(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sch, nil)
}

func (h *Handler) UpsertAccreditation(c *gin.Context) {
	schoolID := c.GetString("school_id")
	if schoolID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "School ID not found in context", nil)
		return
	}

	var req UpsertAccreditationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	if err := h.service.UpsertAccreditation(c.Request.Context(), schoolID, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListAccreditations(c *gin.Context) {
	schoolID := c.GetString("school_id")
	if schoolID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "School ID not found in context", nil)
		return
	}

	result, err := h.service.ListAccreditations(c.Request.Context(), schoolID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) DeleteAccreditation(c *gin.Context) {
	schoolID := c.GetString("school_id")
	if schoolID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "School ID not found in context", nil)
		return
	}

	typeParam := c.Param("type")
	if typeParam == "" {
		h.writeServiceError(c, schoolerrors.ErrInvalidAccreditationType)
		return
	}

	if err := h.service.DeleteAccreditation(c.Request.Context(), schoolID, AccreditationType(typeParam)); err != nil {
		h.logger.Error("failed to delete accreditation", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
