package leaverequest

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("leaverequest.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Submit(c *gin.Context) {
	schoolID := c.GetString("school_id")
	actorID := c.GetString("user_id")
	h.logger.Debug("http submit leave", zap.String("school_id", schoolID), zap.String("actor_id", actorID))

	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), schoolID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ApplyDecision(c *gin.Context) {
	schoolID := c.GetString("school_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http apply decision validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.ApplyDecision(c.Request.Context(), schoolID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Resubmit(c *gin.Context) {
	schoolID := c.GetString("school_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	var req ResubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http resubmit leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Resubmit(c.Request.Context(), schoolID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetAll serves the admin view. Status/department/search narrowing runs
// in memory over the school's result set.
func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetAll(ctx, schoolID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp = Filter(resp, FilterOptions{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Search:     c.Query("q"),
	})

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) ListForApprover(c *gin.Context) {
	ctx := c.Request.Context()
	schoolID := c.GetString("school_id")
	actorID := c.GetString("user_id")

	resp, err := h.service.ListForApprover(ctx, schoolID, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp = Filter(resp, FilterOptions{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Search:     c.Query("q"),
	})

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	schoolID := c.GetString("school_id")
	actorID := c.GetString("user_id")

	resp, err := h.service.ListMine(ctx, schoolID, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetByID(ctx, schoolID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListDecisions(c *gin.Context) {
	ctx := c.Request.Context()
	schoolID := c.GetString("school_id")

	resp, err := h.service.ListDecisions(ctx, schoolID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
