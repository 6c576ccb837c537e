package result

import (
	"errors"
	"net/http"

	resulterrors "campus-portal/internal/result/errors"
	"campus-portal/internal/shared/apperror"
	"campus-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("result.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("result.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("result request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req CreateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create result validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	schoolID := c.GetString("school_id")

	if studentID := c.Query("student_id"); studentID != "" {
		resp, err := h.service.GetByStudent(c.Request.Context(), schoolID, studentID)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), schoolID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetByID(c.Request.Context(), schoolID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req UpdateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update result validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), schoolID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	schoolID := c.GetString("school_id")

	if err := h.service.Delete(c.Request.Context(), schoolID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// Import accepts a CSV upload as multipart form field "file".
func (h *Handler) Import(c *gin.Context) {
	schoolID := c.GetString("school_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}
	defer file.Close()

	summary, err := h.service.ImportCSV(c.Request.Context(), schoolID, file)
	if err != nil {
		if errors.Is(err, resulterrors.ErrImportValidation) && len(summary.Errors) > 0 {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
				"import file contains invalid rows", summary.Errors)
			return
		}
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, summary, nil)
}

func (h *Handler) Export(c *gin.Context) {
	schoolID := c.GetString("school_id")

	buf, filename, err := h.service.ExportXLSX(c.Request.Context(), schoolID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
