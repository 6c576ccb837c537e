package resulterrors

import (
	"net/http"

	"campus-portal/internal/shared/apperror"
)

var (
	ErrResultNotFound = apperror.New(
		apperror.CodeNotFound,
		"result not found",
		http.StatusNotFound,
	)
	ErrResultAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"result already recorded for this student, subject and exam",
		http.StatusConflict,
	)
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid school id",
		http.StatusBadRequest,
	)
	ErrMarksOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"marks must be between 0 and max_marks",
		http.StatusBadRequest,
	)
	ErrImportValidation = apperror.New(
		apperror.CodeInvalidInput,
		"import file contains invalid rows",
		http.StatusBadRequest,
	)
	ErrImportEmpty = apperror.New(
		apperror.CodeInvalidInput,
		"import file contains no data rows",
		http.StatusBadRequest,
	)
	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to generate export file",
		http.StatusInternalServerError,
	)
)
