package schoolerrors

import (
	"net/http"

	"campus-portal/internal/shared/apperror"
)

var (
	ErrSchoolNotFound = apperror.New(
		apperror.CodeNotFound,
		"School not found",
		http.StatusNotFound,
	)

	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid school ID",
		http.StatusBadRequest,
	)

	ErrInvalidAccreditationType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid accreditation type",
		http.StatusBadRequest,
	)

	ErrAccreditationNotFound = apperror.New(
		apperror.CodeNotFound,
		"School accreditation not found",
		http.StatusNotFound,
	)

	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"Missing required fields",
		http.StatusBadRequest,
	)
)
