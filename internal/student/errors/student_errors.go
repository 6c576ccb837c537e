package studenterrors

import (
	"net/http"

	"campus-portal/internal/shared/apperror"
)

var (
	ErrStudentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Student not found",
		http.StatusNotFound,
	)
	ErrStudentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Student with the same email already exists",
		http.StatusConflict,
	)
	ErrRollNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Roll number already exists in this school",
		http.StatusConflict,
	)
	ErrInvalidStudentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid student ID",
		http.StatusBadRequest,
	)
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid school ID",
		http.StatusBadRequest,
	)
	ErrInvalidBatchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid batch ID",
		http.StatusBadRequest,
	)
)
