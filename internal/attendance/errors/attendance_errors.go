package attendanceerrors

import (
	"net/http"

	"campus-portal/internal/shared/apperror"
)

var (
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid school id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrDuplicateStudentEntry = apperror.New(
		apperror.CodeInvalidInput,
		"a student appears more than once in the marking sheet",
		http.StatusBadRequest,
	)
	ErrAlreadyMarked = apperror.New(
		apperror.CodeConflict,
		"attendance already marked for this subject, student and date",
		http.StatusConflict,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
)
