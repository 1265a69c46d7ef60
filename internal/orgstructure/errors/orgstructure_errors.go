package orgstructureerrors

import (
	"net/http"

	"go-orgkit/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrParentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Parent department not found",
		http.StatusNotFound,
	)

	ErrHierarchyCycle = apperror.New(
		apperror.CodeInvalidInput,
		"Reassignment would create a cycle in the hierarchy",
		http.StatusBadRequest,
	)

	ErrSelfParent = apperror.New(
		apperror.CodeInvalidInput,
		"A department cannot be its own parent",
		http.StatusBadRequest,
	)

	ErrSelfSuperior = apperror.New(
		apperror.CodeInvalidInput,
		"A user cannot be their own superior",
		http.StatusBadRequest,
	)

	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID format",
		http.StatusBadRequest,
	)
)
