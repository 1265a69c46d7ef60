package taskboarderrors

import (
	"net/http"

	"go-orgkit/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Project not found",
		http.StatusNotFound,
	)

	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)

	ErrNotProjectMember = apperror.New(
		apperror.CodeForbidden,
		"You are not a member of this project",
		http.StatusForbidden,
	)

	ErrInvalidProjectStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Project status must be active, completed, or archived",
		http.StatusBadRequest,
	)

	ErrInvalidTaskStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Task status must be pending, in_progress, or done",
		http.StatusBadRequest,
	)

	ErrMemberNotInTenant = apperror.New(
		apperror.CodeInvalidInput,
		"All project members must belong to your organization",
		http.StatusBadRequest,
	)
)
