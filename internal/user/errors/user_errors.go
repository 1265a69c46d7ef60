package usererrors

import (
	"net/http"

	"go-orgkit/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role",
		http.StatusBadRequest,
	)

	ErrCeoRoleReserved = apperror.New(
		apperror.CodeInvalidInput,
		"The ceo role is assigned at registration and cannot be granted",
		http.StatusBadRequest,
	)

	ErrOnlyCeoDeletesOrg = apperror.New(
		apperror.CodeForbidden,
		"Only the CEO can delete the organization root account",
		http.StatusForbidden,
	)
)
