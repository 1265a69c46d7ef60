package companyprofileerrors

import (
	"net/http"

	"go-orgkit/internal/shared/apperror"
)

var (
	ErrVisionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company vision not found",
		http.StatusNotFound,
	)

	ErrMissionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company mission not found",
		http.StatusNotFound,
	)

	ErrCoreValueNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company core value not found",
		http.StatusNotFound,
	)
)
