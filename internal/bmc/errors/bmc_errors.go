package bmcerrors

import (
	"net/http"

	"go-orgkit/internal/shared/apperror"
)

var (
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"BMC item not found",
		http.StatusNotFound,
	)

	ErrInvalidBlock = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown business model canvas block",
		http.StatusBadRequest,
	)
)
