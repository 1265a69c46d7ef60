package apperror

import (
	"errors"
	"net/http"
)

// HTTPError adalah bentuk siap-tulis sebuah error untuk response HTTP.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP memetakan error apa pun ke HTTPError. AppError membawa status dan
// kodenya sendiri; error lain diperlakukan sebagai 500 tanpa membocorkan
// pesan internal ke klien.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
