package okrerrors

import (
	"net/http"

	"go-orgkit/internal/shared/apperror"
)

var (
	ErrGoalNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company goal not found",
		http.StatusNotFound,
	)

	ErrObjectiveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Objective not found",
		http.StatusNotFound,
	)

	ErrKeyResultNotFound = apperror.New(
		apperror.CodeNotFound,
		"Key result not found",
		http.StatusNotFound,
	)

	ErrActionPlanNotFound = apperror.New(
		apperror.CodeNotFound,
		"Action plan not found",
		http.StatusNotFound,
	)
)
