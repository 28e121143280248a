package api

import (
	"alcyxob/run-schedule/internal/calendar"
	"alcyxob/run-schedule/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrInvalidPlanRange),
		errors.Is(err, service.ErrTrainingOutsidePlan),
		errors.Is(err, calendar.ErrInvalidMonth):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPlanAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrTrainingNotFound),
		errors.Is(err, service.ErrMonthOutsidePlan):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrTrainingDayTaken),
		errors.Is(err, service.ErrPlanRangeExcludesTrainings),
		errors.Is(err, service.ErrAmbiguousTrainingDay):
		return http.StatusConflict
	case errors.Is(err, service.ErrExportUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abortWithServiceError answers with the mapped status. Internal errors are
// logged and replaced by a generic message naming the failed action.
func abortWithServiceError(c *gin.Context, err error, action string) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		log.Printf("ERROR: Failed to %s: %v", action, err)
		abortWithError(c, code, "Failed to "+action+".")
		return
	}
	if errors.Is(err, service.ErrAmbiguousTrainingDay) {
		log.Printf("WARN: Data consistency problem while trying to %s: %v", action, err)
	}
	abortWithError(c, code, err.Error())
}
