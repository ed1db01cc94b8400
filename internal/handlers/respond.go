package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ujjwal0011/job-portal/internal/apperrors"
)

// Fail is the single place service errors become HTTP responses. Anything
// outside the taxonomy is logged and hidden behind a generic 500.
func Fail(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		logrus.WithError(err).Error("Unhandled internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An unexpected error occurred."})
		return
	}
	c.JSON(statusFor(appErr.Code), gin.H{"success": false, "message": appErr.Message})
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodeForbidden:
		return http.StatusForbidden
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeConflict:
		return http.StatusConflict
	case apperrors.CodeUpload:
		return http.StatusBadGateway
	case apperrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// bindFail reports a request-binding error as a validation failure.
func bindFail(c *gin.Context, err error) {
	Fail(c, apperrors.Validation("Invalid request: "+err.Error()))
}
