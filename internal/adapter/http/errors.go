package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"wfh-backend/internal/domain/wfhrequest"
	"wfh-backend/internal/usecase/sweep"
)

// statusFor maps domain error kinds to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, wfhrequest.ErrNotFound), errors.Is(err, wfhrequest.ErrStaffNotFound):
		return http.StatusNotFound
	case errors.Is(err, wfhrequest.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, wfhrequest.ErrInvalidTransition), errors.Is(err, sweep.ErrSweepInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as ErrorResponse. Not-found kinds use the fixed
// messages clients match on.
func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	switch {
	case errors.Is(err, wfhrequest.ErrStaffNotFound):
		msg = "Staff not found"
	case errors.Is(err, wfhrequest.ErrNotFound):
		msg = "Request not found"
	}
	if code >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}
