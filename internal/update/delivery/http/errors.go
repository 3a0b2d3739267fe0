package http

import (
	"errors"
	"net/http"

	"internship-journey-agent/internal/update"
	"internship-journey-agent/pkg/response"
)

var errPendingNotFound = errors.New("changeset not found or expired")

// mapError translates domain/use-case errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, update.ErrEmptyInput):
		return response.NewHTTPError(http.StatusBadRequest, "update text is empty")
	case errors.Is(err, update.ErrValidation):
		return response.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, update.ErrStaleState):
		return response.NewHTTPError(http.StatusConflict, "sheet changed since preview, interpret again")
	case errors.Is(err, update.ErrInferenceUnavailable):
		return response.NewHTTPError(http.StatusServiceUnavailable, "interpretation backend unavailable, try again later")
	case errors.Is(err, update.ErrCommit):
		return response.NewHTTPError(http.StatusBadGateway, "failed to write to the tracking sheet")
	case errors.Is(err, errPendingNotFound):
		return response.NewHTTPError(http.StatusNotFound, errPendingNotFound.Error())
	default:
		return response.NewHTTPError(http.StatusInternalServerError, response.DefaultErrorMessage)
	}
}
