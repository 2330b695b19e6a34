package http

import (
	"errors"
	"net/http"

	"github.com/asyncopatedsoul/health-protocol/internal/activity"
	pkgErrors "github.com/asyncopatedsoul/health-protocol/pkg/errors"
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, activity.ErrEmptyName), errors.Is(err, activity.ErrEmptyQuery):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, activity.ErrActivityNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, activity.ErrSearchUnavailable):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
