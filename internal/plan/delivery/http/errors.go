package http

import (
	"errors"
	"net/http"

	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	pkgErrors "github.com/asyncopatedsoul/health-protocol/pkg/errors"
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, plan.ErrMissingUser),
		errors.Is(err, plan.ErrMissingProgram),
		errors.Is(err, plan.ErrInvalidDuration),
		errors.Is(err, plan.ErrInvalidStartDate):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, plan.ErrUserNotFound), errors.Is(err, plan.ErrProgramNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, plan.ErrInvalidProgram):
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
