package http

import (
	"errors"
	"net/http"

	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	pkgErrors "github.com/asyncopatedsoul/health-protocol/pkg/errors"
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, importer.ErrNoteNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "note not found")
	case errors.Is(err, importer.ErrUserNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "user not found")
	case errors.Is(err, importer.ErrMissingNoteID),
		errors.Is(err, importer.ErrMissingUser),
		errors.Is(err, importer.ErrEmptyContent),
		errors.Is(err, importer.ErrInvalidImportBy),
		errors.Is(err, importer.ErrInvalidDateRange):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
