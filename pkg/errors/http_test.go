package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgErrors "github.com/asyncopatedsoul/health-protocol/pkg/errors"
)

func TestHTTPError(t *testing.T) {
	err := pkgErrors.NewHTTPError(404, "note not found")
	if err.Error() != "404: note not found" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	wrapped := fmt.Errorf("handler: %w", err)
	var httpErr *pkgErrors.HTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatal("expected errors.As to find HTTPError")
	}
	if httpErr.Code != 404 {
		t.Errorf("expected code 404, got %d", httpErr.Code)
	}
}
