package ogcapi

import (
	"errors"
	"net/http"

	"github.com/drblury/geoweaver/catalog"
	"github.com/drblury/geoweaver/extension"
	"github.com/drblury/geoweaver/format"
)

// ClassifyError maps the errors of document assembly to HTTP statuses:
// unsupported representations are client errors, unknown collections are not
// found and extension failures are server errors.
func ClassifyError(err error) (int, bool) {
	switch {
	case errors.Is(err, format.ErrUnsupportedRepresentation):
		return http.StatusBadRequest, true
	case errors.Is(err, catalog.ErrCollectionNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, extension.ErrExtensionFailure):
		return http.StatusInternalServerError, true
	default:
		return 0, false
	}
}
