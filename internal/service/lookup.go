package service

import (
	"database/sql"
	"errors"

	appErrors "github.com/acadtrack/tracker-api/pkg/errors"
)

// mapLookupErr converts a reference lookup failure into the domain error
// taxonomy: missing rows become not found, anything else is internal.
func mapLookupErr(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMsg)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internalMsg)
}
