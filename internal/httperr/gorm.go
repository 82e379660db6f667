package httperr

import (
	"errors"

	"gorm.io/gorm"
)

func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// NotFoundAs turns a missing-row error into a NotFound business error with
// code; any other error is returned unchanged.
func NotFoundAs(err error, code string) error {
	if IsRecordNotFound(err) {
		return ErrNotFound(code)
	}
	return err
}
