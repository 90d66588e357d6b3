package review

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not_found")
	ErrCompanyNotFound = errors.New("company_not_found")
	ErrInvalidStatus   = errors.New("invalid_status")
)

// NotEligibleError reports the exact date the 12-month lock releases.
type NotEligibleError struct {
	BlockedUntil time.Time
}

func (e *NotEligibleError) Error() string {
	return fmt.Sprintf("not eligible until %s", e.BlockedUntil.Format(time.RFC3339))
}
