package domain

import (
	"errors"
	"io/fs"
)

var (
	// ErrMissingColumn reports a station archive without a required column.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidDate reports a year/month/day triple that is not a calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

// ErrorClass names the failure class of a merge error: "io", "schema",
// "data", or "unknown".
func ErrorClass(err error) string {
	var pathErr *fs.PathError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingColumn):
		return "schema"
	case errors.Is(err, ErrInvalidDate):
		return "data"
	case errors.As(err, &pathErr):
		return "io"
	default:
		return "unknown"
	}
}
