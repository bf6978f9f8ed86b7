package store

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable is wrapped by every error caused by the storage
// medium: the file could not be opened, read, or written.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrNotFound is returned by Get when no record exists for the id.
var ErrNotFound = errors.New("record not found")

// unavailable wraps a driver error so that it matches both
// ErrStorageUnavailable and the driver error.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

// IsUnavailable reports whether err was caused by the storage medium.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
