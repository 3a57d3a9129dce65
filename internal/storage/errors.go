package storage

import "errors"

// ErrNotFound is returned when a requested record does not exist or has
// expired.
var ErrNotFound = errors.New("not found")
