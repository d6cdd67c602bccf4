// internal/store/errors.go
package store

import "errors"

// ErrNotFound is returned when a profile or match lookup misses.
var ErrNotFound = errors.New("not found")

// ErrDuplicateMatch is returned when a match id is recorded a second time.
var ErrDuplicateMatch = errors.New("match already recorded")
