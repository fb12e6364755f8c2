package repositories

import "errors"

// ErrNotFound is returned (wrapped) when a lookup matches no record.
var ErrNotFound = errors.New("record not found")
