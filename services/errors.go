package services

import (
	"ClassFeed/repositories"
	"errors"
	"fmt"
)

var (
	ErrNotFound   = repositories.ErrNotFound
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes a malformed request parameter.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
