package store

import "errors"

// Sentinel errors shared by both backends. Handlers translate these into
// HTTP statuses; wrap with fmt.Errorf("...: %w", Err...) to add context.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
)
