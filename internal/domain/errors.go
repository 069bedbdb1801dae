package domain

import "errors"

// Validation and capacity errors are raised before any write reaches the
// store. Store failures are logged and passed through unchanged.
var (
	ErrTitleRequired      = errors.New("title is required")
	ErrFolderNameRequired = errors.New("folder name is required")
	ErrMissingID          = errors.New("missing identifier")
	ErrContentTooLarge    = errors.New("content too large")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
