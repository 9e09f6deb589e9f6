package apperrors

import "errors"

// ErrNotFound indicates that a requested invoice or payment could not be found.
var ErrNotFound = errors.New("record not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")
