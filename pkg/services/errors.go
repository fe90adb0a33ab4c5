package services

import "errors"

// ErrValidation marks errors caused by invalid input rather than storage or
// infrastructure failures.
var ErrValidation = errors.New("invalid workflow")

// IsValidationError reports whether an error stems from input validation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
