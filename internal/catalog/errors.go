package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced key is absent from its collection.
	ErrNotFound = errors.New("record not found")
)

// ValidationError rejects bad input before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
