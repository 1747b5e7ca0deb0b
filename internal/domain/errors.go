package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks input the caller can fix; handlers translate it to a
// 400 with the message passed through.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
