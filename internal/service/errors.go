package service

import "errors"

var (
	// ErrNotFound means no record matches the id for this owner.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidState means the record is no longer in scheduled status.
	ErrInvalidState = errors.New("record is not in scheduled status")
)

// ValidationError reports bad request input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
