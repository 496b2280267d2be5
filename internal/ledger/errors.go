package ledger

import "errors"

// ValidationError reports malformed or semantically invalid booking
// input. Handlers translate it into an HTTP 400 response carrying the
// Reason text.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AsValidation returns the *ValidationError wrapped in err, or nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func errInvalidDate() error {
	return &ValidationError{Reason: "invalid date format"}
}

func errDropoffNotAfterPickup() error {
	return &ValidationError{Reason: "dropoff must be after pickup"}
}
