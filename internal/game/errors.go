package game

import "errors"

// Sentinel errors callers branch on with errors.Is.
var (
	// ErrGameActive is returned by StartGame while another game is live.
	ErrGameActive = errors.New("a game is already active")
	// ErrInvalidTransition marks a lifecycle call the state machine rejects,
	// e.g. ending a half while already in the second. These are programming
	// errors in the caller and must be loud, not swallowed.
	ErrInvalidTransition = errors.New("invalid game transition")
	// ErrNotFound is returned when an action or player id is absent from the
	// relevant collection.
	ErrNotFound = errors.New("not found")
)

// ErrInvalidInput is the marker error for aggregated validation failures.
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a command.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}
