package transformation

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTransformation = errors.New("transformation: unknown transformation")
	ErrInvalidParameters     = errors.New("transformation: invalid parameters")
)

// UnknownTransformationError is returned when no handler is registered under
// Name.
type UnknownTransformationError struct {
	Name string
}

func (e *UnknownTransformationError) Error() string {
	return fmt.Sprintf("transformation: no handler registered for %q", e.Name)
}

func (e *UnknownTransformationError) Unwrap() error {
	return ErrUnknownTransformation
}

// InvalidParametersError reports parameters a handler cannot apply.
type InvalidParametersError struct {
	Handler string
	Reason  string
}

func (e *InvalidParametersError) Error() string {
	return fmt.Sprintf("transformation: invalid parameters for %q: %s", e.Handler, e.Reason)
}

func (e *InvalidParametersError) Unwrap() error {
	return ErrInvalidParameters
}

func invalidParams(handler, format string, args ...any) error {
	return &InvalidParametersError{Handler: handler, Reason: fmt.Sprintf(format, args...)}
}
