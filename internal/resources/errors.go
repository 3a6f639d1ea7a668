package resources

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidVariationURL = errors.New("resources: variation url is invalid")
	ErrIncompletePayload   = errors.New("resources: incomplete resource payload")
	ErrNullResource        = errors.New("resources: operation on null resource")
)

// IncompletePayloadError lists the required keys missing from a raw payload.
type IncompletePayloadError struct {
	Missing []string
}

func (e *IncompletePayloadError) Error() string {
	return fmt.Sprintf("resources: incomplete resource payload, missing %s", strings.Join(e.Missing, ", "))
}

func (e *IncompletePayloadError) Unwrap() error {
	return ErrIncompletePayload
}
