package storage

import (
	"errors"
	"fmt"
)

var (
	ErrDatabaseRequired = errors.New("storage: database is required")
	ErrRecordNotFound   = errors.New("storage: record not found")
)

// NotFoundError reports a missing resource reference.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRecordNotFound
}
