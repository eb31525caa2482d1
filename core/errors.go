package core

import "github.com/pkg/errors"

// ErrNoRecord is returned by a Store when nothing is stored under the requested key.
var ErrNoRecord = errors.New("no record stored under this key")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// StorageError reports a collection that could not be persisted.
// The in-memory change that preceded it is kept.
type StorageError struct {
	Collection string
	Err        error
}

func NewStorageError(collection string, err error) error {
	return &StorageError{Collection: collection, Err: err}
}

func (err StorageError) Error() string {
	return "saving " + err.Collection + ": " + err.Err.Error()
}

func (err StorageError) Unwrap() error { return err.Err }

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func IsStorageError(err error) bool {
	var sErr *StorageError
	return errors.As(err, &sErr)
}
