package grid

import (
	"errors"
	"fmt"
)

// ErrorKind classifies map loading failures.
type ErrorKind int

const (
	// ErrorIO means the map source could not be read.
	ErrorIO ErrorKind = iota
	// ErrorInvalidFormat means the source was read but is not a valid map.
	ErrorInvalidFormat
)

// Sentinels for errors.Is matching on a *MapError.
var (
	ErrIO            = errors.New("map source unreadable")
	ErrInvalidFormat = errors.New("invalid map format")
)

// MapError is returned by the parsers and loaders in this package.
type MapError struct {
	Kind   ErrorKind
	Reason string // set for ErrorInvalidFormat
	Err    error  // underlying read error for ErrorIO
}

func (e *MapError) Error() string {
	if e.Kind == ErrorIO {
		return fmt.Sprintf("grid: io: %v", e.Err)
	}
	return fmt.Sprintf("grid: invalid format: %s", e.Reason)
}

// Unwrap exposes the underlying read error.
func (e *MapError) Unwrap() error {
	return e.Err
}

// Is matches the ErrIO and ErrInvalidFormat sentinels.
func (e *MapError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == ErrorIO
	case ErrInvalidFormat:
		return e.Kind == ErrorInvalidFormat
	}
	return false
}

func ioError(err error) error {
	return &MapError{Kind: ErrorIO, Err: err}
}

func formatError(reason string) error {
	return &MapError{Kind: ErrorInvalidFormat, Reason: reason}
}
