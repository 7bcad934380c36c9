package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection matches every ConnectionError via errors.Is.
	ErrConnection = errors.New("word store unreachable")
	// ErrInvalidIdentifier is returned for table or column names that are not plain SQL identifiers.
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")
)

// ConnectionError reports a failed query against the remote word source.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("word store %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConnection) true for any ConnectionError.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}
