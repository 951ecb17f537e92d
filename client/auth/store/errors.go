package store

import (
	"errors"
	"fmt"
)

// ErrStorage is matched by every *StorageError.
var ErrStorage = errors.New("credential storage failure")

// ErrIncompleteToken rejects writes missing either token of the pair.
var ErrIncompleteToken = errors.New("credential pair requires access and refresh token")

// StorageError reports a failed backend operation on a credential key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("credential store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("credential store %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports ErrStorage so callers can test for any storage failure.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
