package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRefreshToken is returned when a refresh is needed but no refresh token is stored.
	ErrNoRefreshToken = errors.New("no refresh token")
	// ErrRefreshRejected is matched by every *RefreshError.
	ErrRefreshRejected = errors.New("refresh rejected")

	errPanicked = errors.New("refresh aborted by panic")
)

// RefreshError reports a refresh endpoint answering with a non-2xx status.
type RefreshError struct {
	StatusCode int
	Message    string
}

func (e *RefreshError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("refresh rejected: status %d", e.StatusCode)
	}
	return fmt.Sprintf("refresh rejected: status %d: %s", e.StatusCode, e.Message)
}

func (e *RefreshError) Is(target error) bool { return target == ErrRefreshRejected }
