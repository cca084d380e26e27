package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRemote signals a failed call to the museum backend.
	ErrRemote = errors.New("museum backend error")
	// ErrNoArtistMatch signals that the artist search returned nothing.
	ErrNoArtistMatch = errors.New("no artworks for artist")
	// ErrNoTitleMatch signals that no fetched record carries the searched title.
	ErrNoTitleMatch = errors.New("no artwork titled like query")
	// ErrInvalidQuery signals malformed lookup parameters.
	ErrInvalidQuery = errors.New("invalid query")
)

// RemoteError carries the upstream status of a failed museum call.
// StatusCode is 0 when no HTTP response was received.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s: %s", ErrRemote.Error(), e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s: status %d: %s", ErrRemote.Error(), e.Op, e.StatusCode, e.Message)
}

func (e *RemoteError) Unwrap() error { return ErrRemote }

// NewRemoteError creates a remote error for the given operation.
func NewRemoteError(op string, statusCode int, message string) error {
	return &RemoteError{Op: op, StatusCode: statusCode, Message: message}
}
