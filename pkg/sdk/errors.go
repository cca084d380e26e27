package smuseum

import "github.com/kailas-cloud/smuseum/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrRemote        = domain.ErrRemote
	ErrNoArtistMatch = domain.ErrNoArtistMatch
	ErrNoTitleMatch  = domain.ErrNoTitleMatch
)

// RemoteError carries the museum status of a failed call. Use errors.As() to extract it.
type RemoteError = domain.RemoteError
