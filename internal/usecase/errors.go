package usecase

import (
	crerr "github.com/cockroachdb/errors"
)

// Error kinds. Concrete errors are tagged with crerr.Mark so the message stays
// user facing while the kind survives wrapping.
var (
	ErrInvalidInput        = crerr.New("invalid input")
	ErrNotFound            = crerr.New("not found")
	ErrNotYetAvailable     = crerr.New("not yet available")
	ErrUpstreamUnavailable = crerr.New("upstream unavailable")
	ErrDecodeFailure       = crerr.New("decode failure")
)

type Kind string

const (
	KindUnknown             Kind = "unknown"
	KindInvalidInput        Kind = "invalid_input"
	KindNotFound            Kind = "not_found"
	KindNotYetAvailable     Kind = "not_yet_available"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindDecodeFailure       Kind = "decode_failure"
)

// KindOf returns the kind tag carried by err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case crerr.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case crerr.Is(err, ErrNotFound):
		return KindNotFound
	case crerr.Is(err, ErrNotYetAvailable):
		return KindNotYetAvailable
	case crerr.Is(err, ErrUpstreamUnavailable):
		return KindUpstreamUnavailable
	case crerr.Is(err, ErrDecodeFailure):
		return KindDecodeFailure
	default:
		return KindUnknown
	}
}

func matchNotFoundError(matchID, leagueID string) error {
	return crerr.Mark(crerr.Newf("Match ID %s not found in the fixtures feed for League %s.", matchID, leagueID), ErrNotFound)
}

func heatmapNotAvailableError(matchID string) error {
	return crerr.Mark(crerr.Newf("Heatmap data not yet available for Match ID %s.", matchID), ErrNotYetAvailable)
}
