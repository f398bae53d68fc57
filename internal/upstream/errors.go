package upstream

import (
	"errors"
	"fmt"
)

// Sentinel errors for transport outcomes. Callers branch with errors.Is.
var (
	// ErrNetwork means the transport failed before any response arrived
	// (dial failure, timeout, connection reset).
	ErrNetwork = errors.New("network error")
	// ErrUpstream means the backend answered with a non-success status.
	ErrUpstream = errors.New("upstream error")
	// ErrMalformed means the response body could not be parsed as the
	// expected structure.
	ErrMalformed = errors.New("malformed response")
)

// ErrorKind tags a failed Result so callers can branch without string
// matching. The zero value means "no error".
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNetwork
	KindUpstream
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUpstream:
		return "upstream"
	case KindMalformed:
		return "malformed"
	default:
		return "none"
	}
}

// Sentinel maps a kind to its sentinel error.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindUpstream:
		return ErrUpstream
	case KindMalformed:
		return ErrMalformed
	default:
		return nil
	}
}

// Err converts a failed Result into an error wrapping the kind's sentinel,
// or nil for a successful one.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	sentinel := r.Kind.Sentinel()
	if sentinel == nil {
		sentinel = ErrUpstream
	}
	if r.Message == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, r.Message)
}
