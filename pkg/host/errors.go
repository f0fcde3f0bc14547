package host

import (
	"fmt"

	"github.com/rohmanhakim/weburl/pkg/failure"
)

type HostErrorCause string

const (
	// ErrCauseInvalidHost indicates a forbidden code point in an opaque host
	// or in the ASCII form of a domain, or an empty host where one is required.
	ErrCauseInvalidHost HostErrorCause = "invalid host"

	// ErrCauseInvalidIPv4Address indicates a host ending in a number that does
	// not form a valid IPv4 address.
	ErrCauseInvalidIPv4Address HostErrorCause = "invalid IPv4 address"

	// ErrCauseInvalidIPv6Address indicates a bracketed host that is not a
	// valid IPv6 address, including an unclosed bracket.
	ErrCauseInvalidIPv6Address HostErrorCause = "invalid IPv6 address"

	// ErrCauseIDNAFailure indicates domain-to-ASCII rejected the domain.
	ErrCauseIDNAFailure HostErrorCause = "IDNA failure"
)

type HostError struct {
	Input   string
	Message string
	Cause   HostErrorCause
	Err     error
}

func (e *HostError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("host error: %s", e.Cause)
	}
	return fmt.Sprintf("host error: %s, %s", e.Cause, e.Message)
}

func (e *HostError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *HostError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match HostError values by cause. A target with an
// empty cause matches any HostError.
func (e *HostError) Is(target error) bool {
	t, ok := target.(*HostError)
	if !ok {
		return false
	}
	return t.Cause == "" || t.Cause == e.Cause
}
