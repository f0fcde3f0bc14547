package weburl

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/weburl/pkg/failure"
	"github.com/rohmanhakim/weburl/pkg/host"
)

type ParseErrorCause string

const (
	// ErrCauseInvalidScheme indicates input that looks like it carries a
	// scheme (a ':' before any path, query or fragment delimiter) but whose
	// scheme syntax is invalid, or a scheme setter value that is not a scheme.
	ErrCauseInvalidScheme ParseErrorCause = "invalid scheme"

	// ErrCauseInvalidHost indicates the host parser rejected the host text, or
	// credentials were given without a host.
	ErrCauseInvalidHost ParseErrorCause = "invalid host"

	// ErrCauseInvalidPort indicates a port above 65535 or a non-digit in the
	// port.
	ErrCauseInvalidPort ParseErrorCause = "invalid port"

	ErrCauseInvalidIPv4Address ParseErrorCause = "invalid IPv4 address"
	ErrCauseInvalidIPv6Address ParseErrorCause = "invalid IPv6 address"

	// ErrCauseIDNAFailure indicates domain-to-ASCII rejected the host.
	ErrCauseIDNAFailure ParseErrorCause = "IDNA failure"

	// ErrCauseMissingHostForSpecialScheme indicates an empty host for a
	// special scheme other than file.
	ErrCauseMissingHostForSpecialScheme ParseErrorCause = "missing host for special scheme"

	// ErrCauseRelativeURLWithoutBase indicates input without a scheme and no
	// usable base URL.
	ErrCauseRelativeURLWithoutBase ParseErrorCause = "relative URL without base"

	// ErrCauseInvalidBase indicates the base URL text itself failed to parse.
	ErrCauseInvalidBase ParseErrorCause = "invalid base URL"

	// ErrCauseSetterRejected indicates a setter whose precondition does not
	// hold for the record, such as a username on a URL without a host.
	ErrCauseSetterRejected ParseErrorCause = "setter rejected"
)

type ParseError struct {
	Input   string
	Message string
	Cause   ParseErrorCause
	Err     error
}

func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("url parse error: %s", e.Cause)
	}
	return fmt.Sprintf("url parse error: %s, %s", e.Cause, e.Message)
}

func (e *ParseError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match ParseError values by cause. A target with an
// empty cause matches any ParseError.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Cause == "" || t.Cause == e.Cause
}

// fromHostError maps a host parser rejection onto the URL error causes.
func fromHostError(input string, err error) *ParseError {
	cause := ErrCauseInvalidHost
	var hostErr *host.HostError
	if errors.As(err, &hostErr) {
		switch hostErr.Cause {
		case host.ErrCauseInvalidIPv4Address:
			cause = ErrCauseInvalidIPv4Address
		case host.ErrCauseInvalidIPv6Address:
			cause = ErrCauseInvalidIPv6Address
		case host.ErrCauseIDNAFailure:
			cause = ErrCauseIDNAFailure
		}
	}
	return &ParseError{
		Input:   input,
		Message: err.Error(),
		Cause:   cause,
		Err:     err,
	}
}
