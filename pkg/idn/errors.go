package idn

import (
	"fmt"

	"github.com/rohmanhakim/weburl/pkg/failure"
)

type IDNAErrorCause string

const (
	// ErrCauseProcessingFailed indicates UTS46 processing rejected the domain:
	// a disallowed code point, a malformed Punycode label, a bidi or joiner
	// rule violation, or (in strict mode) a DNS length violation.
	ErrCauseProcessingFailed IDNAErrorCause = "UTS46 processing failed"

	// ErrCauseEmptyResult indicates the domain mapped to the empty string.
	ErrCauseEmptyResult IDNAErrorCause = "empty domain after mapping"
)

type IDNAError struct {
	Domain  string
	Message string
	Cause   IDNAErrorCause
}

func (e *IDNAError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("idna error: %s", e.Cause)
	}
	return fmt.Sprintf("idna error: %s, %s", e.Cause, e.Message)
}

func (e *IDNAError) Severity() failure.Severity {
	return failure.SeverityFatal
}

// Is allows errors.Is to match IDNAError values by cause. A target with an
// empty cause matches any IDNAError.
func (e *IDNAError) Is(target error) bool {
	t, ok := target.(*IDNAError)
	if !ok {
		return false
	}
	return t.Cause == "" || t.Cause == e.Cause
}
