package weburl

import (
	"fmt"

	"github.com/rohmanhakim/weburl/pkg/failure"
)

// Validation error names reported by the state machine. Host-level names are
// defined in package host and forwarded unchanged.
const (
	CodeInvalidURLUnit                       = "invalid-URL-unit"
	CodeSpecialSchemeMissingFollowingSolidus = "special-scheme-missing-following-solidus"
	CodeMissingSchemeNonRelativeURL          = "missing-scheme-non-relative-URL"
	CodeInvalidReverseSolidus                = "invalid-reverse-solidus"
	CodeInvalidCredentials                   = "invalid-credentials"
	CodeHostMissing                          = "host-missing"
	CodePortOutOfRange                       = "port-out-of-range"
	CodePortInvalid                          = "port-invalid"
	CodeFileInvalidWindowsDriveLetter        = "file-invalid-Windows-drive-letter"
	CodeFileInvalidWindowsDriveLetterHost    = "file-invalid-Windows-drive-letter-host"
)

// ValidationError is a recoverable diagnostic: the input was malformed but
// parsing continued. Offset is the code point index in the normalized input
// where the parser was positioned.
type ValidationError struct {
	Code   string
	Offset int
	State  State
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s at %d (%s)", v.Code, v.Offset, v.State)
}

func (v ValidationError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

// DiagnosticSink receives validation errors as they are found. Sinks must
// not influence parsing.
type DiagnosticSink interface {
	RecordValidationError(input string, v ValidationError)
}

// Collector is a DiagnosticSink that keeps every validation error in order.
type Collector struct {
	errors []ValidationError
}

func (c *Collector) RecordValidationError(input string, v ValidationError) {
	c.errors = append(c.errors, v)
}

// Errors returns the collected validation errors.
func (c *Collector) Errors() []ValidationError {
	out := make([]ValidationError, len(c.errors))
	copy(out, c.errors)
	return out
}

// Codes returns the names of the collected validation errors.
func (c *Collector) Codes() []string {
	codes := make([]string, 0, len(c.errors))
	for _, v := range c.errors {
		codes = append(codes, v.Code)
	}
	return codes
}

func (c *Collector) Reset() {
	c.errors = nil
}

// MultiSink forwards every validation error to each of its sinks in order.
type MultiSink []DiagnosticSink

func (m MultiSink) RecordValidationError(input string, v ValidationError) {
	for _, sink := range m {
		if sink != nil {
			sink.RecordValidationError(input, v)
		}
	}
}
