package extractor

import (
	"fmt"

	"github.com/rohmanhakim/weburl/internal/metadata"
	"github.com/rohmanhakim/weburl/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseNotHTML           ExtractionErrorCause = "not html"
	ErrCauseUnsupportedFormat ExtractionErrorCause = "unsupported format"
)

type ExtractionError struct {
	Message   string
	Retryable bool
	Cause     ExtractionErrorCause
}

func (e *ExtractionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("extraction error: %s", e.Cause)
	}
	return fmt.Sprintf("extraction error: %s: %s", e.Cause, e.Message)
}

func (e *ExtractionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *ExtractionError) Is(target error) bool {
	t, ok := target.(*ExtractionError)
	if !ok {
		return false
	}
	return t.Cause == "" || t.Cause == e.Cause
}

// mapExtractionErrorToMetadataCause maps extractor-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapExtractionErrorToMetadataCause(err *ExtractionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotHTML, ErrCauseUnsupportedFormat:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
