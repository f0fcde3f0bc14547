package metadata

import (
	"time"
)

/*
ErrorCause is a closed, canonical classification used exclusively for
observability (logging, reporting).

Rules:
  - ErrorCause MUST NOT influence control flow.
  - Packages MAY map their local errors to ErrorCause, but MUST NOT invent
    new meanings.
  - ErrorCause does not encode severity; that is failure.Severity.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.

# CauseURLRejected

Meaning:
  - A URL or a component value failed to parse.

Examples:
  - Relative reference without a base
  - Invalid host, port or IP address
  - Setter precondition failures

# CauseContentInvalid

Meaning:
  - A document was read but could not be processed meaningfully.

Examples:
  - Unreadable HTML
  - Document URL that does not parse

# CauseConfigInvalid

Meaning:
  - The configuration file or flags are unusable.

# CauseInvariantViolation

Meaning:
  - An internal consistency check failed.

Examples:
  - A canonical href that does not reparse to itself
*/
const (
	CauseUnknown ErrorCause = iota
	CauseURLRejected
	CauseContentInvalid
	CauseConfigInvalid
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseURLRejected:
		return "url_rejected"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseConfigInvalid:
		return "config_invalid"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type ErrorRecord struct {
	packageName string
	action      string
	cause       ErrorCause
	errorString string
	observedAt  time.Time
	attrs       []Attribute
}

func (e ErrorRecord) PackageName() string {
	return e.packageName
}

func (e ErrorRecord) Action() string {
	return e.action
}

func (e ErrorRecord) Cause() ErrorCause {
	return e.cause
}

func (e ErrorRecord) ErrorString() string {
	return e.errorString
}

func (e ErrorRecord) ObservedAt() time.Time {
	return e.observedAt
}

func (e ErrorRecord) Attrs() []Attribute {
	return e.attrs
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrTime     AttributeKey = "time"
	AttrURL      AttributeKey = "url"
	AttrBaseURL  AttributeKey = "base_url"
	AttrHost     AttributeKey = "host"
	AttrField    AttributeKey = "field"
	AttrValue    AttributeKey = "value"
	AttrDocument AttributeKey = "document"
	AttrLink     AttributeKey = "link"
	AttrConfig   AttributeKey = "config"
)

// ExtractionStats summarizes one link extraction run over a document.
type ExtractionStats struct {
	documentURL string
	found       int
	resolved    int
	rejected    int
	duplicates  int
	durationMs  int64
}

func NewExtractionStats(documentURL string, found, resolved, rejected, duplicates int, duration time.Duration) ExtractionStats {
	return ExtractionStats{
		documentURL: documentURL,
		found:       found,
		resolved:    resolved,
		rejected:    rejected,
		duplicates:  duplicates,
		durationMs:  duration.Milliseconds(),
	}
}

func (s ExtractionStats) DocumentURL() string {
	return s.documentURL
}

func (s ExtractionStats) Found() int {
	return s.found
}

func (s ExtractionStats) Resolved() int {
	return s.resolved
}

func (s ExtractionStats) Rejected() int {
	return s.rejected
}

func (s ExtractionStats) Duplicates() int {
	return s.duplicates
}
