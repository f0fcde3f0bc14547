package failure

type Severity int

// parse outcome classification
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityRecoverable:
		return "recoverable"
	default:
		return "unknown"
	}
}

// ClassifiedError is implemented by every error the URL engine produces.
// Fatal errors abort the operation; recoverable ones are validation
// diagnostics that leave the outcome unchanged.
type ClassifiedError interface {
	error
	Severity() Severity
}
