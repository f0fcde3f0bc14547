package metadata

import (
	"io"
	"time"

	"github.com/rohmanhakim/weburl/pkg/failure"
	"github.com/rohmanhakim/weburl/pkg/weburl"
	"github.com/rs/zerolog"
)

/*
Metadata Collected
- Validation errors raised while parsing (code, offset, parser state)
- Fatal parse and setter failures
- Link extraction summaries

Logging Goals
- Explain why a URL was rewritten or rejected
- Failure diagnostics for extraction runs

Metadata is write-only.
No component may read metadata to influence parsing or resolution.
*/

/*
Recorder writes structured events to a zerolog logger.
It must not:
- affect control flow
- alter parse results
Events are recorded synchronously in the order they are received.
*/
type Recorder struct {
	logger zerolog.Logger
	source string
}

func NewRecorder(logger zerolog.Logger, source string) Recorder {
	return Recorder{
		logger: logger.With().Str("source", source).Logger(),
		source: source,
	}
}

// NewLogger builds the process logger. Console output is human readable;
// jsonOutput switches to one JSON object per line.
func NewLogger(w io.Writer, level string, jsonOutput bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if !jsonOutput {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	event := r.logger.Error().
		Str("severity", failure.SeverityFatal.String()).
		Time(string(AttrTime), observedAt).
		Str("package", packageName).
		Str("action", action).
		Str("cause", cause.String())
	for _, attr := range attrs {
		event = event.Str(string(attr.Key), attr.Value)
	}
	event.Msg(errorString)
}

// RecordValidationError makes Recorder a weburl.DiagnosticSink.
func (r *Recorder) RecordValidationError(input string, v weburl.ValidationError) {
	r.logger.Warn().
		Str(string(AttrURL), input).
		Str("code", v.Code).
		Int("offset", v.Offset).
		Str("state", v.State.String()).
		Str("severity", v.Severity().String()).
		Msg("validation error")
}

func (r *Recorder) RecordParse(input string, href string, duration time.Duration) {
	r.logger.Debug().
		Str("input", input).
		Str("href", href).
		Dur("duration", duration).
		Msg("parsed")
}

func (r *Recorder) RecordExtraction(stats ExtractionStats) {
	r.logger.Info().
		Str(string(AttrDocument), stats.documentURL).
		Int("found", stats.found).
		Int("resolved", stats.resolved).
		Int("rejected", stats.rejected).
		Int("duplicates", stats.duplicates).
		Int64("duration_ms", stats.durationMs).
		Msg("links extracted")
}

type MetadataSink interface {
	weburl.DiagnosticSink

	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordParse(input string, href string, duration time.Duration)
	RecordExtraction(stats ExtractionStats)
}

// NoopSink implements MetadataSink and drops everything.
// Callers (or tests) decide whether to inject a Recorder or a NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordValidationError(input string, v weburl.ValidationError) {}

func (n *NoopSink) RecordParse(input string, href string, duration time.Duration) {}

func (n *NoopSink) RecordExtraction(stats ExtractionStats) {}
