package cmd

import (
	"fmt"
	"time"

	"github.com/rohmanhakim/weburl/internal/config"
	"github.com/rohmanhakim/weburl/internal/metadata"
	"github.com/rohmanhakim/weburl/pkg/weburl"
	"github.com/spf13/cobra"
)

// session holds what one command invocation needs: the built config, the
// recorder logging to stderr, and a parser whose validation errors go both to
// the log and to an in-memory collector for --diagnostics.
type session struct {
	cfg       config.Config
	recorder  *metadata.Recorder
	collector *weburl.Collector
	parser    weburl.Parser
	base      *weburl.URL
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := InitConfigWithError()
	if err != nil {
		return nil, err
	}

	logger, err := metadata.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel(), cfg.JSONLogs())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidConfig, err.Error())
	}
	recorder := metadata.NewRecorder(logger, "cli")

	s := &session{
		cfg:       cfg,
		recorder:  &recorder,
		collector: &weburl.Collector{},
	}
	s.parser = weburl.Parser{
		BeStrict: cfg.Strict(),
		Sink:     weburl.MultiSink{s.recorder, s.collector},
	}

	if cfg.BaseURL() != "" {
		s.base, err = s.parse(cfg.BaseURL(), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: base URL: %w", config.ErrInvalidConfig, err)
		}
	}
	return s, nil
}

// parse resolves input against base and records the outcome. Validation
// errors of the previous call are discarded first.
func (s *session) parse(input string, base *weburl.URL) (*weburl.URL, error) {
	s.collector.Reset()
	startedAt := time.Now()

	u, err := s.parser.Parse(input, base)
	if err != nil {
		attrs := []metadata.Attribute{metadata.NewAttr(metadata.AttrURL, input)}
		if base != nil {
			attrs = append(attrs, metadata.NewAttr(metadata.AttrBaseURL, base.Href()))
		}
		s.recorder.RecordError(
			time.Now(),
			"cli",
			"parse",
			metadata.CauseURLRejected,
			err.Error(),
			attrs,
		)
		return nil, err
	}

	s.recorder.RecordParse(input, u.Href(), time.Since(startedAt))
	return u, nil
}

// diagnostics returns the validation errors of the last parse when
// --diagnostics is on.
func (s *session) diagnostics() []string {
	if !s.cfg.ShowDiagnostics() {
		return nil
	}
	errs := s.collector.Errors()
	out := make([]string, 0, len(errs))
	for _, v := range errs {
		out = append(out, fmt.Sprintf("%s at %d (%s)", v.Code, v.Offset, v.State))
	}
	return out
}

func (s *session) render(cmd *cobra.Command, v any, text func(p *printer)) error {
	return render(cmd.OutOrStdout(), s.cfg.OutputFormat(), v, text)
}
