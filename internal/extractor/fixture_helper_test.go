package extractor_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/weburl/internal/config"
	"github.com/rohmanhakim/weburl/internal/extractor"
	"github.com/rohmanhakim/weburl/internal/metadata"
	"github.com/rohmanhakim/weburl/pkg/weburl"
	"github.com/stretchr/testify/require"
)

// fixtureDir returns the path to the fixture directory
func fixtureDir() string {
	return filepath.Join(".", "fixture")
}

func loadFixture(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtureDir(), filename))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", filename, err)
	}
	return data
}

// mockMetadataSink is a test spy that captures recorded errors and stats
type mockMetadataSink struct {
	metadata.NoopSink
	errors      []recordedError
	stats       []metadata.ExtractionStats
	validations []weburl.ValidationError
}

type recordedError struct {
	PackageName string
	Action      string
	Cause       metadata.ErrorCause
	ErrorString string
	Attrs       []metadata.Attribute
}

func (m *mockMetadataSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	errorString string,
	attrs []metadata.Attribute,
) {
	m.errors = append(m.errors, recordedError{
		PackageName: packageName,
		Action:      action,
		Cause:       cause,
		ErrorString: errorString,
		Attrs:       attrs,
	})
}

func (m *mockMetadataSink) RecordExtraction(stats metadata.ExtractionStats) {
	m.stats = append(m.stats, stats)
}

func (m *mockMetadataSink) RecordValidationError(input string, v weburl.ValidationError) {
	m.validations = append(m.validations, v)
}

func setupExtractor(t *testing.T, cfg *config.Config) (*extractor.LinkExtractor, *mockMetadataSink) {
	t.Helper()
	if cfg == nil {
		cfg = config.WithDefault()
	}
	built, err := cfg.Build()
	require.NoError(t, err)

	sink := &mockMetadataSink{}
	ext := extractor.NewLinkExtractor(sink, built)
	return &ext, sink
}

func hrefs(links []extractor.Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.URL.Href())
	}
	return out
}
