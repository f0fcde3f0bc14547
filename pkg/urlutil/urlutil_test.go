package urlutil

import (
	"testing"

	"github.com/rohmanhakim/weburl/pkg/hashutil"
	"github.com/rohmanhakim/weburl/pkg/weburl"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trailing slash removed",
			input:    "https://docs.example.com/guide/",
			expected: "https://docs.example.com/guide",
		},
		{
			name:     "no trailing slash stays same",
			input:    "https://docs.example.com/guide",
			expected: "https://docs.example.com/guide",
		},
		{
			name:     "fragment removed",
			input:    "https://docs.example.com/guide#index",
			expected: "https://docs.example.com/guide",
		},
		{
			name:     "query parameters sorted",
			input:    "https://docs.example.com/guide?b=2&a=1",
			expected: "https://docs.example.com/guide?a=1&b=2",
		},
		{
			name:     "query re-encoded",
			input:    "https://docs.example.com/guide?q=a%20b",
			expected: "https://docs.example.com/guide?q=a+b",
		},
		{
			name:     "scheme and host lowercased",
			input:    "HTTPS://DOCS.EXAMPLE.COM/GUIDE",
			expected: "https://docs.example.com/GUIDE",
		},
		{
			name:     "default http port removed",
			input:    "http://docs.example.com:80/guide",
			expected: "http://docs.example.com/guide",
		},
		{
			name:     "non-default port preserved",
			input:    "https://docs.example.com:8080/guide",
			expected: "https://docs.example.com:8080/guide",
		},
		{
			name:     "multiple trailing slashes removed",
			input:    "https://docs.example.com/guide///",
			expected: "https://docs.example.com/guide",
		},
		{
			name:     "root path preserved",
			input:    "https://docs.example.com/",
			expected: "https://docs.example.com/",
		},
		{
			name:     "empty query removed",
			input:    "https://docs.example.com/guide?",
			expected: "https://docs.example.com/guide",
		},
		{
			name:     "empty fragment removed",
			input:    "https://docs.example.com/guide#",
			expected: "https://docs.example.com/guide",
		},
		{
			name:     "opaque path untouched",
			input:    "mailto:docs@example.com#x",
			expected: "mailto:docs@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputURL, err := weburl.Parse(tt.input)
			if err != nil {
				t.Fatalf("failed to parse input URL %q: %v", tt.input, err)
			}

			result := Canonicalize(inputURL).Href()

			if result != tt.expected {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	testURLs := []string{
		"https://docs.example.com/guide/",
		"https://docs.example.com/guide?utm_source=twitter&a=%7e",
		"https://docs.example.com/guide#index",
		"HTTPS://DOCS.EXAMPLE.COM:443/GUIDE/?#",
		"http://example.com:80/path///",
	}

	for _, urlStr := range testURLs {
		t.Run(urlStr, func(t *testing.T) {
			inputURL, err := weburl.Parse(urlStr)
			if err != nil {
				t.Fatalf("failed to parse URL %q: %v", urlStr, err)
			}

			first := Canonicalize(inputURL)
			second := Canonicalize(first)

			if first.Href() != second.Href() {
				t.Errorf("Canonicalize is not idempotent: first=%q, second=%q", first.Href(), second.Href())
			}
		})
	}
}

func TestCanonicalizeDoesNotMutateInput(t *testing.T) {
	input := weburl.MustParse("https://example.com/path/?query=1#frag")
	original := input.Href()

	_ = Canonicalize(input)

	if input.Href() != original {
		t.Error("Canonicalize mutated the input URL")
	}
}

func TestKey(t *testing.T) {
	a, err := Key(weburl.MustParse("https://Example.com/guide/?b=1&a=2#top"), hashutil.HashAlgoBLAKE3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Key(weburl.MustParse("https://example.com:443/guide?a=2&b=1"), hashutil.HashAlgoBLAKE3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("expected equal keys, got %q and %q", a, b)
	}
}

func TestStripTrailingSlash(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/path/", "/path"},
		{"/path//", "/path"},
		{"/", "/"},
		{"//", "/"},
		{"/a/b", "/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := stripTrailingSlash(tt.input)
			if result != tt.expected {
				t.Errorf("stripTrailingSlash(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
