package cmd_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cmd "github.com/rohmanhakim/weburl/internal/cli"
	"github.com/rohmanhakim/weburl/internal/build"
	"github.com/rohmanhakim/weburl/internal/config"
	"github.com/rohmanhakim/weburl/pkg/weburl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd.ResetFlags()
	var out, errOut bytes.Buffer
	err := cmd.ExecuteWithArgs(args, &out, &errOut)
	return out.String(), err
}

func TestParseCommand_JSON(t *testing.T) {
	out, err := run(t, "parse", "-o", "json", "--diagnostics", "http:EXAMPLE.com/a/./b?x#y")
	require.NoError(t, err)

	var reports []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "http://example.com/a/b?x#y", r["href"])
	assert.Equal(t, "http:", r["protocol"])
	assert.Equal(t, "/a/b", r["pathname"])
	assert.Equal(t, "?x", r["search"])
	assert.Equal(t, "#y", r["hash"])
	assert.Equal(t, "http://example.com", r["origin"])
	assert.NotEmpty(t, r["fingerprint"])

	diagnostics, ok := r["diagnostics"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, diagnostics)
	assert.True(t, strings.HasPrefix(diagnostics[0].(string), weburl.CodeSpecialSchemeMissingFollowingSolidus))
}

func TestParseCommand_TextWithBase(t *testing.T) {
	out, err := run(t, "parse", "--base", "https://example.com/docs/", "guide/../intro")
	require.NoError(t, err)

	assert.Contains(t, out, "https://example.com/docs/intro")
	assert.Contains(t, out, "pathname:")
	assert.NotContains(t, out, "diagnostics:")
}

func TestParseCommand_FailureIsReported(t *testing.T) {
	out, err := run(t, "parse", "https://ok.example/", "no scheme")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cmd.ErrParseFailed))

	assert.Contains(t, out, "https://ok.example/")
	assert.Contains(t, out, "relative URL without base")
}

func TestResolveCommand_YAML(t *testing.T) {
	out, err := run(t, "resolve", "-o", "yaml", "https://example.com/a/b/c", "../d", "?q", "//other.example/x")
	require.NoError(t, err)

	var reports []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 3)
	assert.Equal(t, "https://example.com/a/d", reports[0]["href"])
	assert.Equal(t, "https://example.com/a/b/c?q", reports[1]["href"])
	assert.Equal(t, "https://other.example/x", reports[2]["href"])
}

func TestResolveCommand_InvalidBase(t *testing.T) {
	_, err := run(t, "resolve", "not a base", "x")
	assert.True(t, errors.Is(err, cmd.ErrParseFailed))
}

func TestSetCommand(t *testing.T) {
	out, err := run(t, "set", "-o", "json", "https://example.com/path", "port", "8080")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "https://example.com:8080/path", report["href"])

	_, err = run(t, "set", "file:///x", "username", "bob")
	assert.True(t, errors.Is(err, &weburl.ParseError{Cause: weburl.ErrCauseSetterRejected}))

	_, err = run(t, "set", "https://example.com/", "colour", "red")
	assert.True(t, errors.Is(err, cmd.ErrUnknownComponent))
}

func TestOriginCommand(t *testing.T) {
	out, err := run(t, "origin", "-o", "json", "https://example.com:443/x", "https://EXAMPLE.com/y")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "https://example.com", report["origin"])
	assert.Equal(t, false, report["opaque"])
	assert.Equal(t, true, report["sameOrigin"])

	out, err = run(t, "origin", "data:text/plain,hi")
	require.NoError(t, err)
	assert.Contains(t, out, "null")
	assert.Contains(t, out, "true")
}

func TestHostCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind string
		host string
	}{
		{"ipv4 shorthand", []string{"0x7f.1"}, "ipv4", "127.0.0.1"},
		{"ipv6 compressed", []string{"[2001:db8:0:0:0:0:0:1]"}, "ipv6", "[2001:db8::1]"},
		{"domain lowercased", []string{"Example.COM"}, "domain", "example.com"},
		{"opaque kept", []string{"--opaque", "Ex%41mple"}, "opaque", "Ex%41mple"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"host", "-o", "json"}, tt.args...)
			out, err := run(t, args...)
			require.NoError(t, err)

			var report map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &report))
			assert.Equal(t, tt.kind, report["kind"])
			assert.Equal(t, tt.host, report["host"])
		})
	}
}

func TestHostCommand_UnicodeAndFailure(t *testing.T) {
	out, err := run(t, "host", "xn--bcher-kva.example")
	require.NoError(t, err)
	assert.Contains(t, out, "bücher.example")

	_, err = run(t, "host", "256.0.0.1")
	require.Error(t, err)
}

func TestExtractCommand_HTML(t *testing.T) {
	tmpDir := t.TempDir()
	page := filepath.Join(tmpDir, "page.html")
	content := `<base href="/docs/"><a href="a.html">a</a><a href="a.html#x">dup</a><a href="http://[::1">bad</a>`
	require.NoError(t, os.WriteFile(page, []byte(content), 0644))

	out, err := run(t, "extract", "-o", "json", "--document-url", "https://example.com/index.html", page)
	require.NoError(t, err)

	var report struct {
		Base  string `json:"base"`
		Links []struct {
			Kind string `json:"kind"`
			Href string `json:"href"`
		} `json:"links"`
		Rejected   []map[string]string `json:"rejected"`
		Duplicates int                 `json:"duplicates"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "https://example.com/docs/", report.Base)
	require.Len(t, report.Links, 1)
	assert.Equal(t, "https://example.com/docs/a.html", report.Links[0].Href)
	assert.Equal(t, "anchor", report.Links[0].Kind)
	assert.Equal(t, 1, report.Duplicates)
	require.Len(t, report.Rejected, 1)
	assert.Equal(t, "http://[::1", report.Rejected[0]["raw"])
}

func TestExtractCommand_MarkdownWithKeepFragments(t *testing.T) {
	tmpDir := t.TempDir()
	doc := filepath.Join(tmpDir, "README.md")
	require.NoError(t, os.WriteFile(doc, []byte("[a](guide.md#install) and [b](guide.md#usage)\n"), 0644))

	out, err := run(t, "extract", "--base", "https://example.com/repo/", "--keep-fragments", "--no-dedupe", doc)
	require.NoError(t, err)

	assert.Contains(t, out, "https://example.com/repo/guide.md#install")
	assert.Contains(t, out, "https://example.com/repo/guide.md#usage")
	assert.Contains(t, out, "markdown-link")
}

func TestExtractCommand_MissingFile(t *testing.T) {
	_, err := run(t, "extract", filepath.Join(t.TempDir(), "missing.html"))
	assert.True(t, errors.Is(err, cmd.ErrReadInputFail))
}

func TestCommand_InvalidConfig(t *testing.T) {
	_, err := run(t, "parse", "-o", "xml", "https://example.com/")
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestVersionCommand(t *testing.T) {
	build.Version = "1.2.3"
	build.Commit = "abc123"

	out, err := run(t, "version", "-q")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3+abc123\n", out)

	out, err = run(t, "version", "-o", "json")
	require.NoError(t, err)
	var report map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "1.2.3", report["version"])
	assert.Equal(t, "abc123", report["commit"])
}
