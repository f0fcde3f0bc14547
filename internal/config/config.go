package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/weburl/pkg/hashutil"
	"github.com/rohmanhakim/weburl/pkg/weburl"
	"gopkg.in/yaml.v3"
)

type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

var logLevels = map[string]struct{}{
	"trace":    {},
	"debug":    {},
	"info":     {},
	"warn":     {},
	"error":    {},
	"disabled": {},
}

type Config struct {
	//===============
	// Parsing
	//===============
	// Base URL every relative input is resolved against. Empty means inputs
	// must be absolute.
	baseURL string
	// Enforce DNS length limits and STD3 rules on domains.
	strict bool

	//===============
	// Output
	//===============
	// Rendering of command results: text, json or yaml.
	outputFormat OutputFormat
	// Include validation errors in the rendered result.
	showDiagnostics bool
	// Algorithm for URL fingerprints.
	hashAlgo hashutil.HashAlgo

	//===============
	// Logging
	//===============
	logLevel string
	jsonLogs bool

	//===============
	// Extraction
	//===============
	// Drop links whose canonical form was already seen in the document.
	dedupe bool
	// Keep fragments when reporting extracted links.
	keepFragments bool
}

type configDTO struct {
	BaseURL         string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Strict          *bool  `json:"strict,omitempty" yaml:"strict,omitempty"`
	OutputFormat    string `json:"outputFormat,omitempty" yaml:"outputFormat,omitempty"`
	ShowDiagnostics *bool  `json:"showDiagnostics,omitempty" yaml:"showDiagnostics,omitempty"`
	HashAlgo        string `json:"hashAlgo,omitempty" yaml:"hashAlgo,omitempty"`
	LogLevel        string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	JSONLogs        *bool  `json:"jsonLogs,omitempty" yaml:"jsonLogs,omitempty"`
	Dedupe          *bool  `json:"dedupe,omitempty" yaml:"dedupe,omitempty"`
	KeepFragments   *bool  `json:"keepFragments,omitempty" yaml:"keepFragments,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	if dto.BaseURL != "" {
		cfg.WithBaseURL(dto.BaseURL)
	}
	if dto.Strict != nil {
		cfg.WithStrict(*dto.Strict)
	}
	if dto.OutputFormat != "" {
		cfg.WithOutputFormat(OutputFormat(dto.OutputFormat))
	}
	if dto.ShowDiagnostics != nil {
		cfg.WithShowDiagnostics(*dto.ShowDiagnostics)
	}
	if dto.HashAlgo != "" {
		cfg.WithHashAlgo(hashutil.HashAlgo(dto.HashAlgo))
	}
	if dto.LogLevel != "" {
		cfg.WithLogLevel(dto.LogLevel)
	}
	if dto.JSONLogs != nil {
		cfg.WithJSONLogs(*dto.JSONLogs)
	}
	if dto.Dedupe != nil {
		cfg.WithDedupe(*dto.Dedupe)
	}
	if dto.KeepFragments != nil {
		cfg.WithKeepFragments(*dto.KeepFragments)
	}

	return cfg.Build()
}

// WithConfigFile loads a JSON (.json) or YAML (.yaml, .yml) config file.
// Unset fields keep their defaults.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		err = json.Unmarshal(configContent, &cfgDTO)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a Config with default values for all fields.
func WithDefault() *Config {
	defaultConfig := Config{
		baseURL:         "",
		strict:          false,
		outputFormat:    OutputText,
		showDiagnostics: false,
		hashAlgo:        hashutil.HashAlgoSHA256,
		logLevel:        "warn",
		jsonLogs:        false,
		dedupe:          true,
		keepFragments:   false,
	}
	return &defaultConfig
}

func (c *Config) WithBaseURL(baseURL string) *Config {
	c.baseURL = baseURL
	return c
}

func (c *Config) WithStrict(strict bool) *Config {
	c.strict = strict
	return c
}

func (c *Config) WithOutputFormat(format OutputFormat) *Config {
	c.outputFormat = format
	return c
}

func (c *Config) WithShowDiagnostics(show bool) *Config {
	c.showDiagnostics = show
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) WithJSONLogs(jsonLogs bool) *Config {
	c.jsonLogs = jsonLogs
	return c
}

func (c *Config) WithDedupe(dedupe bool) *Config {
	c.dedupe = dedupe
	return c
}

func (c *Config) WithKeepFragments(keep bool) *Config {
	c.keepFragments = keep
	return c
}

// Build validates the configuration. A non-empty base URL must parse as an
// absolute URL.
func (c *Config) Build() (Config, error) {
	switch c.outputFormat {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return Config{}, fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.outputFormat)
	}

	algo, err := hashutil.ParseHashAlgo(string(c.hashAlgo))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	c.hashAlgo = algo

	c.logLevel = strings.ToLower(c.logLevel)
	if _, ok := logLevels[c.logLevel]; !ok {
		return Config{}, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.logLevel)
	}

	if c.baseURL != "" {
		parser := weburl.Parser{BeStrict: c.strict}
		if _, err := parser.Parse(c.baseURL, nil); err != nil {
			return Config{}, fmt.Errorf("%w: base URL: %w", ErrInvalidConfig, err)
		}
	}

	return *c, nil
}

func (c Config) BaseURL() string {
	return c.baseURL
}

func (c Config) Strict() bool {
	return c.strict
}

func (c Config) OutputFormat() OutputFormat {
	return c.outputFormat
}

func (c Config) ShowDiagnostics() bool {
	return c.showDiagnostics
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) LogLevel() string {
	return c.logLevel
}

func (c Config) JSONLogs() bool {
	return c.jsonLogs
}

func (c Config) Dedupe() bool {
	return c.dedupe
}

func (c Config) KeepFragments() bool {
	return c.keepFragments
}
