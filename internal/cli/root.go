package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rohmanhakim/weburl/internal/config"
	"github.com/rohmanhakim/weburl/pkg/hashutil"
	"github.com/spf13/cobra"
)

var (
	cfgFile         string
	baseURL         string
	strict          bool
	outputFormat    string
	showDiagnostics bool
	hashAlgo        string
	logLevel        string
	jsonLogs        bool
	noDedupe        bool
	keepFragments   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "weburl",
	Short: "Parse, resolve and rewrite URLs the way browsers do.",
	Long: `weburl is a CLI application for inspecting URLs with the WHATWG URL
Standard parsing rules used by web browsers.

It parses and resolves URLs, rewrites single components, computes origins,
parses hosts on their own, and extracts resolved links from HTML and
Markdown documents. Validation errors found while parsing can be shown
alongside the result.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := ExecuteWithArgs(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the root command with explicit arguments and output
// streams. Logs go to errOut.
func ExecuteWithArgs(args []string, out, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/weburl.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base", "", "base URL that relative inputs are resolved against")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "enforce DNS length limits and STD3 rules on domains")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(config.OutputText), "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&showDiagnostics, "diagnostics", false, "include validation errors in the output")
	rootCmd.PersistentFlags().StringVar(&hashAlgo, "hash", string(hashutil.HashAlgoSHA256), "fingerprint algorithm: sha256 or blake3")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error or disabled")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "write logs as JSON lines")
	rootCmd.PersistentFlags().BoolVar(&noDedupe, "no-dedupe", false, "keep links that canonicalize to an already seen URL")
	rootCmd.PersistentFlags().BoolVar(&keepFragments, "keep-fragments", false, "keep fragments on extracted links")

	rootCmd.AddCommand(
		newParseCommand(),
		newResolveCommand(),
		newSetCommand(),
		newOriginCommand(),
		newHostCommand(),
		newExtractCommand(),
		newVersionCommand(),
	)
}

// InitConfig builds the configuration from the config file or flags and
// exits on failure.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError builds the configuration, returning any errors.
// A config file, when given, takes precedence over every other flag.
// This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	configBuilder := config.WithDefault().
		WithStrict(strict).
		WithShowDiagnostics(showDiagnostics).
		WithJSONLogs(jsonLogs).
		WithDedupe(!noDedupe).
		WithKeepFragments(keepFragments)

	if baseURL != "" {
		configBuilder = configBuilder.WithBaseURL(baseURL)
	}

	if outputFormat != "" {
		configBuilder = configBuilder.WithOutputFormat(config.OutputFormat(outputFormat))
	}

	if hashAlgo != "" {
		configBuilder = configBuilder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	return configBuilder.Build()
}

// ResetFlags resets all flag variables to their default values.
// This is useful for testing to ensure clean state between tests.
func ResetFlags() {
	cfgFile = ""
	baseURL = ""
	strict = false
	outputFormat = string(config.OutputText)
	showDiagnostics = false
	hashAlgo = string(hashutil.HashAlgoSHA256)
	logLevel = "warn"
	jsonLogs = false
	noDedupe = false
	keepFragments = false
	resetCommandFlags()
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetBaseURLForTest(u string) {
	baseURL = u
}

func SetStrictForTest(s bool) {
	strict = s
}

func SetOutputFormatForTest(format string) {
	outputFormat = format
}

func SetShowDiagnosticsForTest(show bool) {
	showDiagnostics = show
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}

func SetLogLevelForTest(level string) {
	logLevel = level
}

func SetNoDedupeForTest(b bool) {
	noDedupe = b
}

func SetKeepFragmentsForTest(keep bool) {
	keepFragments = keep
}
