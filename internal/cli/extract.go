package cmd

import (
	"fmt"
	"io"

	"github.com/rohmanhakim/weburl/internal/extractor"
	"github.com/rohmanhakim/weburl/pkg/fileutil"
	"github.com/spf13/cobra"
)

var (
	documentURL    string
	documentFormat string
)

type linkReport struct {
	Kind    string `json:"kind" yaml:"kind"`
	Element string `json:"element" yaml:"element"`
	Raw     string `json:"raw" yaml:"raw"`
	Href    string `json:"href" yaml:"href"`
}

type rejectedReport struct {
	Kind  string `json:"kind" yaml:"kind"`
	Raw   string `json:"raw" yaml:"raw"`
	Error string `json:"error" yaml:"error"`
}

type extractReport struct {
	Document   string           `json:"document,omitempty" yaml:"document,omitempty"`
	Base       string           `json:"base,omitempty" yaml:"base,omitempty"`
	Links      []linkReport     `json:"links" yaml:"links"`
	Rejected   []rejectedReport `json:"rejected,omitempty" yaml:"rejected,omitempty"`
	Duplicates int              `json:"duplicates" yaml:"duplicates"`
}

func newExtractReport(result extractor.ExtractionResult) extractReport {
	report := extractReport{
		Links:      make([]linkReport, 0, len(result.Links)),
		Duplicates: result.Duplicates,
	}
	if result.DocumentURL != nil {
		report.Document = result.DocumentURL.Href()
	}
	if result.BaseURL != nil {
		report.Base = result.BaseURL.Href()
	}
	for _, l := range result.Links {
		report.Links = append(report.Links, linkReport{
			Kind:    string(l.Kind),
			Element: l.Element,
			Raw:     l.Raw,
			Href:    l.URL.Href(),
		})
	}
	for _, r := range result.Rejected {
		report.Rejected = append(report.Rejected, rejectedReport{
			Kind:  string(r.Kind),
			Raw:   r.Raw,
			Error: r.Err.Error(),
		})
	}
	return report
}

func (r extractReport) writeText(p *printer) {
	for _, l := range r.Links {
		p.line("%-15s %s", l.Kind, l.Href)
	}
	for _, rejected := range r.Rejected {
		p.line("%-15s %q: %s", "rejected", rejected.Raw, rejected.Error)
	}
	if r.Duplicates > 0 {
		p.line("%-15s %d", "duplicates", r.Duplicates)
	}
}

func newExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file|->",
		Short: "Extract and resolve the links of an HTML or Markdown document",
		Long: `Read a document from a file, or from stdin when the argument is "-", and
print every link it references, resolved against --document-url (or --base).
HTML documents honor their first <base href>. Links that fail to parse are
listed as rejected without failing the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			content, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			format := extractor.Format(documentFormat)
			if documentFormat == "" || documentFormat == "auto" {
				format = extractor.DetectFormat(args[0])
			}

			docURL := s.base
			if documentURL != "" {
				docURL, err = s.parse(documentURL, s.base)
				if err != nil {
					return fmt.Errorf("%w: document URL: %w", ErrParseFailed, err)
				}
			}

			ext := extractor.NewLinkExtractor(s.recorder, s.cfg)
			result, extractErr := ext.Extract(docURL, content, format)
			if extractErr != nil {
				return extractErr
			}

			report := newExtractReport(result)
			return s.render(cmd, report, report.writeText)
		},
	}
	cmd.Flags().StringVar(&documentURL, "document-url", "", "URL the document was retrieved from")
	cmd.Flags().StringVar(&documentFormat, "format", "auto", "document format: auto, html or markdown")
	return cmd
}

// readDocument reads the named file, or stdin for "-".
func readDocument(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInputFail, err)
		}
		return content, nil
	}

	content, err := fileutil.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInputFail, err)
	}
	return content, nil
}

func resetCommandFlags() {
	documentURL = ""
	documentFormat = "auto"
	opaqueHost = false
	versionQuiet = false
}

