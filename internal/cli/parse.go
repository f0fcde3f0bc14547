package cmd

import (
	"fmt"

	"github.com/rohmanhakim/weburl/pkg/weburl"
	"github.com/spf13/cobra"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <url>...",
		Short: "Parse URLs and print their components",
		Long: `Parse each argument, resolving it against --base when given, and print
the serialized URL with every component. Inputs that fail to parse are
reported next to the others and make the command exit non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			reports, failed := s.parseAll(args, s.base)
			return s.renderReports(cmd, reports, failed)
		},
	}
}

func newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <base> <reference>...",
		Short: "Resolve references against a base URL",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			base, err := s.parse(args[0], s.base)
			if err != nil {
				return fmt.Errorf("%w: base %q: %w", ErrParseFailed, args[0], err)
			}
			reports, failed := s.parseAll(args[1:], base)
			return s.renderReports(cmd, reports, failed)
		},
	}
}

// parseAll parses every input against base. Failures become reports with
// an error instead of stopping the run.
func (s *session) parseAll(inputs []string, base *weburl.URL) ([]urlReport, int) {
	reports := make([]urlReport, 0, len(inputs))
	var failed int
	for _, input := range inputs {
		u, err := s.parse(input, base)
		if err != nil {
			failed++
			reports = append(reports, urlReport{
				Input:       input,
				Error:       err.Error(),
				Diagnostics: s.diagnostics(),
			})
			continue
		}

		report := newURLReport(input, u)
		report.Diagnostics = s.diagnostics()
		if fingerprint, err := u.Fingerprint(s.cfg.HashAlgo()); err == nil {
			report.Fingerprint = fingerprint
		}
		reports = append(reports, report)
	}
	return reports, failed
}

func (s *session) renderReports(cmd *cobra.Command, reports []urlReport, failed int) error {
	err := s.render(cmd, reports, func(p *printer) {
		for i, r := range reports {
			if i > 0 {
				p.line("")
			}
			r.writeText(p)
		}
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs", ErrParseFailed, failed, len(reports))
	}
	return nil
}
