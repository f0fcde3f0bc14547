package cmd

import (
	"time"

	"github.com/rohmanhakim/weburl/internal/metadata"
	"github.com/rohmanhakim/weburl/pkg/host"
	"github.com/spf13/cobra"
)

var opaqueHost bool

type hostReport struct {
	Input       string   `json:"input" yaml:"input"`
	Kind        string   `json:"kind" yaml:"kind"`
	Host        string   `json:"host" yaml:"host"`
	Unicode     string   `json:"unicode,omitempty" yaml:"unicode,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func newHostCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host <host>",
		Short: "Parse a host on its own",
		Long: `Parse a host the way it would be parsed inside a special URL such as
http: or https:. With --opaque the host is parsed as it would be for a
non-special scheme.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			var codes []string
			parser := host.Parser{
				BeStrict: s.cfg.Strict(),
				Report:   func(code string) { codes = append(codes, code) },
			}

			h, err := parser.Parse(args[0], !opaqueHost)
			if err != nil {
				s.recorder.RecordError(
					time.Now(),
					"cli",
					"host",
					metadata.CauseURLRejected,
					err.Error(),
					[]metadata.Attribute{metadata.NewAttr(metadata.AttrHost, args[0])},
				)
				return err
			}

			report := hostReport{
				Input: args[0],
				Kind:  h.Kind().String(),
				Host:  h.String(),
			}
			if unicode := h.Unicode(); unicode != report.Host {
				report.Unicode = unicode
			}
			if s.cfg.ShowDiagnostics() {
				report.Diagnostics = codes
			}

			return s.render(cmd, report, func(p *printer) {
				p.field("kind", report.Kind)
				p.field("host", report.Host)
				p.optional("unicode", report.Unicode)
				p.list("diagnostics", report.Diagnostics)
			})
		},
	}
	cmd.Flags().BoolVar(&opaqueHost, "opaque", false, "parse as the host of a non-special URL")
	return cmd
}
