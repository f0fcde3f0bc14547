package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

type originReport struct {
	URL        string `json:"url" yaml:"url"`
	Origin     string `json:"origin" yaml:"origin"`
	Opaque     bool   `json:"opaque" yaml:"opaque"`
	Other      string `json:"other,omitempty" yaml:"other,omitempty"`
	SameOrigin *bool  `json:"sameOrigin,omitempty" yaml:"sameOrigin,omitempty"`
}

func newOriginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "origin <url> [<other-url>]",
		Short: "Print the origin of a URL, or compare two origins",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			u, err := s.parse(args[0], s.base)
			if err != nil {
				return err
			}
			origin := u.OriginValue()
			report := originReport{
				URL:    u.Href(),
				Origin: origin.String(),
				Opaque: origin.IsOpaque(),
			}

			if len(args) == 2 {
				other, err := s.parse(args[1], s.base)
				if err != nil {
					return err
				}
				same := origin.SameOrigin(other.OriginValue())
				report.Other = other.Href()
				report.SameOrigin = &same
			}

			return s.render(cmd, report, func(p *printer) {
				p.field("origin", report.Origin)
				p.field("opaque", strconv.FormatBool(report.Opaque))
				if report.SameOrigin != nil {
					p.field("other", report.Other)
					p.field("same-origin", strconv.FormatBool(*report.SameOrigin))
				}
			})
		},
	}
}
