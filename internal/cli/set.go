package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rohmanhakim/weburl/internal/metadata"
	"github.com/rohmanhakim/weburl/pkg/weburl"
	"github.com/spf13/cobra"
)

// componentSetters maps component names, including the URL API aliases, to
// their setters.
//
//nolint:gochecknoglobals // This is a static lookup table that must be global
var componentSetters = map[string]func(*weburl.URL, string) error{
	"href":     (*weburl.URL).SetHref,
	"protocol": (*weburl.URL).SetScheme,
	"scheme":   (*weburl.URL).SetScheme,
	"username": (*weburl.URL).SetUsername,
	"password": (*weburl.URL).SetPassword,
	"host":     (*weburl.URL).SetHost,
	"hostname": (*weburl.URL).SetHostname,
	"port":     (*weburl.URL).SetPort,
	"pathname": (*weburl.URL).SetPathname,
	"search":   (*weburl.URL).SetQuery,
	"query":    (*weburl.URL).SetQuery,
	"hash":     (*weburl.URL).SetFragment,
	"fragment": (*weburl.URL).SetFragment,
}

func componentNames() []string {
	names := make([]string, 0, len(componentSetters))
	for name := range componentSetters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <url> <component> <value>",
		Short: "Replace one component of a URL",
		Long: fmt.Sprintf(`Parse the URL, run the setter for the named component with value, and
print the result. A value the setter refuses leaves the URL unchanged and
fails the command.

Components: %s`, strings.Join(componentNames(), ", ")),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, component, value := args[0], strings.ToLower(args[1]), args[2]

			set, ok := componentSetters[component]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownComponent, args[1])
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			u, err := s.parse(input, s.base)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrParseFailed, err)
			}

			if err := set(u, value); err != nil {
				s.recorder.RecordError(
					time.Now(),
					"cli",
					"set",
					metadata.CauseURLRejected,
					err.Error(),
					[]metadata.Attribute{
						metadata.NewAttr(metadata.AttrURL, u.Href()),
						metadata.NewAttr(metadata.AttrField, component),
						metadata.NewAttr(metadata.AttrValue, value),
					},
				)
				return err
			}

			report := newURLReport(input, u)
			return s.render(cmd, report, report.writeText)
		},
	}
}
