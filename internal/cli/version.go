package cmd

import (
	"github.com/rohmanhakim/weburl/internal/build"
	"github.com/spf13/cobra"
)

var versionQuiet bool

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := InitConfigWithError()
			if err != nil {
				return err
			}

			if versionQuiet {
				p := &printer{w: cmd.OutOrStdout()}
				p.line("%s", build.FullVersion())
				return p.err
			}

			info := build.Current()
			return render(cmd.OutOrStdout(), cfg.OutputFormat(), info, func(p *printer) {
				p.field("version", info.Version)
				p.field("commit", build.ShortCommit())
				p.field("built", info.BuildTime)
			})
		},
	}
	cmd.Flags().BoolVarP(&versionQuiet, "quiet", "q", false, "Only print version number")
	return cmd
}
