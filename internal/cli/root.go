// Package cli provides the command-line interface for domaintint.
package cli

import (
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/domaintint/internal/config"
	"github.com/jmylchreest/domaintint/internal/version"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	verbose bool
	quiet   bool
	store   storeFlags
	logger  hclog.Logger
}

// NewRootCmd builds the command tree. Each call returns an independent tree
// so flags never leak between invocations.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	root := &cobra.Command{
		Use:   "domaintint",
		Short: "Deterministic per-domain banner colours",
		Long: `domaintint assigns every hostname a stable colour and decides whether a
coloured banner should be shown for it.

Colours come from an exact-hostname override, the first coloured domain
pattern that matches, or a hash of the hostname. The domain mode (all,
allowlist, blocklist) decides which hostnames get a banner at all.

Settings live in a TOML file or a SQLite database under the XDG config
directory, see --store and --settings.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	a.store.register(flags)

	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newResolveCmd(a),
		newCheckCmd(a),
		newOverrideCmd(a),
		newPatternCmd(a),
		newModeCmd(a),
		newBannerCmd(a),
		newSettingsCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   config.AppName,
		Output: w,
		Level:  level,
	})
}
