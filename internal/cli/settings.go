package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/domaintint/internal/settings"
	"github.com/jmylchreest/domaintint/internal/settings/filestore"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show, reset, export or import all settings",
		Long: `Operate on the whole settings snapshot.

Exports are JSON keyed by setting name and can be xz-compressed; imports
accept either form and detect compression automatically.

Examples:
  domaintint settings show
  domaintint settings export --xz -o backup.json.xz
  domaintint settings import backup.json.xz
  domaintint settings export | domaintint --store sqlite settings import -`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			data, err := filestore.Encode(s)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closer, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := store.Save(cmd.Context(), settings.Defaults()); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			a.logger.Info("settings reset")
			return nil
		},
	}

	var (
		useXZ  bool
		output string
	)
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			c := settings.CompressionNone
			if useXZ {
				c = settings.CompressionXZ
			}

			if output == "" || output == "-" {
				return settings.Export(cmd.OutOrStdout(), s, c)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := settings.Export(f, s, c); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.logger.Info("settings exported", "path", output, "xz", useXZ)
			return nil
		},
	}
	export.Flags().BoolVar(&useXZ, "xz", false, "compress the export with xz")
	export.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	importCmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the settings with an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			imported, err := settings.Import(r)
			if err != nil {
				return err
			}

			store, closer, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := store.Save(cmd.Context(), imported); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			a.logger.Info("settings imported",
				"overrides", len(imported.Overrides), "patterns", len(imported.DomainPatterns))
			return nil
		},
	}

	cmd.AddCommand(show, reset, export, importCmd)
	return cmd
}
