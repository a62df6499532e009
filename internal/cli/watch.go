package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/domaintint/internal/banner"
	"github.com/jmylchreest/domaintint/internal/settings"
	"github.com/jmylchreest/domaintint/internal/settings/filestore"
)

var errWatchUnsupported = errors.New("watch requires the file store")

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <hostname|url>",
		Short: "Print the banner message whenever the settings change",
		Long: `Print the banner message for a hostname as one JSON line, then print it
again every time the settings file changes. Runs until interrupted.

Only the file store can be watched.

Examples:
  domaintint watch https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hosts, err := hostnames(args)
			if err != nil {
				return err
			}
			host := hosts[0]

			store, closer, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closer.Close()

			fs, ok := store.(*filestore.Store)
			if !ok {
				return errWatchUnsupported
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc := banner.NewService(fs, a.logger)
			enc := json.NewEncoder(cmd.OutOrStdout())
			emit := func(s *settings.Settings) {
				msg, _ := svc.Compute(host, s)
				if err := enc.Encode(msg); err != nil {
					a.logger.Error("failed to write message", "error", err)
				}
			}

			msg, _, err := svc.ForHostname(ctx, host)
			if err != nil {
				return err
			}
			if err := enc.Encode(msg); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}

			return fs.Watch(ctx, emit)
		},
	}
}
