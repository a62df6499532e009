package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/domaintint/internal/config"
	"github.com/jmylchreest/domaintint/internal/settings"
	"github.com/jmylchreest/domaintint/internal/settings/filestore"
	"github.com/jmylchreest/domaintint/internal/settings/sqlitestore"
)

// errUnknownStore is returned for a --store value that names no backend.
var errUnknownStore = errors.New("unknown store")

// storeFlags selects and locates the settings backend.
type storeFlags struct {
	kind string
	path string
}

// register adds --store and --settings to fs. Defaults come from the
// environment so the flags only need to be given to override them.
func (f *storeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.kind, "store", config.DefaultStore(),
		fmt.Sprintf("settings backend (%s, %s) [$%s]", config.StoreFile, config.StoreSQLite, config.EnvStore))
	fs.StringVar(&f.path, "settings", "",
		fmt.Sprintf("settings location (default: XDG config dir) [$%s]", config.EnvSettingsPath))
}

func (f *storeFlags) location() string {
	if f.path != "" {
		return f.path
	}
	return config.DefaultPath(f.kind)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore opens the selected backend. The returned closer must be called
// when the command is done with the store.
func (a *app) openStore(ctx context.Context) (settings.Store, io.Closer, error) {
	path := a.store.location()
	a.logger.Debug("opening settings store", "store", a.store.kind, "path", path)

	switch a.store.kind {
	case config.StoreFile:
		return filestore.New(path, a.logger), nopCloser{}, nil
	case config.StoreSQLite:
		s, err := sqlitestore.Open(ctx, path, a.logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("%w %q (want %s or %s)", errUnknownStore, a.store.kind, config.StoreFile, config.StoreSQLite)
	}
}

// load returns the current settings snapshot.
func (a *app) load(ctx context.Context) (*settings.Settings, error) {
	store, closer, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	s, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

// update loads the snapshot, applies edit and saves the result. Nothing is
// saved when edit fails.
func (a *app) update(ctx context.Context, edit func(*settings.Settings) error) (*settings.Settings, error) {
	store, closer, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	s, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := edit(s); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return s, nil
}
