// Package filestore keeps settings in a TOML document on disk.
//
// Writes are serialised through an advisory lock on "<path>.lock" and
// replace the document atomically, so concurrent readers never observe a
// partially written file.
package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/domaintint/internal/config"
	"github.com/jmylchreest/domaintint/internal/settings"
)

// lockRetryDelay is how often a contended lock is retried.
const lockRetryDelay = 25 * time.Millisecond

// Store is a settings.Store backed by a TOML file.
type Store struct {
	path   string
	lock   string
	logger hclog.Logger
}

var _ settings.Store = (*Store)(nil)

// New returns a Store for the TOML document at path. A nil logger discards
// output.
func New(path string, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{
		path:   path,
		lock:   path + ".lock",
		logger: logger.Named("filestore"),
	}
}

// Path returns the location of the TOML document.
func (s *Store) Path() string {
	return s.path
}

// Load implements settings.Store. A missing file yields the defaults.
func (s *Store) Load(ctx context.Context) (*settings.Settings, error) {
	data, err := s.read(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("settings file not found, using defaults", "path", s.path)
		return settings.Defaults(), nil
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (s *Store) read(ctx context.Context) ([]byte, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, err
	}

	fl := flock.New(s.lock)
	locked, err := fl.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to lock settings: %w", err)
	}
	if locked {
		defer fl.Unlock()
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	s.logger.Debug("read settings", "path", s.path, "bytes", len(data))
	return data, nil
}

// Save implements settings.Store.
func (s *Store) Save(ctx context.Context, snap *settings.Settings) error {
	c := snap.Clone()
	c.Normalize()

	data, err := Encode(c)
	if err != nil {
		return err
	}

	if err := config.EnsureDir(s.path); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	fl := flock.New(s.lock)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to lock settings: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to lock settings: %s is held by another process", s.lock)
	}
	defer fl.Unlock()

	if err := writeAtomic(s.path, data); err != nil {
		return err
	}
	s.logger.Debug("saved settings", "path", s.path,
		"overrides", len(c.Overrides), "patterns", len(c.DomainPatterns))
	return nil
}

// writeAtomic writes data to a temporary file beside path and renames it
// into place.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	syncErr := tmp.Sync()
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, syncErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write settings: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// Encode renders a snapshot as TOML.
func Encode(s *settings.Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a TOML document over the defaults and normalises the
// result. Keys that are not part of the settings are ignored.
func Decode(data []byte) (*settings.Settings, error) {
	s := settings.Defaults()
	if _, err := toml.Decode(string(data), s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	s.Normalize()
	return s, nil
}
