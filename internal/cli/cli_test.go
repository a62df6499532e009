package cli_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/domaintint/internal/banner"
	"github.com/jmylchreest/domaintint/internal/cli"
	"github.com/jmylchreest/domaintint/internal/colour"
	"github.com/jmylchreest/domaintint/internal/config"
	"github.com/jmylchreest/domaintint/internal/domain"
	"github.com/jmylchreest/domaintint/internal/resolver"
	"github.com/jmylchreest/domaintint/internal/settings"
)

// harness runs commands against one settings location.
type harness struct {
	t     *testing.T
	store string
	path  string
	stdin string
}

func newHarness(t *testing.T, store string) *harness {
	t.Helper()
	t.Setenv(config.EnvStore, "")
	t.Setenv(config.EnvSettingsPath, "")

	name := "settings.toml"
	if store == config.StoreSQLite {
		name = "settings.db"
	}
	return &harness{t: t, store: store, path: filepath.Join(t.TempDir(), name)}
}

func (h *harness) run(args ...string) (string, string, error) {
	h.t.Helper()
	var outBuf, errBuf bytes.Buffer
	root := cli.NewRootCmd()
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetIn(strings.NewReader(h.stdin))
	root.SetArgs(append([]string{"--store", h.store, "--settings", h.path}, args...))
	err := root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, stderr, err := h.run(args...)
	require.NoError(h.t, err, "stderr: %s", stderr)
	return out
}

func (h *harness) resolveJSON(hosts ...string) []banner.Message {
	h.t.Helper()
	out := h.mustRun(append([]string{"resolve", "--format", "json"}, hosts...)...)
	var msgs []banner.Message
	require.NoError(h.t, json.Unmarshal([]byte(out), &msgs))
	require.Len(h.t, msgs, len(hosts))
	return msgs
}

func TestWorkflow(t *testing.T) {
	for _, store := range []string{config.StoreFile, config.StoreSQLite} {
		t.Run(store, func(t *testing.T) {
			h := newHarness(t, store)

			out := h.mustRun("resolve", "example.com")
			assert.Contains(t, out, "hsl(99, 65%, 55%)")
			assert.Contains(t, out, string(resolver.SourceDefault))

			h.mustRun("override", "add", "Example.com", "#ff0000")
			out = h.mustRun("resolve", "example.com")
			assert.Regexp(t, `#f8fafc\s+#ff0000\s+3\.82:1\s+override`, out)

			msgs := h.resolveJSON("https://example.com/login")
			require.NotNil(t, msgs[0].Payload)
			assert.Equal(t, "hsl(0, 100%, 50%)", msgs[0].Payload.Color)
			assert.Equal(t, resolver.SourceOverride, msgs[0].Payload.Source)

			h.mustRun("pattern", "add", "*.corp")
			h.mustRun("pattern", "add", "*.internal")
			h.mustRun("pattern", "color", "*.corp", "#4095bf")
			out = h.mustRun("resolve", "wiki.corp")
			assert.Contains(t, out, "pattern (*.corp)")
			assert.Contains(t, out, "#4095bf")

			out = h.mustRun("pattern", "list")
			assert.Regexp(t, `1\s+\*\.corp\s+hsl\(200, 50%, 50%\)`, out)
			assert.Regexp(t, `2\s+\*\.internal\s+-`, out)

			out = h.mustRun("override", "list")
			assert.Regexp(t, `example\.com\s+hsl\(0, 100%, 50%\)\s+#f8fafc\s+#ff0000`, out)

			h.mustRun("mode", "allowlist")
			assert.Equal(t, "allowlist\n", h.mustRun("mode"))

			out = h.mustRun("check", "wiki.corp", "example.com")
			assert.Regexp(t, `wiki\.corp\s+allowlist\s+allowed\s+\*\.corp`, out)
			assert.Regexp(t, `example\.com\s+allowlist\s+filtered\s+-`, out)

			_, _, err := h.run("check", "--strict", "example.com")
			assert.ErrorContains(t, err, "filtered")

			msgs = h.resolveJSON("example.com", "db.internal")
			assert.True(t, msgs[0].Hidden())
			assert.False(t, msgs[1].Hidden())

			h.mustRun("banner", "--text", "PROD", "--height", "40")
			out = h.mustRun("banner")
			assert.Contains(t, out, "PROD")
			assert.Contains(t, out, "40px")

			h.mustRun("pattern", "uncolor", "*.corp")
			out = h.mustRun("resolve", "wiki.corp")
			assert.Contains(t, out, string(resolver.SourceDefault))

			h.mustRun("pattern", "rm", "*.corp")
			h.mustRun("pattern", "rm", "*.internal")
			assert.Equal(t, "no patterns\n", h.mustRun("pattern", "list"))

			h.mustRun("override", "rm", "example.com")
			assert.Equal(t, "no overrides\n", h.mustRun("override", "list"))
		})
	}
}

func TestEditErrors(t *testing.T) {
	h := newHarness(t, config.StoreFile)

	_, _, err := h.run("override", "add", "a.com", "not-a-colour")
	assert.ErrorIs(t, err, colour.ErrInvalidHex)

	_, _, err = h.run("pattern", "color", "*.nowhere", "#ffffff")
	assert.ErrorIs(t, err, settings.ErrUnknownPattern)

	_, _, err = h.run("mode", "sometimes")
	assert.ErrorIs(t, err, domain.ErrUnknownMode)

	_, _, err = h.run("banner", "--height", "0")
	assert.ErrorIs(t, err, settings.ErrInvalidHeight)

	_, _, err = h.run("override", "rm", "missing.com")
	assert.ErrorContains(t, err, "not found")

	_, _, err = h.run("resolve", "about:blank")
	assert.ErrorContains(t, err, "no hostname")

	_, _, err = h.run("resolve", "--format", "yaml", "a.com")
	assert.ErrorContains(t, err, "unknown format")

	// Failed edits leave the settings untouched.
	assert.Equal(t, "all\n", h.mustRun("mode"))
}

func TestUnknownStore(t *testing.T) {
	h := newHarness(t, "postgres")
	_, _, err := h.run("mode")
	assert.ErrorContains(t, err, "unknown store")
}

func TestStoreFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.db")
	t.Setenv(config.EnvStore, config.StoreSQLite)
	t.Setenv(config.EnvSettingsPath, path)

	root := cli.NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"mode", "blocklist"})
	require.NoError(t, root.Execute())

	h := &harness{t: t, store: config.StoreSQLite, path: path}
	assert.Equal(t, "blocklist\n", h.mustRun("mode"))
}

func TestSettingsExportImport(t *testing.T) {
	src := newHarness(t, config.StoreFile)
	src.mustRun("override", "add", "a.com", "#00ff00")
	src.mustRun("pattern", "add", "*.b.com")
	src.mustRun("mode", "blocklist")

	out := src.mustRun("settings", "show")
	assert.Contains(t, out, `domainMode = "blocklist"`)
	assert.Contains(t, out, `"*.b.com"`)

	t.Run("xz file", func(t *testing.T) {
		archive := filepath.Join(t.TempDir(), "backup.json.xz")
		src.mustRun("settings", "export", "--xz", "-o", archive)

		dst := newHarness(t, config.StoreSQLite)
		dst.mustRun("settings", "import", archive)
		assert.Equal(t, "blocklist\n", dst.mustRun("mode"))
		assert.Contains(t, dst.mustRun("override", "list"), "#00ff00")
	})

	t.Run("stdin", func(t *testing.T) {
		exported := src.mustRun("settings", "export")
		assert.Contains(t, exported, `"domainPatterns": [`)

		dst := newHarness(t, config.StoreFile)
		dst.stdin = exported
		dst.mustRun("settings", "import", "-")
		assert.Contains(t, dst.mustRun("pattern", "list"), "*.b.com")
	})

	t.Run("reset", func(t *testing.T) {
		src.mustRun("settings", "reset")
		assert.Equal(t, "all\n", src.mustRun("mode"))
		assert.Equal(t, "no overrides\n", src.mustRun("override", "list"))
	})
}

func TestImportRejectsGarbage(t *testing.T) {
	h := newHarness(t, config.StoreFile)
	h.stdin = "not json"
	_, _, err := h.run("settings", "import", "-")
	assert.Error(t, err)
}

func TestWatchRequiresFileStore(t *testing.T) {
	h := newHarness(t, config.StoreSQLite)
	_, _, err := h.run("watch", "example.com")
	assert.ErrorContains(t, err, "watch requires the file store")
}

func TestVerboseLogging(t *testing.T) {
	h := newHarness(t, config.StoreFile)

	_, stderr, err := h.run("--verbose", "mode")
	require.NoError(t, err)
	assert.Contains(t, stderr, "opening settings store")

	_, stderr, err = h.run("--quiet", "mode", "allowlist")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestVersion(t *testing.T) {
	h := newHarness(t, config.StoreFile)
	assert.Contains(t, h.mustRun("version"), "domaintint version")

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("version", "--json")), &info))
	assert.Equal(t, "dev", info["version"])
}
