// Package domain decides whether a hostname is in scope for colouring.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/domaintint/internal/pattern"
)

// Mode selects how the pattern list is interpreted.
type Mode string

// Supported modes.
const (
	// ModeAll colours every hostname; the pattern list is ignored.
	ModeAll Mode = "all"
	// ModeAllowlist colours only hostnames matching at least one pattern.
	ModeAllowlist Mode = "allowlist"
	// ModeBlocklist colours every hostname that matches no pattern.
	ModeBlocklist Mode = "blocklist"
)

// ErrUnknownMode is returned by ParseMode for unrecognised values.
var ErrUnknownMode = errors.New("unknown domain mode")

// Modes returns all supported modes in display order.
func Modes() []Mode {
	return []Mode{ModeAll, ModeAllowlist, ModeBlocklist}
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeAll, ModeAllowlist, ModeBlocklist:
		return true
	}
	return false
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q (want one of all, allowlist, blocklist)", ErrUnknownMode, s)
	}
	return m, nil
}

// Filter applies a Mode and pattern list to hostnames.
type Filter struct {
	matcher *pattern.Matcher
}

// NewFilter returns a Filter using matcher, or the shared pattern matcher
// when matcher is nil.
func NewFilter(matcher *pattern.Matcher) *Filter {
	if matcher == nil {
		matcher = pattern.Default()
	}
	return &Filter{matcher: matcher}
}

var defaultFilter = NewFilter(nil)

// IsAllowed reports whether hostname is in scope using the shared matcher.
func IsAllowed(hostname string, mode Mode, patterns []string) bool {
	return defaultFilter.IsAllowed(hostname, mode, patterns)
}

// IsAllowed reports whether hostname is in scope under mode.
// Unknown modes behave like ModeAll so malformed settings never hide the
// banner.
func (f *Filter) IsAllowed(hostname string, mode Mode, patterns []string) bool {
	switch mode {
	case ModeAllowlist:
		return f.matcher.MatchAny(hostname, patterns)
	case ModeBlocklist:
		return !f.matcher.MatchAny(hostname, patterns)
	default:
		return true
	}
}
