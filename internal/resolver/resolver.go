// Package resolver picks the colour shown for a hostname.
//
// Precedence is strict: an exact hostname override wins, then the colour of
// the first pattern in list order that both matches and has a colour, then
// the colour derived from the hostname hash. Patterns that match but have no
// colour are skipped, so a later coloured pattern can still win.
package resolver

import (
	"github.com/jmylchreest/domaintint/internal/colour"
	"github.com/jmylchreest/domaintint/internal/pattern"
	"github.com/jmylchreest/domaintint/internal/settings"
)

// Source identifies which precedence tier produced a Resolution.
type Source string

// Resolution sources.
const (
	SourceOverride Source = "override"
	SourcePattern  Source = "pattern"
	SourceDefault  Source = "default"
)

// Resolution is the colour chosen for a hostname.
type Resolution struct {
	Source Source `json:"source"`
	// Pattern is the winning pattern when Source is SourcePattern.
	Pattern   string     `json:"pattern,omitempty"`
	HSL       colour.HSL `json:"hsl"`
	Color     string     `json:"color"`
	TextColor string     `json:"textColor"`
}

// Hex returns the resolved background colour as "#rrggbb".
func (r Resolution) Hex() string {
	return r.HSL.Hex()
}

// Contrast returns the WCAG contrast ratio between the text and background
// colours. It returns false when the text colour is not a hex colour.
func (r Resolution) Contrast() (float64, bool) {
	text, err := colour.ParseHex(r.TextColor)
	if err != nil {
		return 0, false
	}
	return colour.ContrastRatio(r.HSL.RGB(), text), true
}

// Resolver resolves colours using a pattern matcher.
type Resolver struct {
	matcher *pattern.Matcher
}

// New returns a Resolver using matcher, or the shared matcher when nil.
func New(matcher *pattern.Matcher) *Resolver {
	if matcher == nil {
		matcher = pattern.Default()
	}
	return &Resolver{matcher: matcher}
}

var defaultResolver = New(nil)

// Resolve resolves hostname against s using the shared matcher.
func Resolve(hostname string, s *settings.Settings) Resolution {
	return defaultResolver.Resolve(hostname, s)
}

// Resolve returns the colour for hostname. It never fails; a nil snapshot
// resolves to the hash-derived default. s is not modified.
func (r *Resolver) Resolve(hostname string, s *settings.Settings) Resolution {
	if s != nil {
		if entry, ok := s.Overrides[hostname]; ok && entry.Present() {
			return fromEntry(SourceOverride, "", entry)
		}

		for _, p := range s.DomainPatterns {
			entry, ok := s.PatternColors[p]
			if !ok || !entry.Present() {
				continue
			}
			if r.matcher.Match(hostname, p) {
				return fromEntry(SourcePattern, p, entry)
			}
		}
	}

	hsl := colour.HostnameToHSL(hostname)
	return Resolution{
		Source:    SourceDefault,
		HSL:       hsl,
		Color:     hsl.String(),
		TextColor: colour.ContrastingTextColor(hsl),
	}
}

func fromEntry(src Source, p string, entry settings.ColorEntry) Resolution {
	return Resolution{
		Source:    src,
		Pattern:   p,
		HSL:       *entry.HSL,
		Color:     entry.HSL.String(),
		TextColor: entry.Text(),
	}
}
