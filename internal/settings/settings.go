// Package settings holds the user's colouring configuration: exact hostname
// overrides, the ordered domain pattern list with optional pattern colours,
// the domain mode, and banner presentation values.
package settings

import (
	"maps"
	"slices"

	"github.com/jmylchreest/domaintint/internal/colour"
	"github.com/jmylchreest/domaintint/internal/domain"
)

// Defaults for banner presentation.
const (
	DefaultBannerText   = "Domain Colorizer"
	DefaultBannerHeight = 32
)

// ColorEntry is a stored colour assignment. An entry with a nil HSL is
// treated as absent.
type ColorEntry struct {
	HSL       *colour.HSL `json:"hsl,omitempty" toml:"hsl,omitempty"`
	TextColor string      `json:"textColor,omitempty" toml:"textColor,omitempty"`
}

// NewColorEntry returns an entry for hsl with its derived text colour.
func NewColorEntry(hsl colour.HSL) ColorEntry {
	return ColorEntry{
		HSL:       &hsl,
		TextColor: colour.ContrastingTextColor(hsl),
	}
}

// Present reports whether the entry carries a colour.
func (e ColorEntry) Present() bool {
	return e.HSL != nil
}

// Text returns the stored text colour, or the one derived from HSL when
// none is stored. It returns "" for absent entries.
func (e ColorEntry) Text() string {
	if e.TextColor != "" {
		return e.TextColor
	}
	if e.HSL == nil {
		return ""
	}
	return colour.ContrastingTextColor(*e.HSL)
}

func (e ColorEntry) clone() ColorEntry {
	if e.HSL != nil {
		hsl := *e.HSL
		e.HSL = &hsl
	}
	return e
}

// Settings is a snapshot of the user's configuration.
type Settings struct {
	Overrides      map[string]ColorEntry `json:"overrides" toml:"overrides"`
	PatternColors  map[string]ColorEntry `json:"patternColors" toml:"patternColors"`
	DomainPatterns []string              `json:"domainPatterns" toml:"domainPatterns"`
	DomainMode     domain.Mode           `json:"domainMode" toml:"domainMode"`
	BannerText     string                `json:"bannerText" toml:"bannerText"`
	BannerHeight   int                   `json:"bannerHeight" toml:"bannerHeight"`
}

// Defaults returns a fresh snapshot with no overrides or patterns.
func Defaults() *Settings {
	return &Settings{
		Overrides:      map[string]ColorEntry{},
		PatternColors:  map[string]ColorEntry{},
		DomainPatterns: []string{},
		DomainMode:     domain.ModeAll,
		BannerText:     DefaultBannerText,
		BannerHeight:   DefaultBannerHeight,
	}
}

// Normalize fills missing values with defaults and prunes pattern colours
// whose pattern is no longer in the pattern list. Unknown domain modes are
// kept as stored.
func (s *Settings) Normalize() {
	if s.Overrides == nil {
		s.Overrides = map[string]ColorEntry{}
	}
	if s.PatternColors == nil {
		s.PatternColors = map[string]ColorEntry{}
	}
	if s.DomainPatterns == nil {
		s.DomainPatterns = []string{}
	}
	if s.DomainMode == "" {
		s.DomainMode = domain.ModeAll
	}
	if s.BannerText == "" {
		s.BannerText = DefaultBannerText
	}
	if s.BannerHeight <= 0 {
		s.BannerHeight = DefaultBannerHeight
	}
	s.prunePatternColors()
}

func (s *Settings) prunePatternColors() {
	maps.DeleteFunc(s.PatternColors, func(p string, _ ColorEntry) bool {
		return !slices.Contains(s.DomainPatterns, p)
	})
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Overrides = cloneEntries(s.Overrides)
	c.PatternColors = cloneEntries(s.PatternColors)
	c.DomainPatterns = slices.Clone(s.DomainPatterns)
	return &c
}

func cloneEntries(in map[string]ColorEntry) map[string]ColorEntry {
	if in == nil {
		return nil
	}
	out := make(map[string]ColorEntry, len(in))
	for k, v := range in {
		out[k] = v.clone()
	}
	return out
}
