package settings

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/domaintint/internal/colour"
	"github.com/jmylchreest/domaintint/internal/domain"
)

// Errors returned by the editing operations.
var (
	ErrEmptyDomain    = errors.New("domain must not be empty")
	ErrEmptyPattern   = errors.New("pattern must not be empty")
	ErrUnknownPattern = errors.New("pattern is not in the pattern list")
	ErrInvalidHeight  = errors.New("banner height must be positive")
)

// clean trims and lower-cases a domain or pattern as typed by a user.
func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AddOverride sets an exact-hostname colour from a hex value, replacing any
// existing override for the domain.
func (s *Settings) AddOverride(domainName, hex string) (ColorEntry, error) {
	domainName = clean(domainName)
	if domainName == "" {
		return ColorEntry{}, ErrEmptyDomain
	}
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return ColorEntry{}, err
	}

	entry := NewColorEntry(rgb.HSL())
	if s.Overrides == nil {
		s.Overrides = map[string]ColorEntry{}
	}
	s.Overrides[domainName] = entry
	return entry, nil
}

// RemoveOverride deletes the override for domainName and reports whether
// one existed.
func (s *Settings) RemoveOverride(domainName string) bool {
	domainName = clean(domainName)
	if _, ok := s.Overrides[domainName]; !ok {
		return false
	}
	delete(s.Overrides, domainName)
	return true
}

// AddPattern appends a pattern to the list. It returns false when the
// pattern is already present.
func (s *Settings) AddPattern(p string) (bool, error) {
	p = clean(p)
	if p == "" {
		return false, ErrEmptyPattern
	}
	if slices.Contains(s.DomainPatterns, p) {
		return false, nil
	}
	s.DomainPatterns = append(s.DomainPatterns, p)
	return true, nil
}

// RemovePattern deletes a pattern and its pattern colour, reporting whether
// the pattern was present.
func (s *Settings) RemovePattern(p string) bool {
	p = clean(p)
	idx := slices.Index(s.DomainPatterns, p)
	if idx < 0 {
		return false
	}
	s.DomainPatterns = slices.Delete(s.DomainPatterns, idx, idx+1)
	delete(s.PatternColors, p)
	return true
}

// SetPatternColor assigns a colour to a pattern already in the list.
func (s *Settings) SetPatternColor(p, hex string) (ColorEntry, error) {
	p = clean(p)
	if p == "" {
		return ColorEntry{}, ErrEmptyPattern
	}
	if !slices.Contains(s.DomainPatterns, p) {
		return ColorEntry{}, fmt.Errorf("%w: %q", ErrUnknownPattern, p)
	}
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return ColorEntry{}, err
	}

	entry := NewColorEntry(rgb.HSL())
	if s.PatternColors == nil {
		s.PatternColors = map[string]ColorEntry{}
	}
	s.PatternColors[p] = entry
	return entry, nil
}

// ClearPatternColor removes a pattern's colour, keeping the pattern itself.
func (s *Settings) ClearPatternColor(p string) bool {
	p = clean(p)
	if _, ok := s.PatternColors[p]; !ok {
		return false
	}
	delete(s.PatternColors, p)
	return true
}

// SetMode validates and sets the domain mode.
func (s *Settings) SetMode(mode string) error {
	m, err := domain.ParseMode(mode)
	if err != nil {
		return err
	}
	s.DomainMode = m
	return nil
}

// SetBannerText sets the banner label; an empty value restores the default.
func (s *Settings) SetBannerText(text string) {
	if text == "" {
		text = DefaultBannerText
	}
	s.BannerText = text
}

// SetBannerHeight sets the banner height in pixels.
func (s *Settings) SetBannerHeight(px int) error {
	if px <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHeight, px)
	}
	s.BannerHeight = px
	return nil
}
