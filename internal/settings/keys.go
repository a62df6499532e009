package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Storage keys recognised in a key-value settings store.
const (
	KeyOverrides      = "overrides"
	KeyPatternColors  = "patternColors"
	KeyDomainPatterns = "domainPatterns"
	KeyDomainMode     = "domainMode"
	KeyBannerText     = "bannerText"
	KeyBannerHeight   = "bannerHeight"
)

// Keys returns every recognised storage key.
func Keys() []string {
	return []string{
		KeyOverrides,
		KeyPatternColors,
		KeyDomainPatterns,
		KeyDomainMode,
		KeyBannerText,
		KeyBannerHeight,
	}
}

// fields maps each storage key to the snapshot field it decodes into.
func (s *Settings) fields() map[string]any {
	return map[string]any{
		KeyOverrides:      &s.Overrides,
		KeyPatternColors:  &s.PatternColors,
		KeyDomainPatterns: &s.DomainPatterns,
		KeyDomainMode:     &s.DomainMode,
		KeyBannerText:     &s.BannerText,
		KeyBannerHeight:   &s.BannerHeight,
	}
}

// EncodeValues returns the JSON encoding of every recognised key.
func EncodeValues(s *Settings) (map[string][]byte, error) {
	values := make(map[string][]byte, len(Keys()))
	for key, field := range s.fields() {
		data, err := json.Marshal(field)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		values[key] = data
	}
	return values, nil
}

// DecodeValues builds a normalised snapshot from JSON-encoded key values.
// Missing keys take their defaults, null values count as missing and
// unrecognised keys are ignored.
func DecodeValues(values map[string][]byte) (*Settings, error) {
	s := Defaults()
	for key, field := range s.fields() {
		data, ok := values[key]
		if !ok || len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(data, field); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
	}
	s.Normalize()
	return s, nil
}
