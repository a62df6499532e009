// Package banner turns a hostname and a settings snapshot into the message
// a page banner consumes: either an update carrying the resolved colours or
// an instruction to hide the banner.
package banner

import (
	"net/url"
	"strings"

	"github.com/jmylchreest/domaintint/internal/domain"
	"github.com/jmylchreest/domaintint/internal/resolver"
	"github.com/jmylchreest/domaintint/internal/settings"
)

// Message types.
const (
	TypeUpdate = "domain-color-update"
	TypeHide   = "domain-color-hide"
)

// Payload is the content of an update message.
type Payload struct {
	Hostname     string          `json:"hostname"`
	Color        string          `json:"color"`
	TextColor    string          `json:"textColor"`
	BannerText   string          `json:"bannerText"`
	BannerHeight int             `json:"bannerHeight"`
	Source       resolver.Source `json:"source"`
	Pattern      string          `json:"pattern,omitempty"`
}

// Message is an instruction for a banner.
type Message struct {
	Type    string   `json:"type"`
	Payload *Payload `json:"payload,omitempty"`
}

// Hidden reports whether the message hides the banner.
func (m Message) Hidden() bool {
	return m.Type == TypeHide
}

// ExtractHostname returns the lower-cased hostname of an absolute URL, or ""
// when the URL cannot be parsed or has no host.
func ExtractHostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Compute builds the message for hostname. It returns false for an empty
// hostname, for which no message should be sent. A nil snapshot is treated
// as the defaults.
func Compute(hostname string, s *settings.Settings) (Message, bool) {
	return compute(defaultFilter, defaultResolver, hostname, s)
}

var (
	defaultFilter   = domain.NewFilter(nil)
	defaultResolver = resolver.New(nil)
)

func compute(f *domain.Filter, r *resolver.Resolver, hostname string, s *settings.Settings) (Message, bool) {
	if hostname == "" {
		return Message{}, false
	}
	if s == nil {
		s = settings.Defaults()
	}
	if !f.IsAllowed(hostname, s.DomainMode, s.DomainPatterns) {
		return Message{Type: TypeHide}, true
	}

	res := r.Resolve(hostname, s)
	return Message{
		Type: TypeUpdate,
		Payload: &Payload{
			Hostname:     hostname,
			Color:        res.Color,
			TextColor:    res.TextColor,
			BannerText:   s.BannerText,
			BannerHeight: s.BannerHeight,
			Source:       res.Source,
			Pattern:      res.Pattern,
		},
	}, true
}
