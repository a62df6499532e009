package banner

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/domaintint/internal/domain"
	"github.com/jmylchreest/domaintint/internal/pattern"
	"github.com/jmylchreest/domaintint/internal/resolver"
	"github.com/jmylchreest/domaintint/internal/settings"
)

// Service answers banner requests from a settings store, reading a fresh
// snapshot for every request.
type Service struct {
	store    settings.Store
	logger   hclog.Logger
	filter   *domain.Filter
	resolver *resolver.Resolver
}

// NewService returns a Service reading from store. A nil logger discards
// output. Both the filter and resolver share one pattern cache.
func NewService(store settings.Store, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	m := pattern.NewMatcher(pattern.NewMapCache())
	return &Service{
		store:    store,
		logger:   logger.Named("banner"),
		filter:   domain.NewFilter(m),
		resolver: resolver.New(m),
	}
}

// ForURL computes the message for the page at rawURL.
func (s *Service) ForURL(ctx context.Context, rawURL string) (Message, bool, error) {
	return s.ForHostname(ctx, ExtractHostname(rawURL))
}

// ForHostname computes the message for hostname. The boolean is false when
// there is nothing to send (empty hostname).
func (s *Service) ForHostname(ctx context.Context, hostname string) (Message, bool, error) {
	if hostname == "" {
		s.logger.Debug("skipping empty hostname")
		return Message{}, false, nil
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return Message{}, false, fmt.Errorf("failed to load settings: %w", err)
	}

	msg, ok := s.Compute(hostname, snap)
	if msg.Hidden() {
		s.logger.Debug("hostname filtered", "hostname", hostname, "mode", snap.DomainMode)
	} else if ok {
		s.logger.Debug("resolved colour", "hostname", hostname, "source", msg.Payload.Source, "color", msg.Payload.Color)
	}
	return msg, ok, nil
}

// Compute builds the message for hostname from an existing snapshot.
func (s *Service) Compute(hostname string, snap *settings.Settings) (Message, bool) {
	return compute(s.filter, s.resolver, hostname, snap)
}
