package gazetteer

import (
	"context"

	"github.com/landackn/landbot/internal/resilience"
)

// RetryingStore decorates a Store with retry-on-dropped-connection behavior.
// The matcher itself never retries; reconnect concerns live here, at the
// adapter boundary.
type RetryingStore struct {
	next Store
	cfg  resilience.RetryConfig
}

// WithRetry wraps a Store in retry logic using the default configuration.
func WithRetry(next Store) *RetryingStore {
	return &RetryingStore{next: next, cfg: resilience.DefaultRetryConfig()}
}

// PostalLookup implements Store.
func (s *RetryingStore) PostalLookup(ctx context.Context, zip string) (*Record, error) {
	cfg := s.cfg
	cfg.OnRetry = resilience.RetryLogger("gazetteer", "postal_lookup")
	return resilience.DoVal(ctx, cfg, func(ctx context.Context) (*Record, error) {
		return s.next.PostalLookup(ctx, zip)
	})
}

// FuzzyLookup implements Store.
func (s *RetryingStore) FuzzyLookup(ctx context.Context, nameKey, codeKey string) (*Record, error) {
	cfg := s.cfg
	cfg.OnRetry = resilience.RetryLogger("gazetteer", "fuzzy_lookup")
	return resilience.DoVal(ctx, cfg, func(ctx context.Context) (*Record, error) {
		return s.next.FuzzyLookup(ctx, nameKey, codeKey)
	})
}
