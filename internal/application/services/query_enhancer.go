package services

import (
	"context"
	"strings"
	"time"

	"github.com/glowmart/ai-product-search/backend/internal/domain/providers"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/observability"
)

const defaultEnhancementTimeout = 5 * time.Second

// QueryEnhancer wraps the completion provider with a bounded timeout and a
// fail-soft contract: Enhance never returns an error. Any provider failure
// degrades to the original query with the reason recorded on the result.
type QueryEnhancer struct {
	provider providers.CompletionProvider
	timeout  time.Duration
}

// NewQueryEnhancer creates a query enhancer. A nil provider is valid and
// means enhancement is disabled; every query then passes through unchanged.
func NewQueryEnhancer(provider providers.CompletionProvider, timeout time.Duration) *QueryEnhancer {
	if timeout <= 0 {
		timeout = defaultEnhancementTimeout
	}
	return &QueryEnhancer{provider: provider, timeout: timeout}
}

// Enhance attempts to expand the query with synonyms and variants. The
// original query is returned unchanged when enhancement is disabled, the
// query is empty, the provider fails, or the provider returns empty text.
func (e *QueryEnhancer) Enhance(ctx context.Context, query string) providers.Enhancement {
	passthrough := providers.Enhancement{Query: query}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		passthrough.Reason = "empty query"
		return passthrough
	}
	if e.provider == nil {
		passthrough.Reason = "enhancement disabled"
		return passthrough
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	enhanced, err := e.provider.CompleteQuery(ctx, trimmed)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("query", trimmed).
			Msg("Query enhancement failed, using original query")
		passthrough.Reason = "enhancement unavailable"
		return passthrough
	}

	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		passthrough.Reason = "empty enhancement"
		return passthrough
	}

	return providers.Enhancement{Query: enhanced, Enhanced: true}
}
