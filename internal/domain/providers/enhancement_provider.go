package providers

import "context"

// Enhancement is the outcome of a query enhancement attempt. Enhanced is
// false when the original query passed through unchanged; Reason then says
// why (empty query, no credential, upstream failure).
type Enhancement struct {
	Query    string `json:"query"`
	Enhanced bool   `json:"enhanced"`
	Reason   string `json:"reason,omitempty"`
}

// CompletionProvider is the outbound text-completion collaborator used to
// expand search queries.
type CompletionProvider interface {
	// CompleteQuery asks the collaborator to rewrite the query with synonyms
	// and variants while preserving intent
	CompleteQuery(ctx context.Context, query string) (string, error)
}
