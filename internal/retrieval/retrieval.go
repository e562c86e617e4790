// Package retrieval provides passage retrieval over a local textbook
// corpus, used to ground question generation in reference text.
package retrieval

import "context"

// Passage is one retrievable unit of reference text.
type Passage struct {
	ID    int
	Title string
	Text  string

	// Score is the retrieval rank score; lower is better (BM25).
	Score float64
}

// Retriever returns the passages most relevant to a query.
type Retriever interface {
	// Retrieve returns up to k passages ranked by relevance.
	// An empty result is not an error.
	Retrieve(ctx context.Context, query string, k int) ([]Passage, error)
}

// Disabled is a Retriever that returns nothing, used when retrieval
// augmentation is switched off.
type Disabled struct{}

func (Disabled) Retrieve(context.Context, string, int) ([]Passage, error) {
	return nil, nil
}
