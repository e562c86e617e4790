// Package concepts asks the LLM for high-yield exam concepts and parses
// the numbered-list reply.
package concepts

import (
	"context"
	"fmt"
	"strings"

	"github.com/raunakm/stepdeck/internal/llm"
)

// Config controls the lister's LLM call.
type Config struct {
	// Temperature for the listing call. The list benefits from some
	// variety, so this is above zero.
	Temperature float64

	// MaxTokens caps the reply. Long subject lists need room.
	MaxTokens int
}

// DefaultConfig returns the standard lister settings.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}

// Result is the outcome of one listing call.
type Result struct {
	// Concepts holds at most Requested parsed concept phrases, in the
	// order the model returned them.
	Concepts []string

	// Requested is the count that was asked for. len(Concepts) may be
	// smaller when the model under-delivers; callers decide whether a
	// shortfall matters.
	Requested int
}

// Shortfall reports how many concepts short of the request the model was.
func (r Result) Shortfall() int {
	return r.Requested - len(r.Concepts)
}

// Lister produces concept lists for a subject.
type Lister struct {
	provider llm.Provider
	cfg      Config
}

// NewLister creates a Lister on the given provider.
func NewLister(provider llm.Provider, cfg Config) *Lister {
	return &Lister{provider: provider, cfg: cfg}
}

// List asks for n high-yield concepts for the subject. The reply is
// parsed line by line; a zero-line reply yields an empty Result, not an
// error. Transport failures propagate.
func (l *Lister) List(ctx context.Context, subject string, n int) (Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeConceptList)

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(subject, n)},
		},
		MaxTokens:   l.cfg.MaxTokens,
		Temperature: l.cfg.Temperature,
	}

	resp, err := l.provider.Generate(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("list concepts for %q: %w", subject, err)
	}

	return Result{
		Concepts:  parseNumberedList(resp.Text(), n),
		Requested: n,
	}, nil
}

// buildPrompt asks for a numbered list of high-yield Step 1 concepts
// spanning the usual discipline categories.
func buildPrompt(subject string, n int) string {
	return fmt.Sprintf(
		"Please generate a list of %d high-yield must-know USMLE Step 1 %s concepts. "+
			"Include topics that cover diseases, pathophysiology, pharmacology, physiology, "+
			"anatomy, microbiology, embryology, etc as appropriate. "+
			"Return the list in a numbered format (one concept per line).",
		n, subject)
}

// parseNumberedList extracts concept phrases from the model reply.
// A leading "N." numbering token is stripped by splitting on the first
// period; lines without a period are kept verbatim. The result is
// truncated to at most max entries.
func parseNumberedList(text string, max int) []string {
	var concepts []string
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		concept := line
		if _, after, found := strings.Cut(line, "."); found {
			concept = strings.TrimSpace(after)
		}
		if concept == "" {
			continue
		}
		concepts = append(concepts, concept)

		if max > 0 && len(concepts) == max {
			break
		}
	}
	return concepts
}
