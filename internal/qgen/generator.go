package qgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/raunakm/stepdeck/internal/llm"
	"github.com/raunakm/stepdeck/internal/retrieval"
)

// Generator produces one MCQ per concept.
type Generator interface {
	// Generate writes and validates a question for the concept.
	// Returns ErrSkipped when the model declines, or *ErrMalformed when
	// the payload cannot be used.
	Generate(ctx context.Context, concept string) (*Question, error)
}

// LLMGenerator implements Generator on an llm.Provider plus a Retriever.
type LLMGenerator struct {
	provider  llm.Provider
	retriever retrieval.Retriever
	config    Config
}

// New creates an LLMGenerator. Pass retrieval.Disabled{} to generate
// without reference grounding.
func New(provider llm.Provider, retriever retrieval.Retriever, cfg Config) *LLMGenerator {
	if retriever == nil {
		retriever = retrieval.Disabled{}
	}
	return &LLMGenerator{provider: provider, retriever: retriever, config: cfg}
}

func (g *LLMGenerator) Generate(ctx context.Context, concept string) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	passages, err := g.retriever.Retrieve(ctx, concept, g.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieve passages for %q: %w", concept, err)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(concept, passages)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
	if g.config.UseSchema {
		req.Schema = QuestionSchema
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate question for %q: %w", concept, err)
	}

	text := resp.Text()
	if strings.EqualFold(strings.TrimSpace(text), "SKIP") {
		return nil, ErrSkipped
	}

	raw := ExtractJSON(text)

	// Schema enforcement happens here rather than at the provider so
	// fenced-block replies get the same treatment as native JSON.
	if err := llm.ValidateJSON(QuestionSchema, raw); err != nil {
		return nil, &ErrMalformed{Reason: "schema validation failed", Err: err}
	}

	q, err := parsePayload(raw, concept)
	if err != nil {
		return nil, err
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return nil, &ErrMalformed{Reason: verr.Error()}
		}
	}

	return q, nil
}
