package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider abstracts a chat-completion backend. Stepdeck talks to two of
// these per run: one for concept listing, one for question writing.
type Provider interface {
	// Generate sends one request and blocks until the model responds.
	// When the request carries a Schema, Content holds JSON validated
	// against it; otherwise Content is the raw text of the reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider targets.
	ModelID() string
}

// Request describes a single completion call.
type Request struct {
	// System sets the model's role and constraints. Optional.
	System string

	// Messages is the conversation. Every stepdeck call is single-turn,
	// so this is one user message in practice.
	Messages []Message

	// Schema, when set, asks the provider for structured JSON output
	// conforming to it. Nil means free-form text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls sampling randomness, 0.0-1.0.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    MessageRole
	Content string
}

// MessageRole identifies the sender of a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Schema names a JSON Schema the response must satisfy.
type Schema struct {
	// Name identifies the schema to the provider (tool name for
	// Anthropic, schema name for OpenAI). Kebab-case.
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is validated JSON when the request had a Schema,
	// otherwise the raw reply text.
	Content json.RawMessage

	// Usage reports token consumption for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns the response content as a plain string, trimmed.
// Useful for schemaless calls such as concept listing.
func (r *Response) Text() string {
	return strings.TrimSpace(string(r.Content))
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
