package qgen

// Config controls the LLMGenerator.
type Config struct {
	// Validators run in order on every parsed question; the first
	// failure rejects the payload as malformed.
	Validators []Validator

	// MaxTokens is the response budget. Reasoning models spend tokens
	// thinking before the payload, so this is generous.
	MaxTokens int

	// Temperature for question writing.
	Temperature float64

	// TopK is how many reference passages to retrieve per concept.
	// Ignored when retrieval is disabled.
	TopK int

	// UseSchema asks the provider for native structured output. Off by
	// default: the routing-gateway reasoning models reply in fenced
	// blocks instead, which ExtractJSON handles either way.
	UseSchema bool
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			StructuralValidator{},
			LabelAlignmentValidator{},
		},
		MaxTokens:   8192,
		Temperature: 0.7,
		TopK:        4,
	}
}
