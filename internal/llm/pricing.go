package llm

// ModelCost holds per-million-token pricing for a model, USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the models stepdeck is expected to run against.
var modelCosts = map[string]ModelCost{
	// OpenAI (concept listing)
	"gpt-4o":            {2.5, 10},
	"gpt-4o-2024-08-06": {2.5, 10},
	"gpt-4o-2024-11-20": {2.5, 10},
	"gpt-4o-mini":       {0.15, 0.6},
	"gpt-4.1":           {2, 8},
	"gpt-4.1-mini":      {0.4, 1.6},

	// OpenRouter (question writing)
	"deepseek/deepseek-r1":      {0.55, 2.19},
	"deepseek/deepseek-r1:free": {0, 0},
	"deepseek/deepseek-chat":    {0.27, 1.1},

	// Anthropic
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},

	// Google
	"gemini-2.0-flash": {0.1, 0.4},
	"gemini-2.5-pro":   {1.25, 10},
	"gemini-2.5-flash": {0.3, 2.5},
}
