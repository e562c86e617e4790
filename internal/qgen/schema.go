package qgen

import "github.com/raunakm/stepdeck/internal/llm"

// QuestionSchema is the JSON shape a generated MCQ must satisfy:
// a vignette stem, labeled options, one correct label and a per-option
// explanation map. Option and explanation keys must be single letters.
var QuestionSchema = &llm.Schema{
	Name:        "usmle-question",
	Description: "A single USMLE-style multiple-choice question with labeled options, the correct label and per-option explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The clinical vignette and question stem",
			},
			"options": map[string]any{
				"type":          "object",
				"minProperties": 2,
				"additionalProperties": map[string]any{
					"type": "string",
				},
				"description": "Answer options keyed by letter label (A, B, C, ...)",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The label of the correct option",
			},
			"explanation": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type": "string",
				},
				"description": "Rationale per option label. Start the correct entry with 'Correct. ' and the others with 'Incorrect. '",
			},
		},
		"required": []any{"question", "options", "correct_answer", "explanation"},
	},
}
