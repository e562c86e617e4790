package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "validate-test-question",
		Description: "test schema",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"question", "options", "correct_answer"},
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":                 "object",
					"minProperties":        2,
					"additionalProperties": map[string]any{"type": "string"},
				},
				"correct_answer": map[string]any{"type": "string"},
			},
		},
	}
}

func TestValidateJSON_Valid(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "q",
		"options": {"A": "a", "B": "b"},
		"correct_answer": "A"
	}`)
	if err := ValidateJSON(testSchema(), raw); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateJSON_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"question": "q"}`)
	err := ValidateJSON(testSchema(), raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateJSON_TooFewOptions(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "q",
		"options": {"A": "a"},
		"correct_answer": "A"
	}`)
	if err := ValidateJSON(testSchema(), raw); err == nil {
		t.Error("expected minProperties violation")
	}
}

func TestValidateJSON_NotJSON(t *testing.T) {
	err := ValidateJSON(testSchema(), json.RawMessage("SKIP"))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	if err := ValidateJSON(nil, json.RawMessage("anything at all")); err != nil {
		t.Errorf("nil schema must accept anything: %v", err)
	}
}

func TestValidateJSON_CachesCompiledSchema(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "q",
		"options": {"A": "a", "B": "b"},
		"correct_answer": "A"
	}`)
	s := testSchema()
	for i := 0; i < 3; i++ {
		if err := ValidateJSON(s, raw); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	if _, ok := schemaCache.Load(s.Name); !ok {
		t.Error("expected compiled schema in cache")
	}
}
