package qgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/raunakm/stepdeck/internal/llm"
	"github.com/raunakm/stepdeck/internal/retrieval"
)

type stubRetriever struct {
	passages []retrieval.Passage
	queries  []string
}

func (s *stubRetriever) Retrieve(_ context.Context, query string, _ int) ([]retrieval.Passage, error) {
	s.queries = append(s.queries, query)
	return s.passages, nil
}

func TestGenerate_Valid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPayload()})
	gen := New(mock, nil, DefaultConfig())

	q, err := gen.Generate(context.Background(), "spontaneous pneumothorax")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Concept != "spontaneous pneumothorax" {
		t.Errorf("unexpected concept: %q", q.Concept)
	}
	if q.CorrectLabel != "B" {
		t.Errorf("expected correct label B, got %q", q.CorrectLabel)
	}
	if len(q.Choices) != 5 {
		t.Errorf("expected 5 choices, got %d", len(q.Choices))
	}
}

func TestGenerate_FencedReply(t *testing.T) {
	fenced := "Sure, here it is:\n```json\n" + string(validPayload()) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})
	gen := New(mock, nil, DefaultConfig())

	q, err := gen.Generate(context.Background(), "pneumothorax")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.CorrectLabel != "B" {
		t.Errorf("expected correct label B, got %q", q.CorrectLabel)
	}
}

func TestGenerate_Skip(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("SKIP")})
	gen := New(mock, nil, DefaultConfig())

	_, err := gen.Generate(context.Background(), "etc as appropriate")
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", err)
	}
}

func TestGenerate_SkipLowercase(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("skip\n")})
	gen := New(mock, nil, DefaultConfig())

	_, err := gen.Generate(context.Background(), "vague concept")
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", err)
	}
}

func TestGenerate_MalformedPayload(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"question": "q"}`)})
	gen := New(mock, nil, DefaultConfig())

	_, err := gen.Generate(context.Background(), "concept")
	if err == nil {
		t.Fatal("expected error for incomplete payload")
	}
	var malformed *ErrMalformed
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *ErrMalformed, got %T", err)
	}
}

func TestGenerate_ValidatorRejection(t *testing.T) {
	// Explanation for option E missing.
	raw := json.RawMessage(`{
		"question": "q",
		"options": {"A": "a", "B": "b", "C": "c", "D": "d", "E": "e"},
		"correct_answer": "A",
		"explanation": {
			"A": "Correct. a", "B": "Incorrect. b",
			"C": "Incorrect. c", "D": "Incorrect. d"
		}
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, nil, DefaultConfig())

	_, err := gen.Generate(context.Background(), "concept")
	var malformed *ErrMalformed
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *ErrMalformed, got %v", err)
	}
	if !strings.Contains(err.Error(), "label-alignment") {
		t.Errorf("expected label-alignment rejection, got: %v", err)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	gen := New(mock, nil, DefaultConfig())

	_, err := gen.Generate(context.Background(), "concept")
	if err == nil {
		t.Fatal("expected provider error")
	}
	var malformed *ErrMalformed
	if errors.As(err, &malformed) {
		t.Error("transport error must not look like a malformed payload")
	}
}

func TestGenerate_PassagesInPrompt(t *testing.T) {
	ret := &stubRetriever{passages: []retrieval.Passage{
		{Title: "First Aid", Text: "Tension pneumothorax shifts the trachea away."},
	}}
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPayload()})
	gen := New(mock, ret, DefaultConfig())

	_, err := gen.Generate(context.Background(), "tension pneumothorax")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ret.queries) != 1 || ret.queries[0] != "tension pneumothorax" {
		t.Errorf("unexpected retriever queries: %v", ret.queries)
	}
	userMsg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(userMsg, "Tension pneumothorax shifts the trachea away.") {
		t.Errorf("expected passage text in prompt, got: %q", userMsg)
	}
	if !strings.Contains(userMsg, "[1] First Aid") {
		t.Errorf("expected numbered passage title in prompt, got: %q", userMsg)
	}
}

func TestGenerate_ConfigOverrides(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPayload()})
	cfg := DefaultConfig()
	cfg.MaxTokens = 1024
	cfg.Temperature = 0.3
	gen := New(mock, nil, cfg)

	_, err := gen.Generate(context.Background(), "concept")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls[0].MaxTokens != 1024 {
		t.Errorf("expected MaxTokens 1024, got %d", mock.Calls[0].MaxTokens)
	}
	if mock.Calls[0].Temperature != 0.3 {
		t.Errorf("expected Temperature 0.3, got %f", mock.Calls[0].Temperature)
	}
	if mock.Calls[0].Schema != nil {
		t.Error("schema must not be sent unless UseSchema is set")
	}
}

func TestGenerate_UseSchema(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPayload()})
	cfg := DefaultConfig()
	cfg.UseSchema = true
	gen := New(mock, nil, cfg)

	_, err := gen.Generate(context.Background(), "concept")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls[0].Schema != QuestionSchema {
		t.Error("expected question schema on the request")
	}
}
