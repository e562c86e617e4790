package qgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Parse turns a raw question payload (bare JSON or fenced-block text)
// into a Question, without running the validator chain. Used for
// payloads that arrive from outside the generator, e.g. replayed files.
func Parse(text string) (*Question, error) {
	return parsePayload(ExtractJSON(text), "")
}

// parsePayload turns a raw JSON question payload into a Question.
// Option order in the payload is preserved: encoding/json maps would
// shuffle keys, so the options object is walked token by token.
func parsePayload(raw json.RawMessage, concept string) (*Question, error) {
	var env struct {
		Question     string            `json:"question"`
		Options      json.RawMessage   `json:"options"`
		Correct      string            `json:"correct_answer"`
		Explanations map[string]string `json:"explanation"`
	}

	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ErrMalformed{Reason: "invalid JSON", Err: err}
	}

	choices, err := decodeOrderedOptions(env.Options)
	if err != nil {
		return nil, &ErrMalformed{Reason: "invalid options object", Err: err}
	}

	return &Question{
		Stem:         strings.TrimSpace(env.Question),
		Choices:      choices,
		CorrectLabel: strings.TrimSpace(env.Correct),
		Explanations: env.Explanations,
		Concept:      concept,
	}, nil
}

// decodeOrderedOptions reads a JSON object of label→text pairs keeping
// the key order of the document.
func decodeOrderedOptions(raw json.RawMessage) ([]Choice, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing options")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("options is not an object")
	}

	var choices []Choice
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		label, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected options key token %v", keyTok)
		}

		var text string
		if err := dec.Decode(&text); err != nil {
			return nil, fmt.Errorf("option %q: %w", label, err)
		}

		choices = append(choices, Choice{Label: strings.TrimSpace(label), Text: text})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return choices, nil
}
