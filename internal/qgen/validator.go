package qgen

import "fmt"

// Validator checks a parsed question before it reaches the renderer.
// Implementations must be stateless.
type Validator interface {
	// Name identifies the validator in error messages, e.g. "structural".
	Name() string

	// Validate returns nil when the question passes.
	Validate(q *Question) *ValidationError
}

// ValidationError says why a question was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks the basic shape: a stem, at least two
// options, and a correct label that names one of them.
type StructuralValidator struct{}

func (StructuralValidator) Name() string { return "structural" }

func (v StructuralValidator) Validate(q *Question) *ValidationError {
	if q.Stem == "" {
		return v.fail("empty question stem")
	}
	if len(q.Choices) < 2 {
		return v.fail(fmt.Sprintf("need at least 2 options, got %d", len(q.Choices)))
	}
	if q.CorrectLabel == "" {
		return v.fail("missing correct_answer")
	}
	if _, ok := q.Option(q.CorrectLabel); !ok {
		return v.fail(fmt.Sprintf("correct_answer %q is not an option label", q.CorrectLabel))
	}

	seen := make(map[string]bool, len(q.Choices))
	for _, c := range q.Choices {
		if c.Label == "" {
			return v.fail("option with empty label")
		}
		if seen[c.Label] {
			return v.fail(fmt.Sprintf("duplicate option label %q", c.Label))
		}
		seen[c.Label] = true
	}
	return nil
}

func (StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: "structural", Message: msg}
}

// LabelAlignmentValidator checks that every option label has an
// explanation. The revealed slide dereferences the explanation map for
// each choice, so a hole here would otherwise surface mid-render.
type LabelAlignmentValidator struct{}

func (LabelAlignmentValidator) Name() string { return "label-alignment" }

func (v LabelAlignmentValidator) Validate(q *Question) *ValidationError {
	for _, c := range q.Choices {
		if _, ok := q.Explanations[c.Label]; !ok {
			return &ValidationError{
				Validator: "label-alignment",
				Message:   fmt.Sprintf("no explanation for option %q", c.Label),
			}
		}
	}
	return nil
}
