// Package qgen generates USMLE-style multiple-choice questions, one per
// concept, optionally grounded in retrieved reference passages.
package qgen

import (
	"errors"
	"fmt"
)

// Choice is one labeled answer option. Slice order is display order.
type Choice struct {
	Label string
	Text  string
}

// Question is a fully parsed and validated MCQ.
type Question struct {
	// Stem is the clinical vignette and question text.
	Stem string

	// Choices holds the answer options in the order the model wrote
	// them; slides preserve this order.
	Choices []Choice

	// CorrectLabel is the label of the right answer, e.g. "B".
	CorrectLabel string

	// Explanations maps each choice label to its rationale. The correct
	// entry conventionally starts with "Correct. ", the rest with
	// "Incorrect. "; the deck renderer strips those prefixes.
	Explanations map[string]string

	// Concept is the concept phrase this question was generated for.
	Concept string
}

// Option returns the option text for a label.
func (q *Question) Option(label string) (string, bool) {
	for _, c := range q.Choices {
		if c.Label == label {
			return c.Text, true
		}
	}
	return "", false
}

// ErrSkipped signals the model declined to produce a question for this
// concept. The driver skips the concept and moves on.
var ErrSkipped = errors.New("question generation skipped")

// ErrMalformed describes a payload that parsed or validated badly.
// Distinct from transport errors so the driver can count it as a skip
// instead of aborting the subject.
type ErrMalformed struct {
	Reason string
	Err    error
}

func (e *ErrMalformed) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed question payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed question payload: %s", e.Reason)
}

func (e *ErrMalformed) Unwrap() error { return e.Err }
