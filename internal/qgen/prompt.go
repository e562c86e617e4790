package qgen

import (
	"fmt"
	"strings"

	"github.com/raunakm/stepdeck/internal/retrieval"
)

const systemPrompt = `You are a medical educator writing USMLE Step 1 practice questions.

Rules:
- Write a single board-style multiple-choice question for the given concept.
- Open with a clinical vignette: patient demographics, presentation, relevant findings. Then ask one clear question.
- Provide five answer options labeled A through E. Exactly one is correct. Distractors must be plausible and reflect common misconceptions.
- Provide an explanation for every option. Start the correct option's explanation with "Correct. " and each incorrect option's explanation with "Incorrect. ".
- When reference passages are supplied, ground the clinical details and the explanations in them.
- If the concept is too vague or non-medical to support a fair question, reply with exactly the single word SKIP.
- Otherwise reply with only a JSON object with keys "question", "options", "correct_answer" and "explanation". No prose around it.`

// buildUserMessage assembles the per-concept request, appending retrieved
// reference passages when retrieval augmentation is on.
func buildUserMessage(concept string, passages []retrieval.Passage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Concept: %s\n", concept)

	if len(passages) > 0 {
		b.WriteString("\nReference passages:\n")
		for i, p := range passages {
			fmt.Fprintf(&b, "\n[%d] %s\n%s\n", i+1, p.Title, p.Text)
		}
	}

	return b.String()
}
