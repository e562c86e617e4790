// Package subjects holds the USMLE Step 1 subject plan: which subject
// groups get a deck and how many questions each deck targets. Counts are
// roughly proportional to the subject's weight on the exam.
package subjects

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Subject is one deck's worth of work.
type Subject struct {
	// Label is the free-text subject group, as fed to the concept prompt
	// and sanitized into the output filename.
	Label string `yaml:"label"`

	// Questions is the target number of questions for the deck.
	Questions int `yaml:"questions"`
}

// DefaultPlan returns the built-in subject plan in deck order.
func DefaultPlan() []Subject {
	return []Subject{
		{"biochemistry, genetics, pharmacology, poisoning and environmental exposure", 50},
		{"allergy, immunology, infectious disease, microbiology", 100},
		{"cardiology", 100},
		{"hematology, oncology", 50},
		{"respiratory, pulmonology", 50},
		{"renal, urology", 50},
		{"endocrine", 50},
		{"reproductive (male and female, pregnancy)", 50},
		{"gastrointestinal", 50},
		{"dermatology", 50},
		{"orthopedics, rheumatology", 50},
		{"neurology, ophthalmology and ent", 100},
		{"psychiatry", 50},
		{"biostatistics", 20},
	}
}

// LoadPlan reads a YAML plan file: a list of {label, questions} entries.
func LoadPlan(path string) ([]Subject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var plan []Subject
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan file: %w", err)
	}

	for i, s := range plan {
		if strings.TrimSpace(s.Label) == "" {
			return nil, fmt.Errorf("plan entry %d: empty label", i+1)
		}
		if s.Questions < 0 {
			return nil, fmt.Errorf("plan entry %d (%s): negative question count", i+1, s.Label)
		}
	}
	return plan, nil
}

// Find returns the plan entry whose label matches s, case-insensitively,
// matching either the full label or any comma-separated part of it.
func Find(plan []Subject, s string) (Subject, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, subj := range plan {
		if strings.ToLower(subj.Label) == needle {
			return subj, true
		}
		for part := range strings.SplitSeq(subj.Label, ",") {
			if strings.ToLower(strings.TrimSpace(part)) == needle {
				return subj, true
			}
		}
	}
	return Subject{}, false
}
