// Package run drives a full deck-building pass over the subject plan.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/raunakm/stepdeck/internal/concepts"
	"github.com/raunakm/stepdeck/internal/deck"
	"github.com/raunakm/stepdeck/internal/qgen"
	"github.com/raunakm/stepdeck/internal/store"
	"github.com/raunakm/stepdeck/internal/subjects"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// Options wires the runner's collaborators.
type Options struct {
	Plan      []subjects.Subject
	OutputDir string

	Lister    *concepts.Lister
	Generator qgen.Generator

	// DeckRepo records per-subject outcomes. Nil disables recording.
	DeckRepo store.DeckRepo

	Stdout io.Writer
	Stderr io.Writer
}

// SubjectResult is the outcome of one subject's deck build.
type SubjectResult struct {
	Subject    subjects.Subject
	Concepts   int
	Generated  int
	Skipped    int
	OutputPath string
	Duration   time.Duration
	Err        error
}

// Summary is the outcome of a whole run.
type Summary struct {
	RunID   string
	Results []SubjectResult
}

// Failed reports whether any subject that wanted questions ended up
// with none, or errored outright.
func (s *Summary) Failed() bool {
	for _, r := range s.Results {
		if r.Err != nil {
			return true
		}
		if r.Subject.Questions > 0 && r.Generated == 0 {
			return true
		}
	}
	return false
}

// Runner executes the subject plan sequentially: concepts, then one
// question per concept, then the deck file. Failed concepts are skipped
// and counted; a subject-level failure aborts only that subject.
type Runner struct {
	opts  Options
	runID string
}

// New creates a Runner with a fresh run ID.
func New(opts Options) *Runner {
	return &Runner{opts: opts, runID: uuid.NewString()}
}

// Run processes every subject in plan order.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{RunID: r.runID}

	for _, subj := range r.opts.Plan {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		fmt.Fprintln(r.opts.Stdout, headerStyle.Render(
			fmt.Sprintf("=== %s (%d questions) ===", subj.Label, subj.Questions)))

		res := r.buildSubject(ctx, subj)
		summary.Results = append(summary.Results, res)
		r.record(ctx, res)

		switch {
		case res.Err != nil:
			fmt.Fprintln(r.opts.Stderr, errStyle.Render(
				fmt.Sprintf("%s: %v", subj.Label, res.Err)))
		default:
			line := fmt.Sprintf("saved %s (%d/%d questions, %d skipped)",
				res.OutputPath, res.Generated, subj.Questions, res.Skipped)
			fmt.Fprintln(r.opts.Stdout, okStyle.Render(line))
		}
	}

	return summary, ctx.Err()
}

func (r *Runner) buildSubject(ctx context.Context, subj subjects.Subject) SubjectResult {
	start := time.Now()
	res := SubjectResult{Subject: subj}

	listed, err := r.opts.Lister.List(ctx, subj.Label, subj.Questions)
	if err != nil {
		res.Err = fmt.Errorf("list concepts: %w", err)
		res.Duration = time.Since(start)
		return res
	}
	res.Concepts = len(listed.Concepts)

	fmt.Fprintln(r.opts.Stdout, dimStyle.Render(
		fmt.Sprintf("retrieved %d concepts", res.Concepts)))
	if short := listed.Shortfall(); short > 0 {
		fmt.Fprintln(r.opts.Stderr, warnStyle.Render(
			fmt.Sprintf("warning: %d concepts short of the %d requested", short, subj.Questions)))
	}

	var questions []*qgen.Question
	for i, concept := range listed.Concepts {
		if err := ctx.Err(); err != nil {
			res.Err = err
			res.Duration = time.Since(start)
			return res
		}

		fmt.Fprintln(r.opts.Stdout, dimStyle.Render(
			fmt.Sprintf("  [%d/%d] %s", i+1, res.Concepts, concept)))

		q, err := r.opts.Generator.Generate(ctx, concept)
		switch {
		case err == nil:
			questions = append(questions, q)
		case errors.Is(err, qgen.ErrSkipped):
			res.Skipped++
			fmt.Fprintln(r.opts.Stderr, warnStyle.Render(
				fmt.Sprintf("  skipped %q: model declined", concept)))
		default:
			// Post-retry failure on one concept costs that concept,
			// not the subject.
			res.Skipped++
			fmt.Fprintln(r.opts.Stderr, warnStyle.Render(
				fmt.Sprintf("  skipped %q: %v", concept, err)))
		}
	}
	res.Generated = len(questions)

	path, err := deck.Save(r.opts.OutputDir, subj.Label, deck.Build(questions))
	if err != nil {
		res.Err = fmt.Errorf("save deck: %w", err)
		res.Duration = time.Since(start)
		return res
	}
	res.OutputPath = path
	res.Duration = time.Since(start)
	return res
}

func (r *Runner) record(ctx context.Context, res SubjectResult) {
	if r.opts.DeckRepo == nil {
		return
	}

	data := store.DeckBuildData{
		RunID:      r.runID,
		Subject:    res.Subject.Label,
		Requested:  res.Subject.Questions,
		Concepts:   res.Concepts,
		Generated:  res.Generated,
		Skipped:    res.Skipped,
		OutputPath: res.OutputPath,
		DurationMs: res.Duration.Milliseconds(),
	}
	if res.Err != nil {
		data.Error = res.Err.Error()
	}

	if err := r.opts.DeckRepo.AppendDeckBuild(ctx, data); err != nil {
		fmt.Fprintln(r.opts.Stderr, warnStyle.Render(
			fmt.Sprintf("warning: failed to record deck build: %v", err)))
	}
}
