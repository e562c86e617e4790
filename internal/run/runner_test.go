package run

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raunakm/stepdeck/internal/concepts"
	"github.com/raunakm/stepdeck/internal/llm"
	"github.com/raunakm/stepdeck/internal/qgen"
	"github.com/raunakm/stepdeck/internal/store"
	"github.com/raunakm/stepdeck/internal/subjects"
)

// stubGenerator returns one question per concept, with optional
// per-concept failures.
type stubGenerator struct {
	fail map[string]error
}

func (g *stubGenerator) Generate(_ context.Context, concept string) (*qgen.Question, error) {
	if err, ok := g.fail[concept]; ok {
		return nil, err
	}
	return &qgen.Question{
		Stem: "Stem for " + concept,
		Choices: []qgen.Choice{
			{Label: "A", Text: "right"},
			{Label: "B", Text: "wrong"},
		},
		CorrectLabel: "A",
		Explanations: map[string]string{
			"A": "Correct. Because.",
			"B": "Incorrect. Because not.",
		},
		Concept: concept,
	}, nil
}

// recordingDeckRepo captures AppendDeckBuild calls.
type recordingDeckRepo struct {
	builds []store.DeckBuildData
}

func (r *recordingDeckRepo) AppendDeckBuild(_ context.Context, data store.DeckBuildData) error {
	r.builds = append(r.builds, data)
	return nil
}

func (r *recordingDeckRepo) ListDeckBuilds(context.Context, int) ([]store.DeckBuild, error) {
	return nil, nil
}

func newTestRunner(t *testing.T, mock *llm.MockProvider, gen qgen.Generator, plan []subjects.Subject) (*Runner, string, *recordingDeckRepo) {
	t.Helper()
	dir := t.TempDir()
	repo := &recordingDeckRepo{}
	r := New(Options{
		Plan:      plan,
		OutputDir: dir,
		Lister:    concepts.NewLister(mock, concepts.DefaultConfig()),
		Generator: gen,
		DeckRepo:  repo,
		Stdout:    &bytes.Buffer{},
		Stderr:    &bytes.Buffer{},
	})
	return r, dir, repo
}

func TestRun_BuildsDeck(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("1. Sensitivity and specificity\n2. Number needed to treat\n"),
	})
	plan := []subjects.Subject{{Label: "biostatistics", Questions: 2}}
	r, dir, repo := newTestRunner(t, mock, &stubGenerator{}, plan)

	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.RunID == "" {
		t.Error("expected a run ID")
	}
	if summary.Failed() {
		t.Errorf("expected success: %+v", summary.Results)
	}

	if len(summary.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(summary.Results))
	}
	res := summary.Results[0]
	if res.Concepts != 2 || res.Generated != 2 || res.Skipped != 0 {
		t.Errorf("unexpected counts: %+v", res)
	}

	if _, err := os.Stat(filepath.Join(dir, "biostatistics.pptx")); err != nil {
		t.Errorf("deck not written: %v", err)
	}

	if len(repo.builds) != 1 {
		t.Fatalf("expected 1 recorded build, got %d", len(repo.builds))
	}
	b := repo.builds[0]
	if b.RunID != summary.RunID || b.Subject != "biostatistics" || b.Generated != 2 {
		t.Errorf("unexpected recorded build: %+v", b)
	}
}

func TestRun_SkipsFailedConcepts(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("1. good one\n2. declined one\n3. broken one\n"),
	})
	gen := &stubGenerator{fail: map[string]error{
		"declined one": qgen.ErrSkipped,
		"broken one":   &qgen.ErrMalformed{Reason: "no options"},
	}}
	plan := []subjects.Subject{{Label: "renal, urology", Questions: 3}}
	r, dir, _ := newTestRunner(t, mock, gen, plan)

	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := summary.Results[0]
	if res.Generated != 1 || res.Skipped != 2 {
		t.Errorf("unexpected counts: %+v", res)
	}
	// The deck still lands with the surviving question.
	if _, err := os.Stat(filepath.Join(dir, "renal_urology.pptx")); err != nil {
		t.Errorf("deck not written: %v", err)
	}
	if summary.Failed() {
		t.Error("partial decks are not failures")
	}
}

func TestRun_SubjectIsolation(t *testing.T) {
	// First subject's concept listing fails; second succeeds.
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("rate limited")},
		llm.MockResponse{Content: json.RawMessage("1. p-value\n")},
	)
	plan := []subjects.Subject{
		{Label: "cardiology", Questions: 1},
		{Label: "biostatistics", Questions: 1},
	}
	r, dir, repo := newTestRunner(t, mock, &stubGenerator{}, plan)

	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(summary.Results))
	}
	if summary.Results[0].Err == nil {
		t.Error("expected first subject to fail")
	}
	if summary.Results[1].Err != nil {
		t.Errorf("second subject should still run: %v", summary.Results[1].Err)
	}
	if _, err := os.Stat(filepath.Join(dir, "biostatistics.pptx")); err != nil {
		t.Errorf("second deck not written: %v", err)
	}
	if !summary.Failed() {
		t.Error("a failed subject should mark the run failed")
	}

	// Both outcomes are recorded, including the failure.
	if len(repo.builds) != 2 {
		t.Fatalf("expected 2 recorded builds, got %d", len(repo.builds))
	}
	if !strings.Contains(repo.builds[0].Error, "rate limited") {
		t.Errorf("expected recorded error, got %+v", repo.builds[0])
	}
}

func TestRun_AllGenerationsFailIsFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("1. only concept\n"),
	})
	gen := &stubGenerator{fail: map[string]error{"only concept": qgen.ErrSkipped}}
	plan := []subjects.Subject{{Label: "endocrine", Questions: 1}}
	r, _, _ := newTestRunner(t, mock, gen, plan)

	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.Failed() {
		t.Error("a deck with zero questions should mark the run failed")
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := llm.NewMockProvider()
	plan := []subjects.Subject{{Label: "cardiology", Questions: 1}}
	r, _, _ := newTestRunner(t, mock, &stubGenerator{}, plan)

	summary, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(summary.Results) != 0 {
		t.Errorf("expected no results, got %d", len(summary.Results))
	}
}
