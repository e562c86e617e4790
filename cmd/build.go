package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raunakm/stepdeck/internal/concepts"
	"github.com/raunakm/stepdeck/internal/config"
	"github.com/raunakm/stepdeck/internal/llm"
	"github.com/raunakm/stepdeck/internal/qgen"
	"github.com/raunakm/stepdeck/internal/retrieval"
	"github.com/raunakm/stepdeck/internal/run"
	"github.com/raunakm/stepdeck/internal/store"
	"github.com/raunakm/stepdeck/internal/subjects"
)

var buildCmd = &cobra.Command{
	Use:   "build [subject]",
	Short: "Generate question decks for the subject plan",
	Long: `Generate one .pptx deck per subject: list high-yield concepts, write
one board-style question per concept, and render two slides per question
(question, then answer with explanations).

With no argument the whole plan is built. A subject argument restricts
the run to one plan entry, matched against the full label or any
comma-separated part of it (e.g. "urology").`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "Output directory for deck files (overrides config)")
	buildCmd.Flags().String("plan", "", "YAML subject plan file (overrides config)")
	buildCmd.Flags().IntP("count", "n", 0, "Override the question count (single-subject runs only)")
	buildCmd.Flags().Bool("dry-run", false, "List the concepts each deck would cover without generating questions")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	plan, err := resolvePlan(cmd, cfg)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		subj, ok := subjects.Find(plan, args[0])
		if !ok {
			return fmt.Errorf("no plan entry matches subject %q", args[0])
		}
		if n, _ := cmd.Flags().GetInt("count"); n > 0 {
			subj.Questions = n
		}
		plan = []subjects.Subject{subj}
	} else if n, _ := cmd.Flags().GetInt("count"); n > 0 {
		return fmt.Errorf("--count requires a subject argument")
	}

	outputDir := cfg.OutputDir
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		outputDir = o
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()

	tc, err := newToolchain(ctx, cfg, s)
	if err != nil {
		return err
	}
	defer tc.close()

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		return dryRun(ctx, cmd, tc.lister, plan)
	}

	runner := run.New(run.Options{
		Plan:      plan,
		OutputDir: outputDir,
		Lister:    tc.lister,
		Generator: tc.generator,
		DeckRepo:  s.DeckRepo(),
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
	})

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	if summary.Failed() {
		return fmt.Errorf("run %s finished with failures", summary.RunID)
	}
	return nil
}

// dryRun lists the concepts each subject would cover without touching
// the question generator or writing a deck.
func dryRun(ctx context.Context, cmd *cobra.Command, lister *concepts.Lister, plan []subjects.Subject) error {
	for _, subj := range plan {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d questions):\n", subj.Label, subj.Questions)
		listed, err := lister.List(ctx, subj.Label, subj.Questions)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", err)
			continue
		}
		for i, c := range listed.Concepts {
			fmt.Fprintf(cmd.OutOrStdout(), "  %2d. %s\n", i+1, c)
		}
		if short := listed.Shortfall(); short > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "  warning: %d concepts short of the %d requested\n", short, subj.Questions)
		}
	}
	return nil
}

// toolchain bundles the LLM-facing collaborators a generation command needs.
type toolchain struct {
	lister    *concepts.Lister
	generator qgen.Generator
	corpus    *retrieval.Corpus
}

func (t *toolchain) close() {
	if t.corpus != nil {
		t.corpus.Close()
	}
}

// newToolchain builds both role providers, the concept lister and the
// question generator from configuration. A nil store disables event
// logging.
func newToolchain(ctx context.Context, cfg *config.Config, s *store.Store) (*toolchain, error) {
	var eventRepo store.EventRepo
	if s != nil {
		eventRepo = s.EventRepo()
	}

	providers, err := llm.NewProviders(ctx, cfg.LLM(), eventRepo)
	if err != nil {
		return nil, err
	}

	tc := &toolchain{
		lister: concepts.NewLister(providers.Concepts, concepts.DefaultConfig()),
	}

	var retriever retrieval.Retriever = retrieval.Disabled{}
	if cfg.Retrieval.Enabled {
		corpus, err := retrieval.OpenCorpus(cfg.Retrieval.CorpusPath)
		if err != nil {
			return nil, fmt.Errorf("open corpus: %w", err)
		}
		tc.corpus = corpus
		retriever = corpus
	}

	qcfg := qgen.DefaultConfig()
	qcfg.TopK = cfg.Retrieval.TopK
	tc.generator = qgen.New(providers.Questions, retriever, qcfg)

	return tc, nil
}
