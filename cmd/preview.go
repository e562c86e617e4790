package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raunakm/stepdeck/internal/qgen"
	"github.com/raunakm/stepdeck/internal/subjects"
	"github.com/raunakm/stepdeck/internal/tui/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview <subject>",
	Short: "Generate a few questions and page through them interactively",
	Long: `Generate questions for a subject and review them in a terminal pager
instead of a deck file. Useful for evaluating question quality before a
full build.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntP("count", "n", 5, "Number of questions to generate")
	previewCmd.Flags().String("plan", "", "YAML subject plan file (overrides config)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	plan, err := resolvePlan(cmd, cfg)
	if err != nil {
		return err
	}

	label := args[0]
	if subj, ok := subjects.Find(plan, args[0]); ok {
		label = subj.Label
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

	result, err := tc.lister.List(ctx, label, count)
	if err != nil {
		return err
	}
	if len(result.Concepts) == 0 {
		return fmt.Errorf("no concepts returned for %q", label)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generating %d questions for %s...\n", len(result.Concepts), label)

	var questions []*qgen.Question
	for i, concept := range result.Concepts {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%d/%d] %s\n", i+1, len(result.Concepts), concept)

		q, err := tc.generator.Generate(ctx, concept)
		if err != nil {
			if errors.Is(err, qgen.ErrSkipped) {
				fmt.Fprintf(cmd.ErrOrStderr(), "  skipped %q: model declined\n", concept)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "  skipped %q: %v\n", concept, err)
			}
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return fmt.Errorf("no usable questions generated for %q", label)
	}

	return preview.Run(label, questions)
}
