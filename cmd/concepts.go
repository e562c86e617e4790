package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raunakm/stepdeck/internal/subjects"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts <subject>",
	Short: "List high-yield concepts for a subject without building a deck",
	Long: `Ask the concept model for a subject's high-yield concept list and print
it. Useful for judging list quality before spending question-model tokens.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		plan, err := resolvePlan(cmd, cfg)
		if err != nil {
			return err
		}

		// Resolve against the plan so count defaults sensibly; fall back
		// to the literal argument for off-plan subjects.
		label := args[0]
		n := count
		if subj, ok := subjects.Find(plan, args[0]); ok {
			label = subj.Label
			if n <= 0 {
				n = subj.Questions
			}
		}
		if n <= 0 {
			n = 20
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

		result, err := tc.lister.List(ctx, label, n)
		if err != nil {
			return err
		}

		for i, c := range result.Concepts {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, c)
		}
		if short := result.Shortfall(); short > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: model returned %d of %d requested concepts\n",
				len(result.Concepts), result.Requested)
		}
		return nil
	},
}

func init() {
	conceptsCmd.Flags().IntP("count", "n", 0, "Number of concepts to request (default: the plan's question count)")
	conceptsCmd.Flags().String("plan", "", "YAML subject plan file (overrides config)")
}
