package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raunakm/stepdeck/internal/retrieval"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the reference passage corpus used for retrieval",
}

var corpusImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Index reference files into the corpus",
	Long: `Index reference material for retrieval-augmented question generation.
".jsonl" files hold one {"title","text"} object per line; anything else
is treated as plain text split into passages on blank lines.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		corpus, err := retrieval.OpenCorpus(corpusPath(cmd, cfg.Retrieval.CorpusPath))
		if err != nil {
			return fmt.Errorf("open corpus: %w", err)
		}
		defer corpus.Close()

		ctx := cmd.Context()

		var total int
		for _, path := range args {
			n, err := corpus.ImportFile(ctx, path)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d passages\n", path, n)
			total += n
		}

		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d passages\n", total)
		return nil
	},
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus size",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		corpus, err := retrieval.OpenCorpus(corpusPath(cmd, cfg.Retrieval.CorpusPath))
		if err != nil {
			return fmt.Errorf("open corpus: %w", err)
		}
		defer corpus.Close()

		n, err := corpus.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d passages indexed\n", n)
		return nil
	},
}

func corpusPath(cmd *cobra.Command, fallback string) string {
	if p, _ := cmd.Flags().GetString("corpus"); p != "" {
		return p
	}
	return fallback
}

func init() {
	corpusCmd.PersistentFlags().String("corpus", "", "Corpus database file (overrides config)")
	corpusCmd.AddCommand(corpusImportCmd)
	corpusCmd.AddCommand(corpusStatsCmd)
}
