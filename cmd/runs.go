package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent deck builds",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		builds, err := s.DeckRepo().ListDeckBuilds(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query deck builds: %w", err)
		}

		if len(builds) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No deck builds recorded yet.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%-19s  %-8s  %-36s  %5s  %5s  %5s  %8s  %s\n",
			"Timestamp", "Run", "Subject", "Want", "Got", "Skip", "Secs", "Output")
		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("─", 110))

		for _, b := range builds {
			subject := b.Subject
			if len(subject) > 36 {
				subject = subject[:36]
			}
			out := b.OutputPath
			if b.Error != "" {
				out = "ERROR: " + b.Error
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-19s  %-8s  %-36s  %5d  %5d  %5d  %8.1f  %s\n",
				b.Timestamp.Local().Format("2006-01-02 15:04:05"),
				shortRunID(b.RunID),
				subject,
				b.Requested,
				b.Generated,
				b.Skipped,
				float64(b.DurationMs)/1000,
				out,
			)
		}
		return nil
	},
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	runsCmd.Flags().IntP("limit", "n", 20, "Number of builds to show")
}
