package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show coding progress",
		Long:  `Prints overall progress from the coding log: total events, completed codings, and distinct poems coded.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}

			stats, err := appInstance.Store().Stats()
			if err != nil {
				return fmt.Errorf("read stats: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total events:    %d\n", stats.TotalRecords)
			fmt.Fprintf(out, "Completed poems: %d\n", stats.CompletedRecords)
			fmt.Fprintf(out, "Unique poems:    %d\n", stats.UniqueURLs)
			return nil
		},
	}
}
