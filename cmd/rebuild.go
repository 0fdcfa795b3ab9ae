package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Regenerate the CSV snapshot from the coding log",
		Long: `Rebuilds the tabular CSV snapshot from the append-only JSONL log. The
log is the source of truth; the snapshot is derived and safe to delete.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := appInstance.Store().RebuildSnapshot(); err != nil {
				return fmt.Errorf("rebuild snapshot: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Snapshot rebuilt.")
			return nil
		},
	}
}
