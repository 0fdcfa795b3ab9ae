package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexfield/poemcoder/internal/catalog"
)

func newResumeCmd() *cobra.Command {
	var coderID string

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Show a coder's resume position in the catalog",
		Long: `Loads the input catalog, counts the poems the coder has completed, and
prints the next poem they would be shown. Records are written in traversal
order, so the completed count is the resume index.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}

			rows, err := catalog.Load(appInstance.Config().Coding.CSV)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			done, err := appInstance.Store().CompletedCountForCoder(coderID)
			if err != nil {
				return fmt.Errorf("count completed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Coder:     %s\n", coderID)
			fmt.Fprintf(out, "Completed: %d of %d\n", done, len(rows))
			if done >= len(rows) {
				fmt.Fprintln(out, "All poems in the catalog are coded.")
				return nil
			}
			next := rows[done]
			fmt.Fprintf(out, "Next:      #%d %q by %s\n", done+1, next.Title, next.Author)
			fmt.Fprintf(out, "URL:       %s\n", next.URL)
			return nil
		},
	}

	cmd.Flags().StringVar(&coderID, "coder", "", "coder identifier")
	_ = cmd.MarkFlagRequired("coder")
	return cmd
}
