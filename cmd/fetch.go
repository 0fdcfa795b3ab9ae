// Package cmd defines and implements the CLI commands for the poemcoder
// executable.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch and parse a single poem page",
		Long: `Fetches one poem page through the disk cache, extracts its metadata
and text, and prints both. Pass --no-cache to force a network fetch.`,
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}

			url := args[0]
			raw, err := appInstance.Fetcher().Fetch(cmd.Context(), url, !noCache)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", url, err)
			}

			meta, parsed := appInstance.Parser().Parse(raw, url)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:     %s\n", meta.Title)
			fmt.Fprintf(out, "Author:    %s\n", meta.Author)
			if meta.PoemUUID != "" {
				fmt.Fprintf(out, "UUID:      %s\n", meta.PoemUUID)
			}
			if len(meta.Themes) > 0 {
				fmt.Fprintf(out, "Themes:    %s\n", strings.Join(meta.Themes, ", "))
			}
			if meta.DatePublished != "" {
				fmt.Fprintf(out, "Published: %s\n", meta.DatePublished)
			}
			if meta.PublicDomain {
				fmt.Fprintln(out, "License:   public domain")
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, parsed.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the disk cache and refetch")
	return cmd
}
