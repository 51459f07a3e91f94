package search

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/state"
	"github.com/Paintersrp/sidenotes/pkg/flags"
)

var writeClipboard = clipboard.WriteAll

func NewCmdSearch(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search [term]",
		Aliases: []string{"s", "find"},
		Short:   "Search note names and contents.",
		Long: heredoc.Doc(`
			This command searches every note below the notes root. Notes whose
			name contains the term are listed as soon as they are found; other
			notes are listed when their content contains the term. Matching is
			case-insensitive and stops after the configured result limit.

			Example:
			  sidenotes search agenda --copy
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(strings.Join(args, " "))
			results, err := s.Search.Search(cmd.Context(), term)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No notes match %q\n", term)
				return nil
			}

			for _, r := range results {
				if r.MatchedOnContent {
					fmt.Fprintf(out, "%s  (%s)\n", r.Rel, r.Hint)
					if r.Snippet != "" {
						fmt.Fprintf(out, "    %s\n", r.Snippet)
					}
					continue
				}
				fmt.Fprintln(out, r.Rel)
			}

			copyFirst, err := flags.HandleCopy(cmd)
			if err != nil {
				return err
			}
			if copyFirst {
				if err := writeClipboard(results[0].Path); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				fmt.Fprintf(out, "Copied %s\n", results[0].Path)
			}
			return nil
		},
	}

	flags.AddCopy(cmd)

	return cmd
}
