package reveal

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/fzf"
	revealpkg "github.com/Paintersrp/sidenotes/internal/reveal"
	"github.com/Paintersrp/sidenotes/internal/state"
	cmdpkg "github.com/Paintersrp/sidenotes/pkg/cmd"
)

// pickNote is replaced in tests.
var pickNote = func(ctx context.Context, s *state.State, query string) (entry.Entry, error) {
	notes, err := s.Search.Notes(ctx)
	if err != nil {
		return entry.Entry{}, err
	}
	return fzf.NewFuzzyFinder(s.Root, "Reveal note", notes).Run(query)
}

func NewCmdReveal(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal [path]",
		Short: "Expand the folders leading to a note and select it.",
		Long: heredoc.Doc(`
			This command walks from the notes root down to the given note or
			folder, printing each expand request followed by the final
			selection. Without a path a fuzzy finder lets you pick a note.

			Example:
			  sidenotes reveal Work/notes.md
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target string
			if len(args) == 1 {
				path, err := cmdpkg.ResolveNotePath(cmd, s, args[0])
				if err != nil {
					return err
				}
				target = path
			} else {
				picked, err := pickNote(cmd.Context(), s, "")
				if err != nil {
					return err
				}
				target = picked.Path()
			}

			printer := revealpkg.NewPrinter(cmd.OutOrStdout(), s.Root)
			if !s.Navigator(printer).Reveal(cmd.Context(), target) {
				return fmt.Errorf("could not reveal %s", target)
			}
			return nil
		},
	}

	return cmd
}
