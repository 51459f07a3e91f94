package untrash

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/pathutil"
	"github.com/Paintersrp/sidenotes/internal/state"
	cmdpkg "github.com/Paintersrp/sidenotes/pkg/cmd"
)

func NewCmdUntrash(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "untrash [path]",
		Short: "Restore a note or folder from the trash.",
		Long: heredoc.Doc(`
			This command moves an item out of the '.trash' folder back to where
			it was trashed from. Paths are taken relative to the trash folder.
			When the original location is taken a numeric suffix is added.

			Example:
			  sidenotes untrash Work/notes.md
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("path argument is required")
			}
			path, err := cmdpkg.ResolveNotePath(cmd, s, args[0])
			if err != nil {
				return err
			}
			ext := s.Store.NoteExt()
			if _, statErr := os.Stat(path); statErr != nil && !pathutil.HasExt(path, ext) {
				if _, err := os.Stat(path + ext); err == nil {
					path += ext
				}
			}

			restored, err := s.Handler.Untrash(path)
			if err != nil {
				return err
			}
			rel, relErr := pathutil.RootRelative(s.Root, restored.Path())
			if relErr != nil {
				rel = restored.Path()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", rel)
			return nil
		},
	}

	return cmd
}
