package trash

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/pathutil"
	"github.com/Paintersrp/sidenotes/internal/state"
	cmdpkg "github.com/Paintersrp/sidenotes/pkg/cmd"
	"github.com/Paintersrp/sidenotes/pkg/flags"
)

func NewCmdTrash(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash [path]",
		Short: "Move a note or folder to the trash.",
		Long: heredoc.Doc(`
			This command moves a note or folder into the '.trash' folder below
			the notes root, keeping its place in the tree so it can be restored
			with 'sidenotes untrash'.

			Example:
			  sidenotes trash Work/notes.md --yes
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("path argument is required")
			}
			e, err := cmdpkg.ResolveEntry(cmd, s, args[0])
			if err != nil {
				return err
			}

			yes, err := flags.HandleYes(cmd)
			if err != nil {
				return err
			}
			if !yes {
				ok, err := cmdpkg.Confirm(fmt.Sprintf("Move %s to the trash?", e.Name()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			dest, err := s.Handler.Trash(e)
			if err != nil {
				return err
			}
			rel, relErr := pathutil.RootRelative(s.Root, dest)
			if relErr != nil {
				rel = dest
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved to %s\n", rel)
			return nil
		},
	}

	flags.AddYes(cmd)

	return cmd
}
