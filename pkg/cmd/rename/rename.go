package rename

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/handler"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
	"github.com/Paintersrp/sidenotes/internal/state"
	cmdpkg "github.com/Paintersrp/sidenotes/pkg/cmd"
)

func NewCmdRename(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rename [path] [name]",
		Aliases: []string{"mv"},
		Short:   "Rename a note or a folder in place.",
		Long: heredoc.Doc(`
			This command renames a note or folder without moving it. For notes
			the extension is kept, so give the new display name only. An item
			that already has the new name is never overwritten. Without a new
			name you are prompted for one.

			Example:
			  sidenotes rename Work/notes.md minutes
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := cmdpkg.ResolveEntry(cmd, s, args[0])
			if err != nil {
				return err
			}

			var name string
			if len(args) == 2 {
				name = args[1]
			} else {
				name, err = cmdpkg.PromptText(
					fmt.Sprintf("Rename %s to:", e.Name()),
					e.Name(),
					func(v string) error { return handler.ValidateName("new name", v, e.IsFolder()) },
				)
				if err != nil {
					return err
				}
			}

			renamed, err := s.Handler.Rename(e, name)
			if err != nil {
				return err
			}
			if renamed.Equal(e) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already has that name\n", e.Name())
				return nil
			}

			rel, relErr := pathutil.RootRelative(s.Root, renamed.Path())
			if relErr != nil {
				rel = renamed.Path()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %s\n", rel)
			return nil
		},
	}

	return cmd
}
