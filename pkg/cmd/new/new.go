package new

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/handler"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
	"github.com/Paintersrp/sidenotes/internal/state"
	cmdpkg "github.com/Paintersrp/sidenotes/pkg/cmd"
)

func NewCmdNew(s *state.State) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:     "new [note|folder] [name]",
		Aliases: []string{"n"},
		Short:   "Create a note or a folder.",
		Long: heredoc.Doc(`
			This command creates an empty note or a folder. New items go into
			the folder given with --in, or the notes root. The note extension
			is added when the name does not already carry it. Without a name
			you are prompted for one.

			Examples:
			  sidenotes new note groceries
			  sidenotes new folder Recipes --in Home
		`),
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"note", "folder"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if kind != "note" && kind != "folder" {
				_ = cmd.Help()
				return fmt.Errorf("unknown item kind %q, expected note or folder", kind)
			}
			folder := kind == "folder"

			if in != "" {
				target, err := cmdpkg.ResolveEntry(cmd, s, in)
				if err != nil {
					return err
				}
				if !target.IsFolder() {
					return fmt.Errorf("%s is not a folder", in)
				}
				s.Store.SetSelected(target)
			} else {
				s.Store.ClearSelection()
			}

			var name string
			if len(args) == 2 {
				name = args[1]
			} else {
				prompted, err := cmdpkg.PromptText(
					fmt.Sprintf("New %s name:", kind),
					"",
					func(v string) error { return handler.ValidateName(kind+" name", v, folder) },
				)
				if err != nil {
					return err
				}
				name = prompted
			}

			var (
				created entry.Entry
				err     error
			)
			if folder {
				created, err = s.Handler.CreateFolder(name)
			} else {
				created, err = s.Handler.CreateNote(name)
			}
			if err != nil {
				return err
			}

			rel, relErr := pathutil.RootRelative(s.Root, created.Path())
			if relErr != nil {
				rel = created.Path()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", kind, rel)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Folder to create the item in, relative to the notes root")

	return cmd
}
