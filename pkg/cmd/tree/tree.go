package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/state"
	cmdpkg "github.com/Paintersrp/sidenotes/pkg/cmd"
	"github.com/Paintersrp/sidenotes/pkg/flags"
)

var folderStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#89b4fa")).
	Bold(true)

func NewCmdTree(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print the notes tree.",
		Long: heredoc.Doc(`
			This command prints the folders and notes below the notes root, or
			below the given folder. Folders are listed before notes.

			Example:
			  sidenotes tree Work --depth 2
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, err := flags.HandleDepth(cmd)
			if err != nil {
				return err
			}
			if depth == 0 {
				return fmt.Errorf("depth must be -1 or at least 1")
			}

			hidden, err := flags.HandleHidden(cmd, s.Store.ShowHidden())
			if err != nil {
				return err
			}
			s.Store.SetShowHidden(hidden)

			start := entry.Entry{}
			if len(args) == 1 {
				start, err = cmdpkg.ResolveEntry(cmd, s, args[0])
				if err != nil {
					return err
				}
				if !start.IsFolder() {
					return fmt.Errorf("%s is not a folder", args[0])
				}
			}

			return printTree(cmd.OutOrStdout(), s, start, 0, depth)
		},
	}

	flags.AddDepth(cmd)
	flags.AddHidden(cmd)

	return cmd
}

func printTree(w io.Writer, s *state.State, parent entry.Entry, level, depth int) error {
	if depth > 0 && level >= depth {
		return nil
	}

	children, err := s.Store.Children(parent)
	if err != nil {
		return err
	}

	indent := strings.Repeat("  ", level)
	for _, child := range children {
		if child.IsNote() {
			fmt.Fprintf(w, "%s%s\n", indent, child.Name())
			continue
		}

		fmt.Fprintf(w, "%s%s\n", indent, folderStyle.Render(child.Name()+"/"))
		if err := printTree(w, s, child, level+1, depth); err != nil {
			return err
		}
	}
	return nil
}
