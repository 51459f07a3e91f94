package show

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/sidenotes/internal/fserr"
	"github.com/Paintersrp/sidenotes/internal/fzf"
	"github.com/Paintersrp/sidenotes/internal/state"
	cmdpkg "github.com/Paintersrp/sidenotes/pkg/cmd"
)

func NewCmdShow(s *state.State) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Render a note in the terminal.",
		Long: heredoc.Doc(`
			This command renders a note as styled markdown. When the output is
			not a terminal, or with --raw, the note is printed unchanged.

			Example:
			  sidenotes show Work/notes.md
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := cmdpkg.ResolveEntry(cmd, s, args[0])
			if err != nil {
				return err
			}
			if !e.IsNote() {
				return fmt.Errorf("%s is a folder", args[0])
			}

			content, err := os.ReadFile(e.Path())
			if err != nil {
				return fserr.Classify("read", e.Path(), err)
			}

			out := cmd.OutOrStdout()
			width, isTTY := terminalWidth(out)
			if raw || !isTTY {
				_, err := out.Write(content)
				return err
			}

			rendered, err := fzf.RenderMarkdown(string(content), width, termenv.NewOutput(out).ColorProfile())
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", e.Name(), err)
			}
			_, err = io.WriteString(out, rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the note without rendering")

	return cmd
}

func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, true
	}
	return width, true
}
