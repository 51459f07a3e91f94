package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/constants"
	"github.com/Paintersrp/sidenotes/internal/state"
	"github.com/Paintersrp/sidenotes/pkg/cmd/browse"
	"github.com/Paintersrp/sidenotes/pkg/cmd/initialize"
	"github.com/Paintersrp/sidenotes/pkg/cmd/new"
	"github.com/Paintersrp/sidenotes/pkg/cmd/rename"
	"github.com/Paintersrp/sidenotes/pkg/cmd/reveal"
	"github.com/Paintersrp/sidenotes/pkg/cmd/search"
	"github.com/Paintersrp/sidenotes/pkg/cmd/show"
	"github.com/Paintersrp/sidenotes/pkg/cmd/trash"
	"github.com/Paintersrp/sidenotes/pkg/cmd/tree"
	"github.com/Paintersrp/sidenotes/pkg/cmd/untrash"
	"github.com/Paintersrp/sidenotes/pkg/cmd/watch"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     constants.AppName,
		Version: constants.Version,
		Short:   "Browse and search a folder of markdown notes.",
		Long: heredoc.Doc(`
			A sidebar for a folder of notes. The tree follows changes on disk,
			search looks at note names first and contents second, and any note
			can be revealed in the tree by path.

			Run without a command to open the interactive sidebar.

			  sidenotes search "meeting agenda"
			  sidenotes reveal Work/notes.md
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          browse.NewCmdBrowse(s).RunE,
	}

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		browse.NewCmdBrowse(s),
		tree.NewCmdTree(s),
		search.NewCmdSearch(s),
		reveal.NewCmdReveal(s),
		show.NewCmdShow(s),
		new.NewCmdNew(s),
		rename.NewCmdRename(s),
		trash.NewCmdTrash(s),
		untrash.NewCmdUntrash(s),
		watch.NewCmdWatch(s),
	)

	return cmd, nil
}
