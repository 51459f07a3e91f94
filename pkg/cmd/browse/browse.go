package browse

import (
	"context"
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/config"
	"github.com/Paintersrp/sidenotes/internal/state"
	"github.com/Paintersrp/sidenotes/internal/tui/sidebar"
)

type program interface {
	Run() (tea.Model, error)
	Quit()
}

var newProgram = func(m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

func NewCmdBrowse(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"b", "ui"},
		Short:   "Browse the notes tree in an interactive sidebar.",
		Long: heredoc.Doc(`
			This command opens the notes tree in the terminal. Folders expand
			and collapse in place, '/' searches note names and contents, and
			changes made on disk show up without restarting. Editing the notes
			root in the config file reopens the sidebar on the new root.

			Example:
			  sidenotes browse
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), s)
		},
	}

	return cmd
}

// Run shows the sidebar for s until the user quits, rebuilding the state
// whenever a config change requires it.
func Run(ctx context.Context, s *state.State) error {
	reloader := state.NewReloader(s)
	current := s

	for {
		next, err := browseRoot(ctx, current, reloader.Reloads())
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}

		current, err = reloader.Rebuild(next)
		if err != nil {
			return err
		}
	}
}

func browseRoot(ctx context.Context, s *state.State, reloads <-chan *config.Config) (*config.Config, error) {
	watcher, err := s.StartWatcher()
	if err != nil {
		return nil, err
	}

	model := sidebar.New(s)
	defer model.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := watcher.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			s.Logger.WithError(err).Warn("root watcher stopped")
		}
	}()

	p := newProgram(model)
	reload := make(chan *config.Config, 1)
	go func() {
		select {
		case next := <-reloads:
			reload <- next
			p.Quit()
		case <-runCtx.Done():
			p.Quit()
		}
	}()

	if _, err := p.Run(); err != nil {
		return nil, err
	}

	select {
	case next := <-reload:
		return next, nil
	default:
		return nil, nil
	}
}
