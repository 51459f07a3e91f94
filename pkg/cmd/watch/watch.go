package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/config"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
	"github.com/Paintersrp/sidenotes/internal/state"
	"github.com/Paintersrp/sidenotes/internal/tree"
)

func NewCmdWatch(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow changes below the notes root.",
		Long: heredoc.Doc(`
			This command watches the notes root and prints a line each time the
			tree is refreshed. Bursts of changes are collapsed into a single
			refresh. Editing the config file applies the new settings; a new
			notes root restarts the watch. Stop with Ctrl+C.

			Example:
			  sidenotes watch
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := &lockedWriter{w: cmd.OutOrStdout()}
			reloader := state.NewReloader(s)
			current := s

			for {
				next, err := watchRoot(ctx, out, current, reloader.Reloads())
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
		},
	}

	return cmd
}

// watchRoot runs the watcher of s until ctx ends or a config change needs a
// new state, in which case the new config is returned.
func watchRoot(ctx context.Context, out io.Writer, s *state.State, reloads <-chan *config.Config) (*config.Config, error) {
	watcher, err := s.StartWatcher()
	if err != nil {
		return nil, err
	}

	log := s.Logger.WithField("component", "watch")
	watcher.OnChange(func(rel string) {
		log.WithField("path", rel).Debug("change detected")
	})
	watcher.OnClose(func() {
		fmt.Fprintf(out, "Stopped watching %s\n", s.Root)
	})
	unsubscribe := s.Store.OnTreeChanged(func(c tree.Change) {
		fmt.Fprintf(out, "%s refreshed %s\n", time.Now().Format("15:04:05"), describe(s.Root, c))
	})
	defer unsubscribe()

	fmt.Fprintf(out, "Watching %s\n", s.Root)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- watcher.Run(runCtx) }()

	select {
	case <-ctx.Done():
		<-errc
		return nil, nil
	case err := <-errc:
		if err != nil && !errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, nil
	case next := <-reloads:
		cancel()
		<-errc
		fmt.Fprintf(out, "Config changed, switching to %s\n", next.RootFolder)
		return next, nil
	}
}

func describe(root string, c tree.Change) string {
	if c.Full() {
		return "tree"
	}
	rel, err := pathutil.RootRelative(root, c.Scope.Path())
	if err != nil {
		return c.Scope.Path()
	}
	return rel
}

// lockedWriter serializes writes from the tree listener and the command.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
