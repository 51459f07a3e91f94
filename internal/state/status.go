package state

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TreeStatusMsg carries a refreshed status line for the sidebar footer.
type TreeStatusMsg struct {
	Line string
}

// TreeStatusCmd reads the watcher counters and returns them as a message
// consumers can use to trigger rerenders.
func (s *State) TreeStatusCmd() tea.Cmd {
	if s == nil {
		return nil
	}

	return func() tea.Msg {
		return TreeStatusMsg{Line: s.Watcher.StatusLine()}
	}
}

// StatusLine summarizes how often the tree has been refreshed from disk.
func (w *RootWatcher) StatusLine() string {
	if w == nil {
		return ""
	}
	return formatTreeStatus(w.Stats())
}

func formatTreeStatus(stats CoalescerStats) string {
	parts := []string{fmt.Sprintf("Tree: refreshed %d", stats.Flushes)}
	if stats.Pending > 0 {
		parts = append(parts, fmt.Sprintf("pending %d", stats.Pending))
	}
	if !stats.LastFlush.IsZero() {
		parts = append(parts, fmt.Sprintf("last %s", formatFlushTime(stats.LastFlush)))
	}
	if stats.LastErr != nil {
		parts = append(parts, "last refresh failed")
	}

	return strings.Join(parts, " · ")
}

func formatFlushTime(t time.Time) string {
	return t.Local().Format("15:04")
}
