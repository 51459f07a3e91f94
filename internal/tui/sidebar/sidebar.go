package sidebar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/fserr"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
	"github.com/Paintersrp/sidenotes/internal/reveal"
	"github.com/Paintersrp/sidenotes/internal/search"
	"github.com/Paintersrp/sidenotes/internal/state"
	"github.com/Paintersrp/sidenotes/internal/tree"
)

type treeChangedMsg struct {
	change tree.Change
}

type selectionChangedMsg struct {
	entry entry.Entry
}

type searchResultsMsg struct {
	results search.Results
}

type row struct {
	entry    entry.Entry
	depth    int
	expanded bool
}

// Model is the notes sidebar. It renders the tree lazily, one expanded
// folder at a time, and acts as the view the reveal navigator drives.
type Model struct {
	state   *state.State
	nav     *reveal.Navigator
	session *search.Session
	keys    keyMap
	help    help.Model

	events      chan tea.Msg
	done        chan struct{}
	closeOnce   sync.Once
	treeDirty   atomic.Bool
	unsubscribe []func()

	expanded map[string]bool
	rows     []row
	cursor   int
	offset   int
	err      error
	status   string

	searching    bool
	input        textinput.Model
	results      []search.Result
	resultCursor int

	width  int
	height int
}

func New(s *state.State) *Model {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = "name or content"
	input.CharLimit = 128

	m := &Model{
		state:    s,
		keys:     newKeyMap(),
		help:     help.New(),
		events:   make(chan tea.Msg, 64),
		done:     make(chan struct{}),
		expanded: make(map[string]bool),
		input:    input,
	}

	m.nav = s.Navigator(m)
	m.session = s.NewSession(func(r search.Results) {
		m.post(searchResultsMsg{results: r})
	})
	m.unsubscribe = append(m.unsubscribe,
		s.Store.OnTreeChanged(func(c tree.Change) {
			// When the queue is full the flag stays set and waitForEvent
			// delivers the change once the queue drains.
			if m.treeDirty.CompareAndSwap(false, true) {
				m.offer(treeChangedMsg{change: c})
			}
		}),
		s.Store.OnSelectionChanged(func(e entry.Entry) {
			m.offer(selectionChangedMsg{entry: e})
		}),
	)

	m.rebuild()
	return m
}

// post blocks until the message is queued or the model is closed. It is
// used from goroutines other than the one running Update.
func (m *Model) post(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.done:
	}
}

// offer queues msg without blocking. Store listeners may run on the Update
// goroutine itself.
func (m *Model) offer(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.done:
			return nil
		default:
		}

		if m.treeDirty.Load() {
			return treeChangedMsg{}
		}

		select {
		case msg := <-m.events:
			return msg
		case <-m.done:
			return nil
		}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.state.TreeStatusCmd())
}

// Close stops the search session and detaches from the store.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.session.Close()
		for _, unsubscribe := range m.unsubscribe {
			unsubscribe()
		}
		close(m.done)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.width = msg.Width - h
		m.height = msg.Height - v
		m.help.Width = m.width
		return m, nil

	case treeChangedMsg:
		m.treeDirty.Store(false)
		m.rebuild()
		return m, tea.Batch(m.waitForEvent(), m.state.TreeStatusCmd())

	case selectionChangedMsg:
		if i, ok := m.indexOf(msg.entry); ok {
			m.cursor = i
		}
		return m, m.waitForEvent()

	case searchResultsMsg:
		if m.searching && msg.results.Query == strings.TrimSpace(m.input.Value()) {
			m.results = msg.results.Items
			m.resultCursor = 0
			m.err = msg.results.Err
		}
		return m, m.waitForEvent()

	case state.TreeStatusMsg:
		m.status = msg.Line
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateTree(msg)
	}

	return m, nil
}

func (m *Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.open):
		current, ok := m.current()
		if !ok {
			break
		}
		if current.entry.IsFolder() {
			m.expanded[current.entry.Path()] = !current.expanded
			m.rebuild()
		}
		m.state.Store.SetSelected(current.entry)

	case key.Matches(msg, m.keys.collapse):
		m.collapse()

	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.results = nil
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.refresh):
		m.state.Store.Refresh()

	case key.Matches(msg, m.keys.toggleHidden):
		m.state.Store.SetShowHidden(!m.state.Store.ShowHidden())
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.exitSearch):
		m.exitSearch()
		return m, nil

	case key.Matches(msg, m.keys.submit):
		if len(m.results) == 0 {
			return m, nil
		}
		target := m.results[m.resultCursor]
		m.exitSearch()
		if !m.nav.Reveal(context.Background(), target.Path) {
			m.err = fmt.Errorf("could not reveal %s", target.Rel)
		}
		return m, nil

	case key.Matches(msg, m.keys.nextResult):
		if m.resultCursor < len(m.results)-1 {
			m.resultCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.prevResult):
		if m.resultCursor > 0 {
			m.resultCursor--
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		term := strings.TrimSpace(after)
		if term == "" {
			m.results = nil
		}
		m.session.Type(term)
	}
	return m, cmd
}

func (m *Model) exitSearch() {
	m.searching = false
	m.input.Blur()
	m.results = nil
	m.resultCursor = 0
}

// Reveal applies one navigator request: folders are expanded, and the target
// row becomes the cursor when selection or focus is requested.
func (m *Model) Reveal(_ context.Context, e entry.Entry, opts reveal.Options) error {
	if opts.Expand && e.IsFolder() {
		m.expanded[e.Path()] = true
	}
	m.rebuild()

	if !opts.Select && !opts.Focus {
		return nil
	}

	i, ok := m.indexOf(e)
	if !ok {
		return fmt.Errorf("%s is not visible", e.Name())
	}
	m.cursor = i
	m.scrollToCursor()
	return nil
}

func (m *Model) rebuild() {
	var current entry.Entry
	if r, ok := m.current(); ok {
		current = r.entry
	}

	rows, err := m.walk(entry.Entry{}, 0)
	var notFound *fserr.NotFoundError
	if errors.As(err, &notFound) && notFound.Path != m.state.Root {
		// An expanded folder vanished between listings; list again without it.
		delete(m.expanded, notFound.Path)
		rows, err = m.walk(entry.Entry{}, 0)
	}
	m.rows = rows
	m.err = err

	visible := lo.Map(m.rows, func(r row, _ int) string { return r.entry.Path() })
	for path := range m.expanded {
		if !lo.Contains(visible, path) {
			delete(m.expanded, path)
		}
	}

	if i, ok := m.indexOf(current); ok {
		m.cursor = i
	}
	m.clampCursor()
}

func (m *Model) walk(parent entry.Entry, depth int) ([]row, error) {
	children, err := m.state.Store.Children(parent)
	if err != nil {
		return nil, err
	}

	var rows []row
	for _, child := range children {
		r := row{entry: child, depth: depth, expanded: child.IsFolder() && m.expanded[child.Path()]}
		rows = append(rows, r)
		if !r.expanded {
			continue
		}
		nested, err := m.walk(child, depth+1)
		if err != nil {
			return rows, err
		}
		rows = append(rows, nested...)
	}
	return rows, nil
}

func (m *Model) collapse() {
	current, ok := m.current()
	if !ok {
		return
	}
	if current.entry.IsFolder() && current.expanded {
		m.expanded[current.entry.Path()] = false
		m.rebuild()
		return
	}
	if parent, ok := m.state.Store.Parent(current.entry); ok {
		if i, ok := m.indexOf(parent); ok {
			m.cursor = i
			m.scrollToCursor()
		}
	}
}

func (m *Model) current() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) indexOf(e entry.Entry) (int, bool) {
	if e.IsZero() {
		return 0, false
	}
	for i, r := range m.rows {
		if r.entry.Equal(e) {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

func (m *Model) visibleRows() int {
	// title, status and help lines
	rows := m.height - 4
	if rows < 1 {
		return len(m.rows)
	}
	return rows
}

func (m *Model) scrollToCursor() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder

	title := "Notes"
	if m.state.Store.ShowHidden() {
		title += " (hidden shown)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.viewSearch())
	} else {
		b.WriteString(m.viewTree())
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	if m.searching {
		b.WriteString(m.help.View(searchHelp{keys: m.keys}))
	} else {
		b.WriteString(m.help.View(treeHelp{keys: m.keys}))
	}

	return appStyle.Render(b.String())
}

func (m *Model) viewTree() string {
	if len(m.rows) == 0 {
		return hintStyle.Render("No notes yet") + "\n"
	}

	selected, hasSelection := m.state.Store.Selected()
	end := m.offset + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		line := strings.Repeat("  ", r.depth) + label(r)

		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case hasSelection && r.entry.Equal(selected):
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func label(r row) string {
	if r.entry.IsFolder() {
		marker := "▸ "
		if r.expanded {
			marker = "▾ "
		}
		return folderStyle.Render(marker + r.entry.Name())
	}
	return noteStyle.Render("  " + r.entry.Name())
}

func (m *Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	for i, result := range m.results {
		line := result.Name
		if dir := parentRel(result.Rel); dir != "" {
			line += "  " + hintStyle.Render(dir)
		}
		if result.MatchedOnContent {
			line += "  " + hintStyle.Render(result.Hint)
		}
		if i == m.resultCursor {
			line = cursorStyle.Render(result.Name) + strings.TrimPrefix(line, result.Name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.results) > 0 {
		if snippet := m.results[m.resultCursor].Snippet; snippet != "" {
			b.WriteString(lipgloss.NewStyle().Width(max(m.width, 20)).Render(hintStyle.Render(snippet)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func parentRel(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return ""
	}
	return pathutil.NormalizePath(rel[:i])
}
