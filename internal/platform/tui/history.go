package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reclaim/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show source list sidebar
	sidebarWidth       = 24  // Width of source list sidebar
	maxRuns            = 100 // Max runs to load
)

// RecentTab is the pseudo-source listing the newest runs of every source.
const RecentTab = "recent"

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	sources      []string // RecentTab first, then every stored source
	sourceCursor int
	store        *storage.Store
	runs         []storage.Run
	loadErr      error
	table        table.Model
	theme        Theme
	help         help.Model
	keys         HistoryKeyMap
	width        int
	height       int
	quitting     bool
	goingBack    bool
	showSidebar  bool
}

// NewHistoryModel creates a history model. initial selects a source tab;
// an unknown or empty initial opens the recent tab.
func NewHistoryModel(store *storage.Store, width, height int, initial string) HistoryModel {
	sources := []string{RecentTab}
	if store != nil {
		if stored, err := store.Sources(); err == nil {
			sources = append(sources, stored...)
		}
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		sources:     sources,
		store:       store,
		theme:       DefaultTheme(),
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, s := range sources {
		if s == initial {
			m.sourceCursor = i
		}
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// current returns the selected source tab.
func (m HistoryModel) current() string {
	return m.sources[m.sourceCursor]
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Result", Width: 8},
		{Title: "Grid", Width: 11},
		{Title: "Best", Width: 14},
		{Title: "Source", Width: 16},
		{Title: "Date", Width: 12},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give the source column whatever is left over
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[4].Width += min(extra, 24)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.SelectedFg).
		Background(m.theme.SelectedBg).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads runs for the selected tab.
func (m *HistoryModel) loadRuns() {
	m.runs, m.loadErr = nil, nil
	if m.store != nil {
		if m.current() == RecentTab {
			m.runs, m.loadErr = m.store.RecentRuns(maxRuns)
		} else {
			m.runs, m.loadErr = m.store.RunsBySource(m.current(), maxRuns)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		best := "none"
		if r.BestGain > 0 {
			best = fmt.Sprintf("+%d (%d,%d)", r.BestGain, r.BestRow, r.BestCol)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Result),
			fmt.Sprintf("%dx%d", r.Rows, r.Cols),
			best,
			r.Source,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSource), key.Matches(msg, m.keys.Right):
			m.sourceCursor = (m.sourceCursor + 1) % len(m.sources)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevSource), key.Matches(msg, m.keys.Left):
			m.sourceCursor--
			if m.sourceCursor < 0 {
				m.sourceCursor = len(m.sources) - 1
			}
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RUN HISTORY - recent"
	if m.current() != RecentTab {
		title = fmt.Sprintf("RUN HISTORY - %s (best first)", m.current())
	}
	b.WriteString(m.theme.HUDTitle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.HUDControls.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with a sidebar for source selection.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Sources\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.sources {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.sourceCursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		sidebar.WriteString(style.Render(cursor + truncate(s, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders source tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := m.theme.HUDControls
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.SelectedFg).
		Background(m.theme.SelectedBg).
		Padding(0, 1)

	tabs := make([]string, len(m.sources))
	for i, s := range m.sources {
		name := truncate(s, 10)
		if i == m.sourceCursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.current())
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	if m.loadErr != nil {
		return m.theme.EmptyNotice.Render("Could not load runs:\n" + m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		return m.theme.EmptyNotice.Render("No runs recorded yet.\nUse `reclaim solve --save` to record one.")
	}
	return m.table.View()
}

// truncate shortens s to at most n runes, marking the cut with '.'.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// Runs returns the runs shown for the selected tab.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// Source returns the selected source tab.
func (m HistoryModel) Source() string {
	return m.current()
}

// IsGoingBack returns true if user wants to go back.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
func RunHistory(store *storage.Store, width, height int, initial string) error {
	model := NewHistoryModel(store, width, height, initial)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
