package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reclaim/internal/levels"
	"github.com/vovakirdan/reclaim/internal/storage"
)

// SessionModel manages an interactive SSH session: picker -> viewer -> picker.
type SessionModel struct {
	levels   []levels.Level
	width    int
	height   int
	username string
	save     func(storage.Run)
	picker   PickerModel
	viewer   *ViewerModel
	quitting bool
}

// NewSessionModel creates a new session model. save, if non-nil, records
// every level the user opens.
func NewSessionModel(lv []levels.Level, width, height int, username string, save func(storage.Run)) SessionModel {
	return SessionModel{
		levels:   lv,
		width:    width,
		height:   height,
		username: username,
		save:     save,
		picker:   NewPickerModel(lv, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.viewer != nil {
		return m.updateViewer(msg)
	}
	return m.updatePicker(msg)
}

// updatePicker handles updates while choosing a level.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if picker, ok := newPicker.(PickerModel); ok {
		m.picker = picker
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.picker.Selected(); selected != nil {
		start := time.Now()
		a := selected.Analyze()
		if m.save != nil {
			m.save(storage.NewRun(sessionSource(m.username), selected.Grid, a, time.Since(start)))
		}

		viewer := NewViewerModel(selected.Name, selected.Grid, a, m.width, m.height)
		m.viewer = &viewer
		return m, m.viewer.Init()
	}

	return m, cmd
}

// updateViewer handles updates while a level is open.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newViewer, cmd := m.viewer.Update(msg)
	if viewer, ok := newViewer.(ViewerModel); ok {
		m.viewer = &viewer
	}

	if m.viewer.IsGoingBack() {
		m.viewer = nil
		picker := NewPickerModel(m.levels, m.width, m.height)
		picker.cursor = m.picker.cursor
		m.picker = picker
		return m, m.picker.Init()
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.viewer != nil {
		return m.viewer.View()
	}
	return m.picker.View()
}

// InViewer reports whether a level is open.
func (m SessionModel) InViewer() bool {
	return m.viewer != nil
}
