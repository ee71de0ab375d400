package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reclaim/internal/canvas"
	"github.com/vovakirdan/reclaim/internal/reclaim"
)

// Viewer layout constants
const (
	viewerHUDLines    = 2 // Title and totals
	viewerFooterLines = 2 // Cursor status and help
	defaultWidth      = 80
	defaultHeight     = 24
)

// ViewerModel is the Bubble Tea model for the gain heatmap.
type ViewerModel struct {
	title    string
	grid     *reclaim.Grid
	analysis reclaim.Analysis
	screen   *canvas.Screen
	theme    Theme
	keys     ViewerKeyMap
	help     help.Model

	cursor reclaim.Coord
	offRow int // First visible grid row, 0-based
	offCol int // First visible grid column, 0-based
	heat   bool

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewViewerModel creates a viewer over an analysed grid. The cursor starts
// on the best removal when there is one.
func NewViewerModel(title string, g *reclaim.Grid, a reclaim.Analysis, width, height int) ViewerModel {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	m := ViewerModel{
		title:    title,
		grid:     g,
		analysis: a,
		theme:    DefaultTheme(),
		keys:     DefaultViewerKeyMap(),
		help:     help.New(),
		cursor:   reclaim.At(1, 1),
		heat:     true,
		width:    width,
		height:   height,
	}
	m.help.Width = width
	if a.HasBest {
		m.cursor = a.BestAt
	}
	m.screen = canvas.NewScreen(m.viewWidth(), m.viewHeight())
	m.scrollToCursor()
	return m
}

// WithTheme returns a copy of the viewer using theme.
func (m ViewerModel) WithTheme(theme Theme) ViewerModel {
	m.theme = theme
	return m
}

func (m ViewerModel) viewWidth() int {
	return max(min(m.width, m.grid.Cols()), 1)
}

func (m ViewerModel) viewHeight() int {
	avail := m.height - viewerHUDLines - viewerFooterLines
	return max(min(avail, m.grid.Rows()), 1)
}

// scrollToCursor moves the viewport the minimum amount that keeps the
// cursor visible.
func (m *ViewerModel) scrollToCursor() {
	vw, vh := m.viewWidth(), m.viewHeight()
	r, c := m.cursor.Row-1, m.cursor.Col-1

	if r < m.offRow {
		m.offRow = r
	}
	if r >= m.offRow+vh {
		m.offRow = r - vh + 1
	}
	if c < m.offCol {
		m.offCol = c
	}
	if c >= m.offCol+vw {
		m.offCol = c - vw + 1
	}
	m.offRow = canvas.Clamp(m.offRow, 0, max(m.grid.Rows()-vh, 0))
	m.offCol = canvas.Clamp(m.offCol, 0, max(m.grid.Cols()-vw, 0))
}

// move shifts the cursor one step, staying inside the grid.
func (m *ViewerModel) move(d reclaim.Dir) {
	next := m.cursor.Step(d)
	if m.grid.InBounds(next) {
		m.cursor = next
		m.scrollToCursor()
	}
}

// Init initializes the viewer model.
func (m ViewerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the viewer.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			m.move(reclaim.DirUp)
		case key.Matches(msg, m.keys.Down):
			m.move(reclaim.DirDown)
		case key.Matches(msg, m.keys.Left):
			m.move(reclaim.DirLeft)
		case key.Matches(msg, m.keys.Right):
			m.move(reclaim.DirRight)

		case key.Matches(msg, m.keys.Best):
			if m.analysis.HasBest {
				m.cursor = m.analysis.BestAt
				m.scrollToCursor()
			}

		case key.Matches(msg, m.keys.Toggle):
			m.heat = !m.heat

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(m.viewWidth(), m.viewHeight())
		m.scrollToCursor()
		return m, nil
	}

	return m, nil
}

// cellGlyph picks the rune and color for one grid cell.
func (m ViewerModel) cellGlyph(at reclaim.Coord) (rune, canvas.Color) {
	cell := m.grid.Get(at)
	if !m.heat {
		return rune(cell.Char()), canvas.ColorDefault
	}

	if cell == reclaim.Debris {
		if v := m.analysis.GainAt(at); v > 0 {
			return reclaim.GainRune(v), canvas.Heat(v, m.analysis.Best)
		}
		return '#', canvas.ColorGray
	}
	if m.grid.DebrisNeighbors(at) == 0 {
		return '.', canvas.ColorGreen
	}
	return '.', canvas.ColorGray
}

// drawGrid paints the visible window of the grid into the screen buffer.
func (m ViewerModel) drawGrid() {
	m.screen.Clear()
	for y := 0; y < m.screen.Height(); y++ {
		for x := 0; x < m.screen.Width(); x++ {
			at := reclaim.At(m.offRow+y+1, m.offCol+x+1)
			if !m.grid.InBounds(at) {
				continue
			}
			r, c := m.cellGlyph(at)
			m.screen.SetColored(x, y, r, c)
		}
	}
}

// View renders the viewer.
func (m ViewerModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	sep := m.theme.HUDSeparator.Render("  │  ")

	b.WriteString(m.theme.HUDTitle.Render(fmt.Sprintf("RECLAIM  %s", m.title)))
	b.WriteString(m.theme.HUDControls.Render(fmt.Sprintf("  %dx%d", m.grid.Rows(), m.grid.Cols())))
	b.WriteString("\n")

	best := "none"
	if m.analysis.HasBest {
		best = fmt.Sprintf("+%d at %s", m.analysis.Best, m.analysis.BestAt)
	}
	b.WriteString(m.theme.HUDValue.Render(fmt.Sprintf("baseline %d", m.analysis.Baseline)))
	b.WriteString(sep)
	b.WriteString(m.theme.HUDValue.Render("best " + best))
	b.WriteString(sep)
	b.WriteString(m.theme.HUDTitle.Render(fmt.Sprintf("result %d", m.analysis.Result())))
	b.WriteString("\n")

	m.drawGrid()
	b.WriteString(RenderScreen(m.screen, m.cursor.Col-1-m.offCol, m.cursor.Row-1-m.offRow, m.theme.Cursor))
	b.WriteString("\n")

	b.WriteString(m.theme.HUDValue.Render(m.CursorStatus()))
	b.WriteString("\n")
	b.WriteString(m.theme.HUDControls.Render(m.help.View(m.keys)))

	return b.String()
}

// CursorStatus describes the cell under the cursor.
func (m ViewerModel) CursorStatus() string {
	at := m.cursor
	switch m.grid.Get(at) {
	case reclaim.Debris:
		if v := m.analysis.GainAt(at); v > 0 {
			return fmt.Sprintf("%s debris, removing it reclaims %d more", at, v)
		}
		return fmt.Sprintf("%s debris, removing it gains nothing", at)
	default:
		if m.grid.DebrisNeighbors(at) == 0 {
			return fmt.Sprintf("%s wasteland, reclaimable now", at)
		}
		return fmt.Sprintf("%s wasteland, %d debris neighbor(s)", at, m.grid.DebrisNeighbors(at))
	}
}

// Cursor returns the cell under the cursor.
func (m ViewerModel) Cursor() reclaim.Coord {
	return m.cursor
}

// Offset returns the 0-based row and column of the top-left visible cell.
func (m ViewerModel) Offset() (row, col int) {
	return m.offRow, m.offCol
}

// HeatMode reports whether gains are drawn.
func (m ViewerModel) HeatMode() bool {
	return m.heat
}

// IsGoingBack returns true if user wants to go back.
func (m ViewerModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ViewerModel) IsQuitting() bool {
	return m.quitting
}

// RunViewer runs the heatmap viewer in the current terminal.
func RunViewer(title string, g *reclaim.Grid, a reclaim.Analysis, width, height int, theme Theme) error {
	model := NewViewerModel(title, g, a, width, height).WithTheme(theme)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
