package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor is used to calculate half the viewport height for centering.
const halfViewportDivisor = 2

// RenderFunc renders one row. selected is true for the row under the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a windowed list of T.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	selected    int
	visibleFrom int
	visibleTo   int

	height int
	width  int
}

// New creates a list showing height rows at a time.
func New[T any](items []T, height, width int, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
		width:      width,
	}
	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		m.handleKey(keyMsg)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys are relevant.
func (m *Model[T]) handleKey(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	switch msg.Type {
	case tea.KeyUp:
		m.SetSelected(m.selected - 1)
	case tea.KeyDown:
		m.SetSelected(m.selected + 1)
	case tea.KeyPgUp:
		m.SetSelected(m.selected - m.height)
	case tea.KeyPgDown:
		m.SetSelected(m.selected + m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		switch msg.String() {
		case "j":
			m.SetSelected(m.selected + 1)
		case "k":
			m.SetSelected(m.selected - 1)
		case "g":
			m.SetSelected(0)
		case "G":
			m.SetSelected(len(m.items) - 1)
		}
	default:
	}
}

// SetItems replaces the rows. The cursor stays at the same position,
// clamped to the new length.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// SetSize changes the viewport.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateVisibleRange()
}

// SetSelected moves the cursor, clamping to valid bounds.
func (m *Model[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0 || index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}
	m.updateVisibleRange()
}

// updateVisibleRange centers the window on the cursor where possible.
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 || m.height <= 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	from := m.selected - m.height/halfViewportDivisor
	if from < 0 {
		from = 0
	}
	to := from + m.height
	if to > len(m.items) {
		to = len(m.items)
		from = max(to-m.height, 0)
	}

	m.visibleFrom, m.visibleTo = from, to
}

// View renders the rows inside the viewport.
func (m *Model[T]) View() string {
	if m.visibleTo <= m.visibleFrom {
		return ""
	}

	lines := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of rows.
func (m *Model[T]) Len() int { return len(m.items) }

// Selected returns the cursor index.
func (m *Model[T]) Selected() int { return m.selected }

// VisibleFrom returns the first visible row (inclusive).
func (m *Model[T]) VisibleFrom() int { return m.visibleFrom }

// VisibleTo returns the last visible row (exclusive).
func (m *Model[T]) VisibleTo() int { return m.visibleTo }

// Height returns the viewport height.
func (m *Model[T]) Height() int { return m.height }

// Width returns the viewport width.
func (m *Model[T]) Width() int { return m.width }

// SelectedItem returns the row under the cursor, or nil when empty.
func (m *Model[T]) SelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}
