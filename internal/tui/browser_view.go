package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/holocron/internal/browser"
	"github.com/rshade/holocron/internal/catalog"
)

const helpText = "[1-3/tab] Category  [/] Search  [↑↓/jk] Navigate  [enter] Details  [r] Reload  [q] Quit"

// View renders the tab bar, filter line, list and help.
func (m *BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderTabs(),
		m.renderFilter(),
		m.list.View(),
		HelpStyle.Render(helpText),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BrowserModel) renderTabs() string {
	tabs := make([]string, 0, len(m.tabs))
	for _, id := range m.tabs {
		label := catalog.Label(id)
		if id == m.controller.Current() {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return TabBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *BrowserModel) renderFilter() string {
	if m.showFilter || m.textInput.Value() != "" {
		return m.textInput.View()
	}
	return HelpStyle.Render("/ to search")
}

// renderEntry renders one card or placeholder on a single line.
func (m *BrowserModel) renderEntry(e browser.Entry, selected bool) string {
	switch e.Status {
	case browser.StatusLoading:
		return m.loading.View()
	case browser.StatusEmpty:
		return SubtitleStyle.Render(e.Title)
	case browser.StatusError:
		return CriticalStyle.Render(e.Title)
	case browser.StatusItem:
	}

	sub := CardSubtitle(e)
	if selected {
		line := "▸ " + e.Title
		if sub != "" {
			line += "  " + sub
		}
		return SelectedStyle.Render(line)
	}

	line := "  " + TitleStyle.Render(e.Title)
	if sub != "" {
		line += "  " + SubtitleStyle.Render(sub)
	}
	return line
}

// CardSubtitle returns the secondary line of a card: the adapter subtitle,
// or the lazily loaded detail for categories without one.
func CardSubtitle(e browser.Entry) string {
	parts := make([]string, 0, 2)
	if e.Subtitle != "" {
		parts = append(parts, e.Subtitle)
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	return strings.Join(parts, catalog.SubtitleSeparator)
}
