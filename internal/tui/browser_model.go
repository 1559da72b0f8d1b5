// Package tui implements the interactive holocron browser on Bubble Tea.
package tui

import (
	"context"
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/holocron/internal/browser"
	"github.com/rshade/holocron/internal/catalog"
	"github.com/rshade/holocron/internal/detail"
	listview "github.com/rshade/holocron/internal/tui/list"
)

// ErrMissingRegion is returned when the browser is built without one of the
// collaborators that back its display regions.
var ErrMissingRegion = errors.New("browser requires a list controller and a detail loader")

// listLoadedMsg carries a finished list fetch back to the event loop.
type listLoadedMsg struct {
	result browser.ListResult
}

// detailLoadedMsg carries a finished detail fetch back to the event loop.
type detailLoadedMsg struct {
	item    *catalog.Item
	summary string
	err     error
}

// BrowserModel is the Bubble Tea model for the category browser.
type BrowserModel struct {
	ctx        context.Context
	controller *browser.Controller
	loader     *detail.Loader
	tabs       []catalog.CategoryID
	initial    catalog.CategoryID

	list      *listview.Model[browser.Entry]
	textInput textinput.Model
	loading   *LoadingState

	showFilter bool
	quitting   bool
	width      int
	height     int
}

// NewBrowserModel wires the browser to its controller and loader. The
// initial category is fetched by Init.
func NewBrowserModel(
	ctx context.Context,
	controller *browser.Controller,
	loader *detail.Loader,
	initial catalog.CategoryID,
) (*BrowserModel, error) {
	if controller == nil || loader == nil {
		return nil, ErrMissingRegion
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := &BrowserModel{
		ctx:        ctx,
		controller: controller,
		loader:     loader,
		tabs:       catalog.Categories(),
		initial:    initial,
		textInput:  newFilterInput(),
		loading:    NewLoadingState(),
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.list = listview.New(m.controller.Render().Entries, m.listHeight(), m.width, m.renderEntry)
	return m, nil
}

// Init selects the initial category.
func (m *BrowserModel) Init() tea.Cmd {
	return m.OnCategorySelected(m.initial)
}

// Update routes messages to the named event handlers.
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.listHeight())
		return m, nil
	case listLoadedMsg:
		if m.controller.ApplyList(msg.result) {
			m.refresh()
		}
		return m, nil
	case detailLoadedMsg:
		m.loader.Complete(msg.item, msg.summary, msg.err)
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		if m.controller.Phase() != browser.PhaseLoading {
			return m, nil
		}
		return m, m.loading.Update(msg)
	case tea.KeyMsg:
		if m.showFilter {
			return m.handleFilterKey(msg)
		}
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m *BrowserModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keyEnter, keyEsc:
		m.showFilter = false
		m.textInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.OnFilterChanged(m.textInput.Value())
	return m, cmd
}

func (m *BrowserModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case keyQuit, keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keySlash:
		m.showFilter = true
		return m, m.textInput.Focus()
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.OnFilterChanged("")
		}
		return m, nil
	case keyEnter:
		return m, m.OnItemSelected(m.list.Selected())
	case keyReload:
		return m, m.onReload()
	case keyTab:
		return m, m.OnCategorySelected(m.tabs[(m.tabIndex()+1)%len(m.tabs)])
	case keyShiftTab:
		return m, m.OnCategorySelected(m.tabs[(m.tabIndex()+len(m.tabs)-1)%len(m.tabs)])
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.tabs) {
		return m, m.OnCategorySelected(m.tabs[n-1])
	}

	m.list.Update(msg)
	return m, nil
}

// OnCategorySelected switches tabs and starts the list fetch. Selecting the
// active tab does nothing.
func (m *BrowserModel) OnCategorySelected(id catalog.CategoryID) tea.Cmd {
	req, ok := m.controller.SelectCategory(id)
	if !ok {
		return nil
	}
	m.list.SetSelected(0)
	m.refresh()
	return tea.Batch(m.fetchList(req), m.loading.Tick())
}

func (m *BrowserModel) onReload() tea.Cmd {
	req, ok := m.controller.Reload()
	if !ok {
		return nil
	}
	m.refresh()
	return tea.Batch(m.fetchList(req), m.loading.Tick())
}

// OnFilterChanged re-renders the current items against query.
func (m *BrowserModel) OnFilterChanged(query string) {
	m.controller.SetFilter(query)
	m.list.SetSelected(0)
	m.refresh()
}

// OnItemSelected starts a detail load for the rendered row at index. Rows
// that are placeholders, films, or already loaded are ignored.
func (m *BrowserModel) OnItemSelected(index int) tea.Cmd {
	entries := m.controller.Render().Entries
	if index < 0 || index >= len(entries) || entries[index].Status != browser.StatusItem {
		return nil
	}

	category := m.controller.Current()
	item := m.controller.Item(entries[index].Index)
	if !m.loader.Begin(category, item) {
		return nil
	}
	m.refresh()

	ctx, loader, uid := m.ctx, m.loader, item.Identifier
	return func() tea.Msg {
		summary, err := loader.Fetch(ctx, category, uid)
		return detailLoadedMsg{item: item, summary: summary, err: err}
	}
}

func (m *BrowserModel) fetchList(req browser.ListRequest) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return listLoadedMsg{result: controller.FetchList(ctx, req)}
	}
}

// refresh pushes the controller's current projection into the list.
func (m *BrowserModel) refresh() {
	m.list.SetItems(m.controller.Render().Entries)
}

func (m *BrowserModel) tabIndex() int {
	for i, id := range m.tabs {
		if id == m.controller.Current() {
			return i
		}
	}
	return 0
}

func (m *BrowserModel) listHeight() int {
	return max(m.height-chromeHeight, minListHeight)
}

// Controller exposes the underlying list controller.
func (m *BrowserModel) Controller() *browser.Controller { return m.controller }

// Quitting reports whether the user asked to exit.
func (m *BrowserModel) Quitting() bool { return m.quitting }
