package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyReload   = "r"
)

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth         = 80
	defaultHeight        = 24
	minListHeight        = 3
	filterInputCharLimit = 64
	filterInputWidth     = 40
	// chromeHeight covers the tab bar, its border, the filter line and help.
	chromeHeight = 5
)

// LoadingState drives the spinner shown while a list fetch is outstanding.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState returns a spinner with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, message: "Loading…"}
}

// Tick starts (or restarts) the spinner animation.
func (l *LoadingState) Tick() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its own tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the spinner and message.
func (l *LoadingState) View() string {
	return l.spinner.View() + " " + l.message
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search…"
	ti.Prompt = "/ "
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// OutputMode selects how non-interactive output is rendered.
type OutputMode int

const (
	// OutputModePlain prints undecorated text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled prints lipgloss-styled text.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea browser.
	OutputModeInteractive
)

// DetectOutputMode picks the richest mode the terminal supports.
// noColor and plain force plain output; forceColor allows styling on a
// non-terminal.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain, os.LookupEnv,
		term.IsTerminal(int(os.Stdin.Fd())), term.IsTerminal(int(os.Stdout.Fd())))
}

func detectOutputMode(
	forceColor, noColor, plain bool,
	lookupEnv func(string) (string, bool),
	stdinTTY, stdoutTTY bool,
) OutputMode {
	if plain || noColor {
		return OutputModePlain
	}
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return OutputModePlain
	}
	if v, _ := lookupEnv("TERM"); v == "dumb" {
		return OutputModePlain
	}
	if stdoutTTY && stdinTTY {
		if _, ci := lookupEnv("CI"); !ci {
			return OutputModeInteractive
		}
	}
	if stdoutTTY || forceColor {
		return OutputModeStyled
	}
	return OutputModePlain
}
