package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chromeHeight is the number of lines taken by the header and footer
const chromeHeight = 2

// Lister produces the listing shown in the viewport. Render is called
// again for every terminal resize, so it must not re-read the directory;
// Reload does that.
type Lister interface {
	Path() string
	Count() int
	Reload() error
	Render(width int) (string, error)
}

// Model represents the application state
type Model struct {
	lister   Lister
	viewport viewport.Model

	width  int
	height int

	// State
	ready      bool
	watching   bool
	quitting   bool
	lastUpdate string

	// Error state
	err error

	// Styles
	styles Styles
}

// Styles contains the Lipgloss styles for the UI
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Watching lipgloss.Style
}

// DefaultStyles returns the default UI styles
func DefaultStyles() Styles {
	var styles Styles

	primaryColor := lipgloss.Color("86") // Green
	errorColor := lipgloss.Color("196")  // Red

	styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	styles.Subtitle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243"))

	styles.Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	styles.Error = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	styles.Watching = lipgloss.NewStyle().
		Foreground(primaryColor)

	return styles
}

// NewModel creates a new Model showing lister
func NewModel(lister Lister) Model {
	return Model{
		lister: lister,
		styles: DefaultStyles(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// refresh lays the listing out again for the current width
func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	text, err := m.lister.Render(m.width)
	if err != nil {
		m.err = err
		return m
	}
	m.err = nil
	m.viewport.SetContent(text)
	return m
}

// reload re-reads the directory, then lays it out
func (m Model) reload() Model {
	if err := m.lister.Reload(); err != nil {
		m.err = err
		return m
	}
	return m.refresh()
}
