package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Show loading until the first size arrives
	if !m.ready {
		return m.renderLoading()
	}

	body := m.viewport.View()
	if m.err != nil {
		body = m.renderError()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

// renderHeader renders the path, entry count and clock
func (m Model) renderHeader() string {
	title := m.styles.Title.Render(m.lister.Path())
	count := m.styles.Subtitle.Render(fmt.Sprintf("%s entries", humanize.Comma(int64(m.lister.Count()))))

	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", count)
	if m.watching {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", m.styles.Watching.Render("watching"))
	}
	if m.lastUpdate != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", m.styles.Subtitle.Render(m.lastUpdate))
	}
	return header
}

// renderFooter renders the footer with help text and scroll position
func (m Model) renderFooter() string {
	help := "q: quit | r: reload | ↑/↓: scroll"
	if !m.viewport.AtTop() || !m.viewport.AtBottom() {
		help += fmt.Sprintf(" | %3.f%%", m.viewport.ScrollPercent()*100)
	}
	return m.styles.Muted.Render(help)
}

// renderLoading renders the loading screen
func (m Model) renderLoading() string {
	return m.styles.Subtitle.Render("Loading " + m.lister.Path() + "...")
}

// renderError renders the error in place of the listing
func (m Model) renderError() string {
	errorText := m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	hintText := m.styles.Muted.Render("press 'r' to retry")
	return lipgloss.JoinVertical(lipgloss.Left, errorText, hintText)
}
