package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pfgo/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	// Render the current scene
	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneForm:
		content = m.renderForm()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	// Wrap content with app styling and status bar
	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	// Title (2) + status (1) + padding (1)
	contentHeight := max(0, m.height-4)

	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("pfgo - Personal Finance Assistant")

	breadcrumb := m.currentScene.String()
	if m.currentScene != SceneHome && m.currentScene != SceneHelp && m.selected.ID != "" {
		breadcrumb = fmt.Sprintf("%s / %s", m.selected.Title, m.currentScene.String())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	if m.currentScene == SceneForm {
		shortcuts = []string{
			formatShortcut("enter", "next/submit"),
			formatShortcut("esc", "home"),
			formatShortcut("ctrl+c", "quit"),
		}
	} else {
		shortcuts = []string{
			formatShortcut("h", "home"),
			formatShortcut("esc", "back"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	}

	statusText := strings.Join(shortcuts, " • ")

	// Right-align the rules year, or a profile warning
	right := SubtitleStyle.Render("FY " + m.engine.TaxConfig().Metadata().FinancialYear)
	if m.warning != "" {
		right = ErrorStyle.Render(m.warning)
	}
	width := m.width - lipgloss.Width(statusText) - lipgloss.Width(right) - 4
	statusText = statusText + strings.Repeat(" ", max(1, width)) + right

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}

	content := BorderStyle.Render(
		fmt.Sprintf("⠋ %s", message),
	)

	return m.renderApp(content)
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)

	return m.renderApp(content)
}

func (m Model) renderForm() string {
	if m.formModel == nil {
		return BorderStyle.Render("No calculator selected.\n\nPress ESC to return to home.")
	}
	return m.formModel.View()
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString("pfgo - Personal Finance Assistant (India)\n\n")

	section := func(title string, rows [][2]string) {
		b.WriteString(title + "\n")
		for _, r := range rows {
			b.WriteString("  " + HelpKeyStyle.Render(fmt.Sprintf("%-12s", r[0])) + HelpDescStyle.Render(r[1]) + "\n")
		}
		b.WriteString("\n")
	}

	section("KEYBOARD SHORTCUTS:", [][2]string{
		{"h", "Navigate to Home"},
		{"?", "Show this help"},
		{"ESC", "Go back"},
		{"q/Ctrl+C", "Quit"},
	})
	section("HOME:", [][2]string{
		{"↑/k ↓/j", "Move between calculators"},
		{"Enter", "Open the calculator form"},
	})
	section("FORMS:", [][2]string{
		{"Tab/↓", "Next field"},
		{"Shift+Tab/↑", "Previous field"},
		{"Enter", "Next field, submit on the last"},
		{"Ctrl+S", "Submit"},
	})

	b.WriteString(SubtitleStyle.Render("Defaults come from your saved profile and settings.\n" + output.Disclaimer))

	return BorderStyle.Render(b.String())
}
