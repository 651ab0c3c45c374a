package scenes

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/rgehrsitz/pfgo/internal/tui/components"
	"github.com/rgehrsitz/pfgo/internal/tui/tuistyles"
)

// ResultsModel represents the results display scene
type ResultsModel struct {
	report *output.Report
	width  int
	height int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetReport updates the report to display
func (m *ResultsModel) SetReport(r *output.Report) {
	m.report = r
}

// Report returns the report on display
func (m *ResultsModel) Report() *output.Report {
	return m.report
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	// Results scene is read-only
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.report == nil {
		return renderNoResultsState()
	}

	sections := []string{
		tuistyles.TitleStyle.Render(m.report.Title),
		"",
		renderReportCards(m.report, m.width),
	}
	if len(m.report.Notes) > 0 {
		sections = append(sections, "", renderNotes(m.report.Notes))
	}
	sections = append(sections, "", renderResultsHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderNoResultsState renders empty state
func renderNoResultsState() string {
	return `No results to display.

Pick a calculator on the home screen and submit its form first.

Press ESC to go back.`
}

// renderReportCards turns each report row into a metric card
func renderReportCards(r *output.Report, width int) string {
	cards := make([]components.Card, 0, len(r.Rows))
	for _, row := range r.Rows {
		cards = append(cards, components.RowCard(row))
	}
	if len(cards) == 0 {
		return "No summary metrics available."
	}
	return components.Grid(cards, width)
}

func renderNotes(notes []string) string {
	var content strings.Builder
	for i, n := range notes {
		content.WriteString(tuistyles.InfoStyle.Render("• " + n))
		if i < len(notes)-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}

// renderResultsHelp renders keyboard shortcuts
func renderResultsHelp() string {
	return tuistyles.SubtitleStyle.Render("ESC back to the form • h home • ? help • q quit")
}
