package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pfgo/internal/compare"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/rgehrsitz/pfgo/internal/tui/components"
	"github.com/rgehrsitz/pfgo/internal/tui/tuistyles"
)

// CompareModel shows both tax regimes side by side
type CompareModel struct {
	set    *compare.ComparisonSet
	width  int
	height int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetComparison stores the comparison to display
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
}

// Comparison returns the comparison on display
func (m *CompareModel) Comparison() *compare.ComparisonSet {
	return m.set
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.set == nil {
		return `No comparison to display.

Open "Compare" on the home screen to estimate both regimes.

Press ESC to go back.`
	}

	title := tuistyles.TitleStyle.Render("Regime Comparison")
	subtitle := tuistyles.SubtitleStyle.Render(fmt.Sprintf("FY %s • gross income %s",
		m.set.FinancialYear, output.FormatCurrency(m.set.GrossIncome)))

	var cards []components.Card
	for _, res := range m.set.Results() {
		cards = append(cards, components.RegimeCard(res, m.set).WithWidth(34))
	}

	sections := []string{
		title,
		subtitle,
		"",
		components.Row(cards...),
		"",
		m.renderRecommendations(),
		"",
		tuistyles.SubtitleStyle.Render("ESC back to the form • h home • ? help • q quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *CompareModel) renderRecommendations() string {
	if len(m.set.Recommendations) == 0 {
		return ""
	}
	var content strings.Builder
	content.WriteString(tuistyles.SectionStyle.Render("Recommendations"))
	for _, r := range m.set.Recommendations {
		content.WriteString("\n")
		content.WriteString(tuistyles.InfoStyle.Render("• " + r))
	}
	return content.String()
}
