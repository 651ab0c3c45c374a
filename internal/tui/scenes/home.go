package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/rgehrsitz/pfgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/pfgo/internal/tui/tuistyles"
)

// MenuItem is one calculator offered on the home scene
type MenuItem struct {
	ID          string
	Title       string
	Description string
}

// HomeModel represents the home dashboard scene
type HomeModel struct {
	items         []MenuItem
	selectedIndex int
	profile       *domain.UserProfile
	width         int
	height        int
}

// NewHomeModel creates a new home scene model
func NewHomeModel(items []MenuItem) *HomeModel {
	return &HomeModel{items: items}
}

// SetProfile updates the profile summary shown beside the menu
func (m *HomeModel) SetProfile(p domain.UserProfile) {
	m.profile = &p
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted calculator
func (m *HomeModel) Selected() (MenuItem, bool) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return MenuItem{}, false
	}
	return m.items[m.selectedIndex], true
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.items)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		item, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.CalculatorSelectedMsg{ID: item.ID}
		}
	}
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)
	content.WriteString(titleStyle.Render("Personal Finance Assistant (India)"))
	content.WriteString("\n\n")

	content.WriteString(m.renderProfile())
	content.WriteString("\n\n")

	content.WriteString(m.renderMenu())
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)
	content.WriteString(subtleStyle.Render("↑/k up • ↓/j down • Enter open • ? help • q quit"))
	content.WriteString("\n")
	content.WriteString(subtleStyle.Render(output.Disclaimer))

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *HomeModel) renderProfile() string {
	var content strings.Builder
	content.WriteString(tuistyles.SectionStyle.Render("Profile"))
	content.WriteString("\n")

	if m.profile == nil {
		content.WriteString(tuistyles.SubtitleStyle.Render("  Loading profile..."))
		return content.String()
	}

	p := m.profile
	label := tuistyles.MetricLabelStyle
	value := tuistyles.UnselectedItemStyle

	line := func(l, v string) {
		content.WriteString(label.Render(fmt.Sprintf("  %-18s", l)))
		content.WriteString(value.Render(v))
		content.WriteString("\n")
	}

	line("Name", p.Name)
	if p.Age != nil {
		line("Age", fmt.Sprintf("%d", *p.Age))
	}
	if p.MonthlyIncome != nil {
		line("Monthly income", output.FormatCurrency(*p.MonthlyIncome))
	}
	if p.MonthlyExpenses != nil {
		line("Monthly expenses", output.FormatCurrency(*p.MonthlyExpenses))
	}
	if savings, ok := p.SavingsCapacity(); ok {
		line("Can save", output.FormatCurrency(savings)+"/month")
	}
	line("Risk", string(p.Risk))
	line("Tax regime", p.PreferredRegime().Title())

	return strings.TrimRight(content.String(), "\n")
}

func (m *HomeModel) renderMenu() string {
	var content strings.Builder
	content.WriteString(tuistyles.SectionStyle.Render("Calculators"))
	content.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		style := tuistyles.UnselectedItemStyle
		if i == m.selectedIndex {
			cursor = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		content.WriteString(style.Render(fmt.Sprintf("%s%-12s", cursor, item.Title)))
		content.WriteString(tuistyles.SubtitleStyle.Render("  " + item.Description))
		if i < len(m.items)-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}
