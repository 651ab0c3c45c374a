package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pfgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/pfgo/internal/tui/tuistyles"
)

// FormField describes one input of a calculator form
type FormField struct {
	Key         string
	Label       string
	Default     string
	Placeholder string
	Hint        string
}

// FormModel collects the inputs of one calculator
type FormModel struct {
	id     string
	title  string
	fields []FormField
	inputs []textinput.Model
	focus  int
	width  int
	height int
}

// NewFormModel creates a form with one text input per field, prefilled with
// the field defaults
func NewFormModel(id, title string, fields []FormField) *FormModel {
	m := &FormModel{id: id, title: title, fields: fields}
	for _, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.Placeholder
		in.CharLimit = 32
		in.Width = 24
		in.SetValue(f.Default)
		m.inputs = append(m.inputs, in)
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

// ID returns the calculator the form belongs to
func (m *FormModel) ID() string {
	return m.id
}

// SetSize updates the model dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Values returns the current input values keyed by field key
func (m *FormModel) Values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for i, f := range m.fields {
		values[f.Key] = strings.TrimSpace(m.inputs[i].Value())
	}
	return values
}

// Focused returns the index of the focused field
func (m *FormModel) Focused() int {
	return m.focus
}

// Update handles messages for the form scene. Enter advances to the next
// field and submits from the last one; ctrl+s submits from anywhere.
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("ctrl+s"))):
			return m, m.submit()

		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
			if m.focus >= len(m.inputs)-1 {
				return m, m.submit()
			}
			return m, m.setFocus(m.focus + 1)

		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("tab", "down"))):
			return m, m.setFocus(m.focus + 1)

		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
			return m, m.setFocus(m.focus - 1)
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves focus with wrap-around
func (m *FormModel) setFocus(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	n := len(m.inputs)
	i = ((i % n) + n) % n

	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m *FormModel) submit() tea.Cmd {
	id, values := m.id, m.Values()
	return func() tea.Msg {
		return tuimsg.FormSubmittedMsg{ID: id, Values: values}
	}
}

// View renders the form
func (m *FormModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render(m.title))
	content.WriteString("\n\n")

	labelWidth := 0
	for _, f := range m.fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}

	for i, f := range m.fields {
		labelStyle := tuistyles.MetricLabelStyle
		cursor := "  "
		if i == m.focus {
			labelStyle = tuistyles.SelectedItemStyle
			cursor = "▸ "
		}
		content.WriteString(labelStyle.Render(fmt.Sprintf("%s%-*s", cursor, labelWidth, f.Label)))
		content.WriteString("  ")
		content.WriteString(m.inputs[i].View())
		if f.Hint != "" {
			content.WriteString(tuistyles.SubtitleStyle.Render("  " + f.Hint))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("Tab/↓ next • Shift+Tab/↑ previous • Enter next/submit • Ctrl+S submit • ESC back"))

	return tuistyles.BorderStyle.Render(content.String())
}
