package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pfgo/internal/compare"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/rgehrsitz/pfgo/internal/tui/tuistyles"
)

// DefaultCardWidth fits the longest rupee amounts the calculators print
const DefaultCardWidth = 30

// maxGridColumns keeps report grids readable on very wide terminals
const maxGridColumns = 3

// Verdict says whether a card's delta is good news for the user
type Verdict int

const (
	VerdictEven Verdict = iota
	VerdictBetter
	VerdictWorse
)

func (v Verdict) marker() string {
	switch v {
	case VerdictBetter:
		return "▲"
	case VerdictWorse:
		return "▼"
	default:
		return "="
	}
}

func (v Verdict) style() lipgloss.Style {
	switch v {
	case VerdictBetter:
		return tuistyles.MetricPositiveStyle
	case VerdictWorse:
		return tuistyles.MetricNegativeStyle
	default:
		return tuistyles.MetricLabelStyle
	}
}

// Delta is a one-line comparison shown under a card's value
type Delta struct {
	Verdict Verdict
	Text    string
}

// Card shows one labelled figure from a calculator result
type Card struct {
	Label string
	Value string
	Note  string
	Delta *Delta
	Width int
}

// NewCard creates a card for an already formatted value
func NewCard(label, value string) Card {
	return Card{Label: label, Value: value, Width: DefaultCardWidth}
}

// AmountCard creates a card for a rupee amount
func AmountCard(label string, amount decimal.Decimal) Card {
	return NewCard(label, output.FormatCurrency(amount))
}

// RowCard creates a card from a report row
func RowCard(row output.Row) Card {
	return NewCard(row.Label, row.Value)
}

// RegimeCard summarizes one regime of a comparison. The delta names the
// savings from the cheaper regime's point of view.
func RegimeCard(res compare.ComparisonResult, set *compare.ComparisonSet) Card {
	card := AmountCard(res.Regime.Title()+" regime", res.TotalTax).
		WithNote("Effective " + output.FormatRate(res.EffectiveRate) +
			" • take-home " + output.FormatCurrency(res.MonthlyTakeHome) + "/month")

	savings := output.FormatCurrency(set.Savings)
	switch {
	case set.Tie:
		return card.WithDelta(VerdictEven, "same tax as the other regime")
	case res.Regime == set.Cheaper:
		return card.WithDelta(VerdictBetter, savings+" cheaper")
	default:
		return card.WithDelta(VerdictWorse, savings+" more")
	}
}

// WithNote sets the muted line under the value
func (c Card) WithNote(note string) Card {
	c.Note = note
	return c
}

// WithDelta sets the comparison line
func (c Card) WithDelta(v Verdict, text string) Card {
	c.Delta = &Delta{Verdict: v, Text: text}
	return c
}

// WithWidth sets the card width
func (c Card) WithWidth(width int) Card {
	c.Width = width
	return c
}

// View renders the card with a rounded border
func (c Card) View() string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(c.Label),
		tuistyles.MetricValueStyle.Render(c.Value),
	}
	if c.Delta != nil {
		lines = append(lines, c.Delta.Verdict.style().Render(c.Delta.Verdict.marker()+" "+c.Delta.Text))
	}
	if c.Note != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(c.Note))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(c.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Columns returns how many cards of cardWidth fit across width, between one
// and three. Borders add two cells to every card.
func Columns(width, cardWidth int) int {
	outer := cardWidth + 2
	if outer <= 2 || width < outer {
		return 1
	}
	return min(maxGridColumns, width/outer)
}

// Grid lays cards out in rows that fit width
func Grid(cards []Card, width int) string {
	if len(cards) == 0 {
		return ""
	}
	columns := Columns(width, cards[0].Width)

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		views := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			views = append(views, c.View())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, views...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Row renders cards side by side regardless of width
func Row(cards ...Card) string {
	views := make([]string, 0, len(cards))
	for _, c := range cards {
		views = append(views, c.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}
