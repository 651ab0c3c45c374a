package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter renders a report as an aligned label/value block.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	width := 0
	for _, row := range r.Rows {
		if len(row.Label) > width {
			width = len(row.Label)
		}
	}

	fmt.Fprintf(&buf, "— %s —\n", r.Title)
	for _, row := range r.Rows {
		fmt.Fprintf(&buf, "%-*s  %s\n", width+1, row.Label+":", row.Value)
	}
	if len(r.Notes) > 0 {
		fmt.Fprintln(&buf)
		for _, n := range r.Notes {
			fmt.Fprintf(&buf, "• %s\n", n)
		}
	}
	fmt.Fprintln(&buf, strings.Repeat("-", width+20))
	fmt.Fprintln(&buf, Disclaimer)
	return buf.Bytes(), nil
}
