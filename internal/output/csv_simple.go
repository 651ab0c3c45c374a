package output

import (
	"bytes"
	"encoding/csv"
)

// CSVFormatter writes the report rows as label,value records.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"label", "value"}); err != nil {
		return nil, err
	}
	for _, row := range r.Rows {
		if err := w.Write([]string{row.Label, row.Value}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
