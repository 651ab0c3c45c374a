package output

import "encoding/json"

// JSONFormatter serializes the report kind, title and raw result.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if j.Pretty {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
