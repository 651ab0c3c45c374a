package output

import (
	"bytes"
	"html/template"
)

// HTMLFormatter produces a standalone HTML page for a report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

const htmlTemplateSource = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Report.Title}}</title></head>
<body>
<h1>{{.Report.Title}}</h1>
<table>
{{- range .Report.Rows}}
<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- if .Report.Notes}}
<ul>
{{- range .Report.Notes}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
<h2>Assumptions</h2>
<ul>
{{- range .Assumptions}}
<li>{{.}}</li>
{{- end}}
</ul>
<p><em>{{.Disclaimer}}</em></p>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Report      *Report
		Assumptions []string
		Disclaimer  string
	}{r, DefaultAssumptions, Disclaimer}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
