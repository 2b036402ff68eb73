package output

import (
	"html/template"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/jsminer/jsminer/internal/scan"
)

// HTMLWriter renders a standalone report page for sharing with teams that
// do not consume the JSON output.
type HTMLWriter struct {
	path string
}

// NewHTMLWriter writes the report to path on Write.
func NewHTMLWriter(path string) (*HTMLWriter, error) {
	if path == "" {
		return nil, errors.New("html output requires a file path")
	}
	return &HTMLWriter{path: path}, nil
}

type htmlData struct {
	GeneratedAt string
	Duration    string
	Summary     scan.Summary
	Critical    int
	High        int
	Medium      int
	Low         int
	Info        int
	Findings    []scan.Finding
	Errors      []scan.TargetError
}

func (h *HTMLWriter) Write(res *scan.Result) error {
	data := htmlData{
		GeneratedAt: time.Now().Format(time.RFC1123),
		Duration:    res.Duration.Round(time.Millisecond).String(),
		Summary:     res.Summary,
		Critical:    res.Summary.BySeverity["critical"],
		High:        res.Summary.BySeverity["high"],
		Medium:      res.Summary.BySeverity["medium"],
		Low:         res.Summary.BySeverity["low"],
		Info:        res.Summary.BySeverity["info"],
		Findings:    res.Findings,
		Errors:      res.Errors,
	}

	f, err := os.Create(h.path)
	if err != nil {
		return errors.Wrap(err, "creating html report")
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return errors.Wrap(err, "rendering html report")
	}
	return nil
}

func (h *HTMLWriter) Close() error { return nil }

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>JS Mining Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #222; }
  h1 { margin-bottom: 0.25rem; }
  .meta { color: #666; margin-bottom: 1.5rem; }
  .cards { display: flex; gap: 1rem; margin-bottom: 2rem; flex-wrap: wrap; }
  .card { border-radius: 8px; padding: 0.75rem 1.25rem; min-width: 90px; text-align: center; color: #fff; }
  .card .num { font-size: 1.8rem; font-weight: 700; display: block; }
  .critical { background: #c0392b; }
  .high     { background: #e67e22; }
  .medium   { background: #2980b9; }
  .low      { background: #27ae60; }
  .info     { background: #7f8c8d; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #ddd; vertical-align: top; }
  th { background: #f4f4f4; }
  td.value, td.context { font-family: "SF Mono", Consolas, monospace; font-size: 0.85rem; word-break: break-all; }
  .sev { font-weight: 600; text-transform: uppercase; font-size: 0.75rem; }
  .sev.critical { color: #c0392b; }
  .sev.high     { color: #e67e22; }
  .sev.medium   { color: #2980b9; }
  .sev.low      { color: #27ae60; }
  .sev.info     { color: #7f8c8d; }
  .lowconf { color: #999; font-size: 0.75rem; }
  .errors { margin-top: 2rem; color: #666; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>JS Mining Report</h1>
<p class="meta">Generated {{.GeneratedAt}} &middot; {{.Summary.Targets}} targets &middot; {{.Summary.Fetched}} fetched &middot; {{.Duration}}</p>

<div class="cards">
  <div class="card critical"><span class="num">{{.Critical}}</span>Critical</div>
  <div class="card high"><span class="num">{{.High}}</span>High</div>
  <div class="card medium"><span class="num">{{.Medium}}</span>Medium</div>
  <div class="card low"><span class="num">{{.Low}}</span>Low</div>
  <div class="card info"><span class="num">{{.Info}}</span>Info</div>
</div>

<table>
<tr><th>Severity</th><th>Category</th><th>Type</th><th>Value</th><th>Confidence</th><th>Source</th><th>Context</th></tr>
{{range .Findings}}
<tr>
  <td><span class="sev {{.Severity}}">{{.Severity}}</span></td>
  <td>{{.Category}}</td>
  <td>{{.Type}}</td>
  <td class="value">{{.Value}}{{if .Low}}<br><span class="lowconf">low confidence</span>{{end}}</td>
  <td>{{printf "%.2f" .Confidence}}</td>
  <td class="value">{{.Source}}</td>
  <td class="context">{{.Context}}</td>
</tr>
{{end}}
</table>

{{if .Errors}}
<div class="errors">
<h2>Fetch Errors ({{len .Errors}})</h2>
<ul>
{{range .Errors}}<li>{{.Target}}: {{.Error}}</li>
{{end}}</ul>
</div>
{{end}}
</body>
</html>
`))
