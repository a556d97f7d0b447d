package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
)

const cell = "padding:6px 10px;border:1px solid #ddd;"

var funcs = template.FuncMap{
	"money":   FormatMoney,
	"percent": FormatPercent,
	"cell":    func() template.CSS { return template.CSS(cell) },
	"cellR":   func() template.CSS { return template.CSS(cell + "text-align:right;") },
	"changeColor": func(d entity.Direction) template.CSS {
		switch d {
		case entity.DirectionUp:
			return "color:#c0392b;"
		case entity.DirectionDown:
			return "color:#27ae60;"
		default:
			return "color:#7f8c8d;"
		}
	},
	"tierColor": func(t entity.BudgetTier) template.CSS {
		return template.CSS("color:" + t.Color() + ";")
	},
	"pct": func(f float64) string { return fmt.Sprintf("%.1f%%", f) },
}

const documentTemplate = `{{define "costTable"}}
<h3 style="margin:16px 0 8px 0;">{{.Title}}</h3>
<table style="border-collapse:collapse;">
<thead>
<tr><th style="{{cell}}text-align:left;">{{.KeyHeader}}</th> <th style="{{cellR}}">Amount</th></tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><td style="{{cell}}">{{.Label}}</td> <td style="{{cellR}}">{{money .Amount}}</td></tr>
{{- else}}
<tr><td colspan="2" style="{{cell}}">No charges</td></tr>
{{- end}}
{{- if .Hidden}}
<tr><td colspan="2" style="{{cell}}color:#7f8c8d;">{{.Hidden}} more not shown</td></tr>
{{- end}}
<tr><td style="{{cell}}"><b>Total</b></td> <td style="{{cellR}}"><b>{{money .Total}}</b></td></tr>
</tbody>
</table>
{{end}}
{{define "change"}}<span style="{{changeColor .Direction}}">{{.Direction.Arrow}} {{percent .PctChange}}</span>{{end}}
<html><head><meta charset="utf-8"></head><body style="font-family: Arial, sans-serif;">
<h2 style="margin:0 0 6px 0;">AWS Cost Report</h2>
<div style="margin:0 0 12px 0;">Date (yesterday): <b>{{.Date}}</b></div>
{{template "costTable" .Yesterday}}
{{- with .Trend}}
<h3 style="margin:16px 0 8px 0;">Daily trend ({{len .Points}} days)</h3>
<div style="font-size:20px;letter-spacing:2px;">{{.Sparkline}}</div>
<div>Min {{money .Stats.Min}} / Avg {{money .Stats.Avg}} / Max {{money .Stats.Max}}</div>
{{- with .DayOverDay}}
<div>Day over day: {{template "change" .}}</div>
{{- end}}
{{- with .WeekOverWeek}}
<div>Week over week: {{template "change" .}}</div>
{{- end}}
{{- end}}
{{- with .MonthToDate}}
{{template "costTable" .}}
{{- end}}
{{- with .Budget}}
<h3 style="margin:16px 0 8px 0;">Budget: {{.Name}}</h3>
<table style="border-collapse:collapse;">
<tr><td style="{{cell}}">Limit</td> <td style="{{cellR}}">{{money .Limit}}</td></tr>
<tr><td style="{{cell}}">Actual</td> <td style="{{cellR}}">{{money .Actual}}</td></tr>
<tr><td style="{{cell}}">Forecast</td> <td style="{{cellR}}">{{money .Forecast}}</td></tr>
<tr><td style="{{cell}}">Utilization</td> <td style="{{cellR}}"><b style="{{tierColor .Tier}}">&#9679; {{pct .UtilizationPct}} ({{.Tier}})</b></td></tr>
</table>
{{- end}}
{{- with .Forecast}}
<p>Forecast month-end spend: <b>{{money .MonthEnd}}</b> ({{money .Remaining}} still expected before {{.Through.Format "2006-01-02"}})</p>
{{- end}}
{{- with .Drivers}}
{{template "costTable" .}}
{{- end}}
{{- with .Regions}}
{{template "costTable" .}}
{{- end}}
{{- with .ArchiveURI}}
<p style="margin-top:16px;">Archive: <b>{{.}}</b></p>
{{- end}}
</body></html>
`

var documentTmpl = template.Must(template.New("report").Funcs(funcs).Parse(documentTemplate))

// RenderHTML renders the document as an HTML e-mail body.
func RenderHTML(doc entity.ReportDocument) (string, error) {
	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering report HTML: %w", err)
	}
	return buf.String(), nil
}
