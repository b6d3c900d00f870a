// Package render produces the server-side HTML pages: the upload form and
// the per-analysis report. Charts are drawn client-side from projections
// inlined as JSON.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/DomRamond/feeling-whatsapp-app/internal/analysis/sentiment"
	model "github.com/DomRamond/feeling-whatsapp-app/internal/model/analysis"
)

//go:embed templates/*
var tplFS embed.FS

var funcMap = template.FuncMap{
	"percent": func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
}

type reportContext struct {
	Analysis  model.Analysis
	Sample    []model.LabeledMessage
	Labels    []sentiment.Label
	ChartData template.JS
}

// chartData is the shape consumed by the report page scripts.
type chartData struct {
	Labels       []string             `json:"labels"`
	Distribution []int                `json:"distribution"`
	DailyDates   []string             `json:"dailyDates"`
	DailySeries  map[string][]float64 `json:"dailySeries"`
}

// Report writes the HTML report for one analysis. sampleSize bounds the
// labeled-message table.
func Report(w io.Writer, a model.Analysis, sampleSize int) error {
	tpl, err := template.New("report.html").Funcs(funcMap).ParseFS(tplFS, "templates/report.html")
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	sample := a.Messages
	if sampleSize > 0 && len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	charts, err := buildChartData(a.Report)
	if err != nil {
		return err
	}

	return tpl.Execute(w, reportContext{
		Analysis:  a,
		Sample:    sample,
		Labels:    sentiment.Labels(),
		ChartData: charts,
	})
}

// UploadPage writes the landing page with the transcript upload form.
func UploadPage(w io.Writer) error {
	tpl, err := template.ParseFS(tplFS, "templates/index.html")
	if err != nil {
		return fmt.Errorf("parse index template: %w", err)
	}
	return tpl.Execute(w, nil)
}

func buildChartData(rep model.Report) (template.JS, error) {
	data := chartData{
		DailySeries: make(map[string][]float64, len(sentiment.Labels())),
	}
	for _, label := range sentiment.Labels() {
		data.Labels = append(data.Labels, string(label))
		data.Distribution = append(data.Distribution, rep.Distribution[label])
	}
	for _, day := range rep.Daily {
		data.DailyDates = append(data.DailyDates, day.Date.Format("02/01/2006"))
		for _, label := range sentiment.Labels() {
			data.DailySeries[string(label)] = append(data.DailySeries[string(label)], day.Share[label])
		}
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal chart data: %w", err)
	}
	return template.JS(encoded), nil
}
