// internal/report/report.go
// Package report persists benchmark results and renders the comparison chart.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/mwiater/modelbench/internal/benchmark"
	"github.com/spf13/afero"
)

const (
	// ResultsFile is the name of the JSON summary inside the output directory.
	ResultsFile = "results.json"
	// ChartFile is the name of the HTML report inside the output directory.
	ChartFile = "comparison_report.html"
)

// Writer writes report files under a single directory.
type Writer struct {
	fs  afero.Fs
	dir string
}

// NewWriter returns a Writer rooted at dir on fs.
func NewWriter(fs afero.Fs, dir string) *Writer {
	return &Writer{fs: fs, dir: dir}
}

// ResultsPath returns the location of the JSON summary.
func (w *Writer) ResultsPath() string {
	return filepath.Join(w.dir, ResultsFile)
}

// ChartPath returns the location of the HTML report.
func (w *Writer) ChartPath() string {
	return filepath.Join(w.dir, ChartFile)
}

// WriteJSON overwrites results.json with results indented by two spaces.
// Markup in responses is written as-is rather than \u-escaped.
// A nil slice is written as an empty array.
func (w *Writer) WriteJSON(results []benchmark.Result) (string, error) {
	if results == nil {
		results = []benchmark.Result{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}
	return w.write(w.ResultsPath(), bytes.TrimRight(buf.Bytes(), "\n"))
}

// ReadJSON parses a previously written results.json.
func (w *Writer) ReadJSON() ([]benchmark.Result, error) {
	data, err := afero.ReadFile(w.fs, w.ResultsPath())
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	var results []benchmark.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode %s: %w", w.ResultsPath(), err)
	}
	return results, nil
}

// WriteHTML overwrites comparison_report.html with a column chart of average latency per model.
func (w *Writer) WriteHTML(results []benchmark.Result) (string, error) {
	html, err := RenderHTML(results)
	if err != nil {
		return "", err
	}
	return w.write(w.ChartPath(), []byte(html))
}

func (w *Writer) write(path string, data []byte) (string, error) {
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", w.dir, err)
	}
	if err := afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

type chartData struct {
	Title   string
	Dataset template.JS
}

// RenderHTML returns the standalone chart page for results. Models without
// an average are emitted as null so the chart leaves a gap.
func RenderHTML(results []benchmark.Result) (string, error) {
	rows := make([][]any, 0, len(results)+1)
	rows = append(rows, []any{"Model", "Average Time (ms)"})
	for _, r := range results {
		rows = append(rows, []any{r.Model, r.AvgTime})
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode chart data: %w", err)
	}

	var buf bytes.Buffer
	view := chartData{Title: "Model Performance Comparison", Dataset: template.JS(payload)}
	if err := chartTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var chartTemplate = template.Must(template.New("comparison-report").Parse(chartTemplateHTML))

const chartTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{ .Title }}</title>
  <script type="text/javascript" src="https://www.gstatic.com/charts/loader.js"></script>
  <script type="text/javascript">
    google.charts.load('current', {'packages':['corechart']});
    google.charts.setOnLoadCallback(drawChart);
    function drawChart() {
      const data = google.visualization.arrayToDataTable({{ .Dataset }});
      const options = {
        title: '{{ .Title }}',
        hAxis: { title: 'Models' },
        vAxis: { title: 'Average Time (ms)' },
        legend: { position: 'none' }
      };
      const chart = new google.visualization.ColumnChart(document.getElementById('chart_div'));
      chart.draw(data, options);
    }
  </script>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <div id="chart_div" style="width: 900px; height: 500px;"></div>
</body>
</html>
`
