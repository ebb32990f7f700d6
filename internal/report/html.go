// Package report renders plot projections as self-contained HTML pages
// with Chart.js line charts.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/wesleyorama2/coach/pkg/coach"
)

const (
	defaultChartHeight = 320
	defaultTitle       = "Simulation Report"
)

// ReportData contains all data needed to render the HTML report.
type ReportData struct {
	Title       string
	GeneratedAt time.Time
	Charts      []ChartData
	ChartsJSON  template.JS
}

// ChartData describes one chart card.
type ChartData struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	XLabel  string          `json:"xLabel"`
	YLabel  string          `json:"yLabel"`
	Width   int             `json:"width,omitempty"`
	Height  int             `json:"height"`
	Series  []SeriesData    `json:"series"`
	Legend  bool            `json:"legend"`
	Summary []SeriesSummary `json:"-"`
}

// SeriesData is one line of a chart.
type SeriesData struct {
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

// Point is a chart point. A nil Y leaves a gap in the line.
type Point struct {
	X float64  `json:"x"`
	Y *float64 `json:"y"`
}

// SeriesSummary is the per-series table under a chart.
type SeriesSummary struct {
	Label   string
	Samples int
	Missing int
	Min     float64
	Max     float64
}

// HTMLRenderer writes every projection it receives as a standalone report.
// Output goes to Writer when set, otherwise to the file at Path.
type HTMLRenderer struct {
	Path   string
	Writer io.Writer
	Title  string
}

// Render implements coach.Renderer.
func (r *HTMLRenderer) Render(p *coach.Projection) error {
	title := r.Title
	if title == "" && p != nil {
		title = p.Title
	}

	html, err := GenerateHTMLString(title, []*coach.Projection{p})
	if err != nil {
		return err
	}

	if r.Writer != nil {
		_, err := io.WriteString(r.Writer, html)
		return err
	}
	if r.Path == "" {
		return fmt.Errorf("html renderer has neither a path nor a writer")
	}
	return writeFile(r.Path, html)
}

// GenerateHTML generates a report for projections and writes it to a file.
func GenerateHTML(title string, projections []*coach.Projection, outputPath string) error {
	html, err := GenerateHTMLString(title, projections)
	if err != nil {
		return fmt.Errorf("failed to generate HTML: %w", err)
	}
	return writeFile(outputPath, html)
}

// GenerateHTMLString generates a report for projections and returns it as a string.
func GenerateHTMLString(title string, projections []*coach.Projection) (string, error) {
	if len(projections) == 0 {
		return "", fmt.Errorf("no projections to render")
	}
	if title == "" {
		title = defaultTitle
	}

	tmpl, err := template.New("report").Funcs(templateFuncs()).Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var charts []ChartData
	for i, p := range projections {
		if p == nil {
			return "", fmt.Errorf("projection %d is nil", i)
		}
		charts = append(charts, buildCharts(p, len(charts))...)
	}

	chartsJSON, err := json.Marshal(charts)
	if err != nil {
		return "", fmt.Errorf("failed to convert charts: %w", err)
	}

	data := ReportData{
		Title:       title,
		GeneratedAt: time.Now(),
		Charts:      charts,
		ChartsJSON:  template.JS(chartsJSON),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// buildCharts turns a projection into one chart (overlay) or one chart per
// dependent variable (separate). offset numbers the canvas IDs.
func buildCharts(p *coach.Projection, offset int) []ChartData {
	height := p.Height
	if height <= 0 {
		height = defaultChartHeight
	}

	newChart := func(title, yLabel string) ChartData {
		return ChartData{
			ID:     fmt.Sprintf("chart%d", offset+1),
			Title:  title,
			XLabel: p.XLabel,
			YLabel: yLabel,
			Width:  p.Width,
			Height: height,
		}
	}

	if p.Layout == coach.LayoutSeparate {
		charts := make([]ChartData, 0, len(p.Y))
		for _, y := range p.Y {
			c := newChart(fmt.Sprintf("%s: %s", p.Title, y.Label()), y.Label())
			c.Series = []SeriesData{buildSeries(p.X, y)}
			c.Summary = []SeriesSummary{summarize(y)}
			charts = append(charts, c)
			offset++
		}
		return charts
	}

	c := newChart(p.Title, p.YLabel)
	for _, y := range p.Y {
		c.Series = append(c.Series, buildSeries(p.X, y))
		c.Summary = append(c.Summary, summarize(y))
	}
	c.Legend = len(c.Series) > 1
	return []ChartData{c}
}

// buildSeries pairs x and y by step. Steps without a finite x are dropped;
// steps without a finite y become gaps.
func buildSeries(x, y coach.Axis) SeriesData {
	s := SeriesData{Label: y.Label(), Points: make([]Point, 0, len(x.Values))}
	for i, xv := range x.Values {
		if !finite(xv) || i >= len(y.Values) {
			continue
		}
		pt := Point{X: xv}
		if yv := y.Values[i]; finite(yv) {
			pt.Y = &yv
		}
		s.Points = append(s.Points, pt)
	}
	return s
}

func summarize(y coach.Axis) SeriesSummary {
	sum := SeriesSummary{Label: y.Label(), Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range y.Values {
		if coach.IsMissing(v) {
			sum.Missing++
			continue
		}
		sum.Samples++
		sum.Min = math.Min(sum.Min, v)
		sum.Max = math.Max(sum.Max, v)
	}
	if sum.Samples == 0 {
		sum.Min, sum.Max = 0, 0
	}
	return sum
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func writeFile(path, html string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}
	return nil
}

// templateFuncs returns the template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatNumber": formatNumber,
		"formatValue":  formatValue,
	}
}

// formatNumber formats a count with thousands separators.
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}

	str := fmt.Sprintf("%d", n)
	result := ""
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}

// formatValue prints a sample compactly.
func formatValue(v float64) string {
	if math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("%.4g", v)
}
