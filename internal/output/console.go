// Package output provides terminal output for simulation runs: a run
// summary and an ASCII chart renderer.
package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/wesleyorama2/coach/internal/runner"
	"github.com/wesleyorama2/coach/pkg/coach"
)

const boxHorizontal = "━"

// VariableStats summarises one recorded series.
type VariableStats struct {
	Name    string
	Label   string
	Unit    string
	Samples int
	Missing int
	Min     float64
	Max     float64
	Last    float64
}

// Summarize computes VariableStats for every recorded variable, in order of
// first appearance.
func Summarize(s *coach.Session) []VariableStats {
	names := s.Names()
	stats := make([]VariableStats, 0, len(names))

	for _, name := range names {
		values, err := s.Series(name)
		if err != nil {
			continue
		}
		meta := s.Metadata(name)

		vs := VariableStats{
			Name:  name,
			Label: meta.Label,
			Unit:  meta.Unit,
			Min:   math.Inf(1),
			Max:   math.Inf(-1),
			Last:  coach.Missing(),
		}
		for _, v := range values {
			if coach.IsMissing(v) {
				vs.Missing++
				continue
			}
			vs.Samples++
			vs.Min = math.Min(vs.Min, v)
			vs.Max = math.Max(vs.Max, v)
			vs.Last = v
		}
		if vs.Samples == 0 {
			vs.Min, vs.Max = coach.Missing(), coach.Missing()
		}
		stats = append(stats, vs)
	}

	return stats
}

// ConsoleOutput prints run headers and summaries.
type ConsoleOutput struct {
	writer io.Writer
	colors *ColorScheme
	quiet  bool
	mu     sync.Mutex
}

// ConsoleOutputConfig contains configuration for ConsoleOutput.
type ConsoleOutputConfig struct {
	Writer      io.Writer
	Quiet       bool
	NoColor     bool
	ForceColors bool
}

// NewConsoleOutput creates a new console output handler.
func NewConsoleOutput(config ConsoleOutputConfig) *ConsoleOutput {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	return &ConsoleOutput{
		writer: config.Writer,
		colors: schemeFor(config.Writer, config.NoColor, config.ForceColors),
		quiet:  config.Quiet,
	}
}

// PrintHeader prints the run banner with the model parameters.
func (c *ConsoleOutput) PrintHeader(title, model string, params map[string]float64) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	line := strings.Repeat(boxHorizontal, 56)
	c.writeln(c.colors.Title.Sprint(line))
	c.writeln(c.colors.Title.Sprintf("%s - %s", title, model))
	c.writeln(c.colors.Title.Sprint(line))

	if len(params) > 0 {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%s", c.colors.Label.Sprint(k), formatValue(params[k]))
		}
		c.writeln("Params: " + strings.Join(parts, " "))
	}
	c.writeln("")
}

// PrintSummary prints per-variable statistics and, when res is not nil,
// the run outcome with per-step latency.
func (c *ConsoleOutput) PrintSummary(s *coach.Session, res *runner.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quiet {
		if res != nil {
			c.writeln(fmt.Sprintf("%s: %d steps (%s)", res.Model, res.Steps, res.Reason))
		}
		return
	}

	c.writeln(c.colors.Highlight.Sprintf("%s - %s steps", s.Title(), formatNumber(int64(s.Len()))))
	c.writeln("")

	stats := Summarize(s)
	if len(stats) == 0 {
		c.writeln(c.colors.Muted.Sprint("No variables recorded"))
	} else {
		c.writeVariableTable(stats)
	}
	c.writeln("")

	if res == nil {
		return
	}

	reason := c.colors.Success.Sprint(string(res.Reason))
	if res.Reason != runner.StopDone {
		reason = c.colors.Warning.Sprint(string(res.Reason))
	}
	c.writeln(fmt.Sprintf("Stopped:       %s", reason))
	c.writeln(fmt.Sprintf("Duration:      %s", c.colors.Value.Sprint(formatDuration(res.Elapsed))))

	if res.StepLatency.Count > 0 {
		c.writeln(c.colors.Title.Sprint("Step Latency:"))
		c.writeln(fmt.Sprintf("  Min:       %s", formatDurationShort(res.StepLatency.Min)))
		c.writeln(fmt.Sprintf("  P50:       %s", formatDurationShort(res.StepLatency.P50)))
		c.writeln(fmt.Sprintf("  P90:       %s", formatDurationShort(res.StepLatency.P90)))
		c.writeln(fmt.Sprintf("  P99:       %s", formatDurationShort(res.StepLatency.P99)))
		c.writeln(fmt.Sprintf("  Max:       %s", formatDurationShort(res.StepLatency.Max)))
	}
	c.writeln("")
}

// PrintError prints an error line.
func (c *ConsoleOutput) PrintError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeln(fmt.Sprintf("%s %s", c.colors.Error.Sprint("✗"), err))
}

// PrintSaved reports a written artifact.
func (c *ConsoleOutput) PrintSaved(kind, path string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeln(fmt.Sprintf("%s %s written to %s", c.colors.Success.Sprint("✓"), kind, path))
}

// PrintNotice prints a warning line.
func (c *ConsoleOutput) PrintNotice(msg string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeln(fmt.Sprintf("%s %s", c.colors.Warning.Sprint("!"), msg))
}

func (c *ConsoleOutput) writeVariableTable(stats []VariableStats) {
	headers := []string{"Variable", "Label", "Unit", "Samples", "Missing", "Min", "Max", "Last"}
	rows := make([][]string, len(stats))
	for i, vs := range stats {
		rows[i] = []string{
			vs.Name,
			vs.Label,
			vs.Unit,
			formatNumber(int64(vs.Samples)),
			formatNumber(int64(vs.Missing)),
			formatValue(vs.Min),
			formatValue(vs.Max),
			formatValue(vs.Last),
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	c.writeln(c.colors.Title.Sprint(padRow(headers, widths)))
	for _, row := range rows {
		c.writeln(padRow(row, widths))
	}
}

func padRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// writeln writes to the output with a newline.
func (c *ConsoleOutput) writeln(s string) {
	fmt.Fprintln(c.writer, s)
}

// formatValue prints a sample; missing values print as "-".
func formatValue(v float64) string {
	if coach.IsMissing(v) {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}

// formatDuration formats a duration in a human-readable format.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}

// formatDurationShort formats a duration in a short format.
func formatDurationShort(d time.Duration) string {
	if d < time.Microsecond {
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// formatNumber formats a number with thousands separators.
func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	offset := len(str) % 3
	if offset > 0 {
		result.WriteString(str[:offset])
	}
	for i := offset; i < len(str); i += 3 {
		if result.Len() > 0 {
			result.WriteString(",")
		}
		result.WriteString(str[i : i+3])
	}
	return result.String()
}
