package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/wesleyorama2/coach/pkg/coach"
)

// Default chart size in character cells.
const (
	DefaultChartWidth  = 60
	DefaultChartHeight = 15

	minChartWidth  = 10
	minChartHeight = 4
)

var seriesMarkers = []rune{'*', '+', 'o', 'x', '#', '@'}

// TerminalRenderer draws projections as ASCII line charts. Projection
// width and height are read as character cells.
type TerminalRenderer struct {
	Writer      io.Writer
	NoColor     bool
	ForceColors bool
}

// NewTerminalRenderer creates a renderer writing to w (stdout when nil).
func NewTerminalRenderer(w io.Writer, noColor bool) *TerminalRenderer {
	return &TerminalRenderer{Writer: w, NoColor: noColor}
}

// Render implements coach.Renderer.
func (r *TerminalRenderer) Render(p *coach.Projection) error {
	w := r.Writer
	if w == nil {
		w = os.Stdout
	}
	colors := schemeFor(w, r.NoColor, r.ForceColors)

	var groups [][]coach.Axis
	if p.Layout == coach.LayoutSeparate {
		for _, y := range p.Y {
			groups = append(groups, []coach.Axis{y})
		}
	} else {
		groups = [][]coach.Axis{p.Y}
	}

	var sb strings.Builder
	for i, ys := range groups {
		title, yLabel := p.Title, p.YLabel
		if p.Layout == coach.LayoutSeparate {
			title = fmt.Sprintf("%s: %s", p.Title, ys[0].Label())
			yLabel = ys[0].Label()
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		drawChart(&sb, colors, chartFrame{
			title:  title,
			xLabel: p.XLabel,
			yLabel: yLabel,
			x:      p.X,
			ys:     ys,
			width:  clampSize(p.Width, DefaultChartWidth, minChartWidth),
			height: clampSize(p.Height, DefaultChartHeight, minChartHeight),
		})
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

type chartFrame struct {
	title  string
	xLabel string
	yLabel string
	x      coach.Axis
	ys     []coach.Axis
	width  int
	height int
}

func clampSize(v, def, floor int) int {
	if v <= 0 {
		return def
	}
	if v < floor {
		return floor
	}
	return v
}

// bounds returns the range over steps where both x and some y are finite.
func bounds(x coach.Axis, ys []coach.Axis) (xmin, xmax, ymin, ymax float64, ok bool) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)

	for _, y := range ys {
		for i, xv := range x.Values {
			if i >= len(y.Values) || !finite(xv) || !finite(y.Values[i]) {
				continue
			}
			yv := y.Values[i]
			xmin, xmax = math.Min(xmin, xv), math.Max(xmax, xv)
			ymin, ymax = math.Min(ymin, yv), math.Max(ymax, yv)
			ok = true
		}
	}

	if !ok {
		return 0, 0, 0, 0, false
	}
	if xmin == xmax {
		xmin, xmax = xmin-0.5, xmax+0.5
	}
	if ymin == ymax {
		ymin, ymax = ymin-0.5, ymax+0.5
	}
	return xmin, xmax, ymin, ymax, true
}

func drawChart(sb *strings.Builder, colors *ColorScheme, c chartFrame) {
	sb.WriteString(colors.Title.Sprint(c.title))
	sb.WriteString("\n")

	xmin, xmax, ymin, ymax, ok := bounds(c.x, c.ys)
	if !ok {
		sb.WriteString(colors.Muted.Sprint("(no data)"))
		sb.WriteString("\n")
		return
	}

	// cells holds the index of the last series drawn in each cell, -1 if empty
	cells := make([][]int, c.height)
	for row := range cells {
		cells[row] = make([]int, c.width)
		for col := range cells[row] {
			cells[row][col] = -1
		}
	}

	for si, y := range c.ys {
		for i, xv := range c.x.Values {
			if i >= len(y.Values) || !finite(xv) || !finite(y.Values[i]) {
				continue
			}
			col := scale(xv, xmin, xmax, c.width)
			row := c.height - 1 - scale(y.Values[i], ymin, ymax, c.height)
			cells[row][col] = si
		}
	}

	top, bottom := formatTick(ymax), formatTick(ymin)
	gutter := len(top)
	if len(bottom) > gutter {
		gutter = len(bottom)
	}

	if c.yLabel != "" {
		sb.WriteString(colors.Label.Sprint(c.yLabel))
		sb.WriteString("\n")
	}

	for row := range cells {
		tick := ""
		switch row {
		case 0:
			tick = top
		case c.height - 1:
			tick = bottom
		}
		sb.WriteString(fmt.Sprintf("%*s │", gutter, tick))
		for _, si := range cells[row] {
			if si < 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(colors.SeriesColor(si).Sprint(string(seriesMarkers[si%len(seriesMarkers)])))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat(" ", gutter+1))
	sb.WriteString("└")
	sb.WriteString(strings.Repeat("─", c.width))
	sb.WriteString("\n")

	left, right := formatTick(xmin), formatTick(xmax)
	gap := c.width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	sb.WriteString(strings.Repeat(" ", gutter+2))
	sb.WriteString(left + strings.Repeat(" ", gap) + right)
	sb.WriteString("\n")

	if c.xLabel != "" {
		pad := gutter + 2 + (c.width-runewidth.StringWidth(c.xLabel))/2
		if pad < 0 {
			pad = 0
		}
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(colors.Label.Sprint(c.xLabel))
		sb.WriteString("\n")
	}

	if len(c.ys) > 1 {
		for si, y := range c.ys {
			marker := string(seriesMarkers[si%len(seriesMarkers)])
			sb.WriteString(fmt.Sprintf("  %s %s\n", colors.SeriesColor(si).Sprint(marker), y.Label()))
		}
	}
}

// scale maps v in [lo, hi] onto 0..n-1.
func scale(v, lo, hi float64, n int) int {
	i := int(math.Round((v - lo) / (hi - lo) * float64(n-1)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.3g", v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
