package coach

import (
	"errors"
	"fmt"
)

// ErrInvalidOption indicates an unrecognised display option.
var ErrInvalidOption = errors.New("coach: invalid plot option")

// StepAxisLabel labels the implicit independent axis used when no Against variable is given.
const StepAxisLabel = "step"

// Layout selects how several dependent variables are drawn.
type Layout string

const (
	// LayoutOverlay draws all dependent variables on one chart.
	LayoutOverlay Layout = "overlay"

	// LayoutSeparate draws one chart per dependent variable.
	LayoutSeparate Layout = "separate"
)

// Valid reports whether l is a known layout. The empty layout means overlay.
func (l Layout) Valid() bool {
	return l == "" || l == LayoutOverlay || l == LayoutSeparate
}

// PlotOptions are the display options recognised by Plot. All fields are optional.
type PlotOptions struct {
	// Against names the independent variable (default: implicit step index)
	Against string `json:"against,omitempty" yaml:"against,omitempty"`

	// XLabel and YLabel override the labels derived from metadata
	XLabel string `json:"xLabel,omitempty" yaml:"xLabel,omitempty"`
	YLabel string `json:"yLabel,omitempty" yaml:"yLabel,omitempty"`

	// Title overrides the session title
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Layout is overlay (default) or separate
	Layout Layout `json:"layout,omitempty" yaml:"layout,omitempty"`

	// Width and Height are a size hint for the renderer (0 = renderer default)
	Width  int `json:"width,omitempty" yaml:"width,omitempty"`
	Height int `json:"height,omitempty" yaml:"height,omitempty"`
}

// Axis is one named series with its resolved metadata.
type Axis struct {
	Name     string
	Metadata Metadata
	Values   []float64

	// Implicit is set for the generated step-index axis
	Implicit bool
}

// Label returns the axis display label.
func (a Axis) Label() string {
	return a.Metadata.DisplayLabel()
}

// Projection is the read-only bundle handed to a Renderer. Its slices are
// copies; a renderer may keep or modify them freely.
type Projection struct {
	Title  string
	X      Axis
	Y      []Axis
	XLabel string
	YLabel string
	Layout Layout
	Width  int
	Height int
}

// Len returns the number of points per series.
func (p *Projection) Len() int {
	return len(p.X.Values)
}

// Renderer turns a projection into a visual artifact.
type Renderer interface {
	Render(p *Projection) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(p *Projection) error

// Render calls f(p).
func (f RendererFunc) Render(p *Projection) error {
	return f(p)
}

// stepAxis builds the implicit 0..n-1 axis.
func stepAxis(n int) Axis {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}
	return Axis{
		Name:     StepAxisLabel,
		Metadata: Metadata{Label: StepAxisLabel},
		Values:   values,
		Implicit: true,
	}
}

func checkOptions(opts PlotOptions) error {
	if !opts.Layout.Valid() {
		return fmt.Errorf("%w: unknown layout %q", ErrInvalidOption, opts.Layout)
	}
	if opts.Width < 0 || opts.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidOption, opts.Width, opts.Height)
	}
	return nil
}
