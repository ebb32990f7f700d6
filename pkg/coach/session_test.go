package coach

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture is a renderer that keeps the last projection.
type capture struct {
	last  *Projection
	calls int
}

func (c *capture) Render(p *Projection) error {
	c.last = p
	c.calls++
	return nil
}

func TestSessionFreeFallScenario(t *testing.T) {
	r := &capture{}
	sim := NewSessionWithConfig(Config{Title: "Free fall", Renderer: r})

	require.NoError(t, sim.SetMetadata("t", "s", "Time"))
	require.NoError(t, sim.Track(V("t", 0.0), V("y", 1.8)))
	require.NoError(t, sim.Track(V("t", 0.01), V("y", 1.75)))
	require.NoError(t, sim.Track(V("t", 0.02), V("y", 1.69)))

	assert.Equal(t, 3, sim.Len())

	ts, err := sim.Series("t")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0, 0.01, 0.02}, ts)

	ys, err := sim.Series("y")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.8, 1.75, 1.69}, ys)

	require.NoError(t, sim.Plot(PlotOptions{Against: "t"}, "y"))
	require.Equal(t, 1, r.calls)

	p := r.last
	assert.Equal(t, "Free fall", p.Title)
	assert.Equal(t, "Time (s)", p.XLabel)
	assert.Equal(t, "y", p.YLabel)
	assert.Equal(t, 3, p.Len())
	require.Len(t, p.Y, 1)
	assert.Len(t, p.Y[0].Values, 3)
	assert.Equal(t, LayoutOverlay, p.Layout)
}

func TestSessionDefaultTitle(t *testing.T) {
	assert.Equal(t, DefaultTitle, NewSession("").Title())
	assert.Equal(t, "Pendulum", NewSession("Pendulum").Title())
}

func TestSessionsAreIndependent(t *testing.T) {
	a := NewSession("a")
	b := NewSession("b")

	require.NoError(t, a.Track(V("x", 1)))

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Names())
}

func TestTrackEmptyStep(t *testing.T) {
	sim := NewSession("empty")

	err := sim.Track()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyStep))
	assert.Equal(t, 0, sim.Len())
}

func TestTrackInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string", "1.5"},
		{"bool", true},
		{"nil", nil},
		{"slice", []float64{1}},
		{"NaN", math.NaN()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sim := NewSession("invalid")
			require.NoError(t, sim.Track(V("t", 0)))

			err := sim.Track(V("t", 1), V("x", tc.value))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidValue))

			var verr *VariableError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "x", verr.Name)

			// Rejected steps leave no trace
			assert.Equal(t, 1, sim.Len())
			assert.Equal(t, []string{"t"}, sim.Names())
		})
	}
}

func TestTrackAcceptsNumericKinds(t *testing.T) {
	sim := NewSession("kinds")

	err := sim.Track(
		V("int", 1), V("int8", int8(2)), V("int64", int64(3)),
		V("uint", uint(4)), V("uint32", uint32(5)),
		V("float32", float32(0.5)), V("float64", 0.25),
		V("inf", math.Inf(1)),
	)
	require.NoError(t, err)

	got, err := sim.Series("uint32")
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, got)

	got, _ = sim.Series("float32")
	assert.Equal(t, []float64{0.5}, got)
}

func TestTrackDuplicateName(t *testing.T) {
	sim := NewSession("dup")

	err := sim.Track(V("x", 1), V("x", 2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Equal(t, 0, sim.Len())
}

func TestTrackEmptyName(t *testing.T) {
	sim := NewSession("noname")

	err := sim.Track(V("", 1))
	assert.True(t, errors.Is(err, ErrInvalidName))
}

func TestBackfillThroughSession(t *testing.T) {
	sim := NewSession("backfill")
	require.NoError(t, sim.Track(V("t", 0)))
	require.NoError(t, sim.Track(V("t", 1)))
	require.NoError(t, sim.Track(V("t", 2), V("v", 5)))

	v, err := sim.Series("v")
	require.NoError(t, err)
	require.Len(t, v, 3)
	assert.True(t, IsMissing(v[0]))
	assert.True(t, IsMissing(v[1]))
	assert.Equal(t, 5.0, v[2])
}

func TestSetMetadataEmptyName(t *testing.T) {
	sim := NewSession("meta")
	err := sim.SetMetadata("", "m", "Height")
	assert.True(t, errors.Is(err, ErrInvalidName))
}

func TestMetadataBeforeAndAfterRecording(t *testing.T) {
	sim := NewSession("meta")
	require.NoError(t, sim.SetMetadata("y", "m", "Height"))

	// Metadata without data is inert
	assert.Empty(t, sim.Names())
	assert.Equal(t, []string{"y"}, sim.MetadataNames())

	require.NoError(t, sim.Track(V("y", 1)))
	require.NoError(t, sim.SetMetadata("y", "", "Hoogte"))

	p, err := sim.Projection(PlotOptions{}, "y")
	require.NoError(t, err)
	assert.Equal(t, "Hoogte (m)", p.YLabel)
}

func TestPlotMetadataDefault(t *testing.T) {
	sim := NewSession("defaults")
	require.NoError(t, sim.Track(V("x", 1), V("y", 2)))

	p, err := sim.Projection(PlotOptions{Against: "x"}, "y")
	require.NoError(t, err)

	assert.Equal(t, "y", p.Y[0].Metadata.Label)
	assert.Equal(t, "", p.Y[0].Metadata.Unit)
	assert.Equal(t, "x", p.XLabel)
}

func TestPlotUnknownVariable(t *testing.T) {
	r := &capture{}
	sim := NewSessionWithConfig(Config{Renderer: r})

	err := sim.Plot(PlotOptions{}, "y")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownVariable))

	require.NoError(t, sim.Track(V("y", 1)))
	err = sim.Plot(PlotOptions{Against: "t"}, "y")
	assert.True(t, errors.Is(err, ErrUnknownVariable))

	assert.Equal(t, 0, r.calls)
}

func TestPlotUnknownVariableWithoutRenderer(t *testing.T) {
	sim := NewSession("no renderer")

	err := sim.Plot(PlotOptions{}, "y")
	assert.ErrorIs(t, err, ErrUnknownVariable)
	assert.NotErrorIs(t, err, ErrNoRenderer)

	require.NoError(t, sim.Track(V("y", 1)))
	err = sim.Plot(PlotOptions{Against: "t"}, "y")
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestPlotImplicitStepAxis(t *testing.T) {
	sim := NewSession("steps")
	for i := 0; i < 4; i++ {
		require.NoError(t, sim.Track(V("y", i*i)))
	}

	p, err := sim.Projection(PlotOptions{}, "y")
	require.NoError(t, err)

	assert.True(t, p.X.Implicit)
	assert.Equal(t, StepAxisLabel, p.XLabel)
	assert.Equal(t, []float64{0, 1, 2, 3}, p.X.Values)
	assert.Equal(t, []float64{0, 1, 4, 9}, p.Y[0].Values)
}

func TestPlotOptionsOverrides(t *testing.T) {
	sim := NewSession("Session title")
	require.NoError(t, sim.SetMetadata("t", "s", "Time"))
	require.NoError(t, sim.Track(V("t", 0), V("y", 1), V("v", 2)))

	p, err := sim.Projection(PlotOptions{
		Against: "t",
		XLabel:  "Seconds",
		YLabel:  "State",
		Title:   "Custom",
		Layout:  LayoutSeparate,
		Width:   800,
		Height:  400,
	}, "y", "v")
	require.NoError(t, err)

	assert.Equal(t, "Custom", p.Title)
	assert.Equal(t, "Seconds", p.XLabel)
	assert.Equal(t, "State", p.YLabel)
	assert.Equal(t, LayoutSeparate, p.Layout)
	assert.Equal(t, 800, p.Width)
	assert.Equal(t, 400, p.Height)
	assert.Len(t, p.Y, 2)
}

func TestPlotMultipleSeriesNoSharedLabel(t *testing.T) {
	sim := NewSession("multi")
	require.NoError(t, sim.Track(V("y", 1), V("v", 2)))

	p, err := sim.Projection(PlotOptions{}, "y", "v")
	require.NoError(t, err)
	assert.Equal(t, "", p.YLabel)
}

func TestPlotInvalidOptions(t *testing.T) {
	sim := NewSession("opts")
	require.NoError(t, sim.Track(V("y", 1)))

	_, err := sim.Projection(PlotOptions{Layout: "stacked"}, "y")
	assert.True(t, errors.Is(err, ErrInvalidOption))

	_, err = sim.Projection(PlotOptions{Width: -1}, "y")
	assert.True(t, errors.Is(err, ErrInvalidOption))

	_, err = sim.Projection(PlotOptions{})
	assert.True(t, errors.Is(err, ErrInvalidName))
}

func TestPlotWithoutRenderer(t *testing.T) {
	sim := NewSession("none")
	require.NoError(t, sim.Track(V("y", 1)))

	err := sim.Plot(PlotOptions{}, "y")
	assert.True(t, errors.Is(err, ErrNoRenderer))

	r := &capture{}
	sim.SetRenderer(r)
	require.NoError(t, sim.Plot(PlotOptions{}, "y"))
	assert.Equal(t, 1, r.calls)
}

func TestPlotWithRendererFunc(t *testing.T) {
	sim := NewSession("func")
	require.NoError(t, sim.Track(V("y", 1)))

	renderErr := errors.New("backend down")
	err := sim.PlotWith(RendererFunc(func(p *Projection) error {
		return renderErr
	}), PlotOptions{}, "y")
	assert.ErrorIs(t, err, renderErr)
}

func TestProjectionIsReadOnlyCopy(t *testing.T) {
	sim := NewSession("copy")
	require.NoError(t, sim.Track(V("t", 0), V("y", 1)))

	p, err := sim.Projection(PlotOptions{Against: "t"}, "y")
	require.NoError(t, err)
	p.Y[0].Values[0] = 99
	p.X.Values[0] = 99

	y, _ := sim.Series("y")
	ts, _ := sim.Series("t")
	assert.Equal(t, 1.0, y[0])
	assert.Equal(t, 0.0, ts[0])
}

func TestPlotInterleavedWithTracking(t *testing.T) {
	r := &capture{}
	sim := NewSessionWithConfig(Config{Renderer: r})

	require.NoError(t, sim.Track(V("y", 1)))
	require.NoError(t, sim.Plot(PlotOptions{}, "y"))
	assert.Equal(t, 1, r.last.Len())

	require.NoError(t, sim.Track(V("y", 2)))
	require.NoError(t, sim.Plot(PlotOptions{}, "y"))
	assert.Equal(t, 2, r.last.Len())
}

func TestSessionLogsNewSeries(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	sim := NewSessionWithConfig(Config{Title: "log", Logger: logger})
	require.NoError(t, sim.Track(V("t", 0)))
	require.NoError(t, sim.Track(V("t", 1), V("a", 2)))

	out := buf.String()
	assert.Contains(t, out, `"variable":"a"`)
	assert.Contains(t, out, `"backfilled":1`)
	assert.Equal(t, 2, strings.Count(out, "new series"))
}

func TestVariableErrorMessage(t *testing.T) {
	err := &VariableError{Op: "track", Name: "x", Value: "abc", Err: ErrInvalidValue}
	assert.Equal(t, `track "x": coach: invalid value (got string abc)`, err.Error())

	err = &VariableError{Op: "plot", Name: "y", Err: ErrUnknownVariable}
	assert.Equal(t, `plot "y": coach: unknown variable`, err.Error())
}
