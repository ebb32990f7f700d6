package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/coach/internal/models"
	"github.com/wesleyorama2/coach/pkg/coach"
)

// counter is a model that never finishes on its own.
type counter struct {
	n      int
	bad    int // step at which a non-numeric value is emitted (0 = never)
	cancel context.CancelFunc
	at     int
}

func (c *counter) Name() string                 { return "counter" }
func (c *counter) Variables() []models.Variable { return []models.Variable{{Name: "n"}} }
func (c *counter) Done() bool                   { return false }

func (c *counter) Step(dt float64) []coach.Value {
	c.n++
	if c.cancel != nil && c.n == c.at {
		c.cancel()
	}
	if c.bad > 0 && c.n == c.bad {
		return []coach.Value{coach.V("n", "oops")}
	}
	return []coach.Value{coach.V("n", c.n)}
}

func TestRunFreeFall(t *testing.T) {
	m, err := models.New("freefall", nil)
	require.NoError(t, err)

	sim := coach.NewSession("free fall")
	res, err := Run(context.Background(), sim, m, Config{Dt: 0.01, MaxSteps: 10000})
	require.NoError(t, err)

	assert.Equal(t, StopDone, res.Reason)
	assert.Equal(t, "freefall", res.Model)
	assert.Equal(t, res.Steps, sim.Len())
	assert.Equal(t, int64(res.Steps), res.StepLatency.Count)
	assert.LessOrEqual(t, res.StepLatency.Min, res.StepLatency.Max)
	assert.LessOrEqual(t, res.StepLatency.P50, res.StepLatency.P99)
}

func TestRunMaxSteps(t *testing.T) {
	sim := coach.NewSession("capped")
	res, err := Run(context.Background(), sim, &counter{}, Config{Dt: 1, MaxSteps: 25})
	require.NoError(t, err)

	assert.Equal(t, StopMaxSteps, res.Reason)
	assert.Equal(t, 25, res.Steps)
	assert.Equal(t, 25, sim.Len())
}

func TestRunDefaultMaxSteps(t *testing.T) {
	sim := coach.NewSession("default cap")
	res, err := Run(context.Background(), sim, &counter{}, Config{Dt: 1})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().MaxSteps, res.Steps)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := coach.NewSession("cancel")
	res, err := Run(ctx, sim, &counter{cancel: cancel, at: 7}, Config{Dt: 1, MaxSteps: 1000})
	require.NoError(t, err)

	assert.Equal(t, StopCanceled, res.Reason)
	assert.Equal(t, 7, res.Steps)
}

func TestRunInvalidDt(t *testing.T) {
	_, err := Run(context.Background(), coach.NewSession("x"), &counter{}, Config{Dt: 0})
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestRunTrackErrorAborts(t *testing.T) {
	sim := coach.NewSession("bad")
	_, err := Run(context.Background(), sim, &counter{bad: 3}, Config{Dt: 1, MaxSteps: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, coach.ErrInvalidValue))
	assert.Equal(t, 2, sim.Len())
}

func TestDeclareMetadata(t *testing.T) {
	m, err := models.New("freefall", nil)
	require.NoError(t, err)

	sim := coach.NewSession("free fall")
	require.NoError(t, DeclareMetadata(sim, m))

	for _, v := range m.Variables() {
		got := sim.Metadata(v.Name)
		assert.Equal(t, v.Unit, got.Unit, v.Name)
	}

	require.NoError(t, sim.SetMetadata("y", "", "Altitude"))
	assert.Equal(t, "Altitude", sim.Metadata("y").Label)
	assert.Equal(t, 0, sim.Len())
}
