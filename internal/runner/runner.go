// Package runner drives a model's stepping loop into a coach session.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/rs/zerolog"

	"github.com/wesleyorama2/coach/internal/models"
	"github.com/wesleyorama2/coach/pkg/coach"
)

// ErrInvalidConfig indicates unusable runner settings.
var ErrInvalidConfig = errors.New("invalid runner config")

// StopReason tells why a run ended.
type StopReason string

const (
	// StopDone means the model reached its own stop condition
	StopDone StopReason = "done"

	// StopMaxSteps means the step cap was hit first
	StopMaxSteps StopReason = "max-steps"

	// StopCanceled means the context was canceled or timed out
	StopCanceled StopReason = "canceled"
)

// Config contains configuration for a run.
type Config struct {
	// Dt is the integration step in model time units (required, > 0)
	Dt float64

	// MaxSteps caps the number of steps (default: 100000)
	MaxSteps int

	// Timeout bounds wall-clock time (0 = no timeout)
	Timeout time.Duration

	// Logger receives run start/stop events
	Logger zerolog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Dt:       0.01,
		MaxSteps: 100000,
		Logger:   zerolog.Nop(),
	}
}

// LatencyStats summarises wall-clock time spent per step.
type LatencyStats struct {
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   time.Duration `json:"mean"`
	StdDev time.Duration `json:"stdDev"`
	P50    time.Duration `json:"p50"`
	P90    time.Duration `json:"p90"`
	P99    time.Duration `json:"p99"`
	Count  int64         `json:"count"`
}

// Result describes a finished run.
type Result struct {
	Model       string        `json:"model"`
	Steps       int           `json:"steps"`
	Reason      StopReason    `json:"reason"`
	Elapsed     time.Duration `json:"elapsed"`
	StepLatency LatencyStats  `json:"stepLatency"`
}

// Histogram bounds: 1ns to 1 minute per step, 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = int64(time.Minute)
	histogramSigFigs = 3
)

// Run steps m until it is done, MaxSteps is reached, or ctx ends, recording
// every step into session. A Track error aborts the run.
func Run(ctx context.Context, session *coach.Session, m models.Model, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultConfig().MaxSteps
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	log := cfg.Logger.With().Str("model", m.Name()).Str("session", session.ID()).Logger()
	log.Info().Float64("dt", cfg.Dt).Int("maxSteps", cfg.MaxSteps).Msg("run started")

	hist := hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs)
	start := time.Now()
	result := &Result{Model: m.Name()}

	for {
		if m.Done() {
			result.Reason = StopDone
			break
		}
		if result.Steps >= cfg.MaxSteps {
			result.Reason = StopMaxSteps
			break
		}
		if ctx.Err() != nil {
			result.Reason = StopCanceled
			break
		}

		stepStart := time.Now()
		values := m.Step(cfg.Dt)
		if err := session.Track(values...); err != nil {
			return nil, fmt.Errorf("step %d: %w", result.Steps, err)
		}
		recordLatency(hist, time.Since(stepStart))

		result.Steps++
	}

	result.Elapsed = time.Since(start)
	result.StepLatency = statsFrom(hist)

	ev := log.Info()
	if result.Reason == StopMaxSteps {
		ev = log.Warn()
	}
	ev.Int("steps", result.Steps).
		Str("reason", string(result.Reason)).
		Dur("elapsed", result.Elapsed).
		Msg("run finished")

	return result, nil
}

// DeclareMetadata registers the units and labels a model declares for its
// variables. Call it before Run; later SetMetadata calls override it.
func DeclareMetadata(session *coach.Session, m models.Model) error {
	for _, v := range m.Variables() {
		if err := session.SetMetadata(v.Name, v.Unit, v.Label); err != nil {
			return fmt.Errorf("%s: %w", m.Name(), err)
		}
	}
	return nil
}

// recordLatency clamps d into the histogram range.
func recordLatency(h *hdrhistogram.Histogram, d time.Duration) {
	v := int64(d)
	if v < histogramMin {
		v = histogramMin
	}
	if v > histogramMax {
		v = histogramMax
	}
	_ = h.RecordValue(v)
}

func statsFrom(h *hdrhistogram.Histogram) LatencyStats {
	if h.TotalCount() == 0 {
		return LatencyStats{}
	}
	return LatencyStats{
		Min:    time.Duration(h.Min()),
		Max:    time.Duration(h.Max()),
		Mean:   time.Duration(h.Mean()),
		StdDev: time.Duration(h.StdDev()),
		P50:    time.Duration(h.ValueAtQuantile(50)),
		P90:    time.Duration(h.ValueAtQuantile(90)),
		P99:    time.Duration(h.ValueAtQuantile(99)),
		Count:  h.TotalCount(),
	}
}
