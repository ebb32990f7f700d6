package coach

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTitle is used when a session is created without a title.
const DefaultTitle = "Simulation"

// Config contains configuration for a Session.
type Config struct {
	// Title is shown as the chart title
	Title string

	// Renderer receives projections from Plot (optional)
	Renderer Renderer

	// Logger receives debug output about new series and back-fills
	Logger zerolog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Title:  DefaultTitle,
		Logger: zerolog.Nop(),
	}
}

// Session records aligned series for one simulation run.
//
// The zero value is not usable; create sessions with NewSession or
// NewSessionWithConfig. Sessions share no state with each other.
type Session struct {
	id       string
	title    string
	metadata *Registry
	store    *Store
	renderer Renderer
	log      zerolog.Logger
}

// NewSession creates a session with the given title and default configuration.
func NewSession(title string) *Session {
	cfg := DefaultConfig()
	cfg.Title = title
	return NewSessionWithConfig(cfg)
}

// NewSessionWithConfig creates a session with custom configuration.
func NewSessionWithConfig(cfg Config) *Session {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}

	id := uuid.NewString()

	return &Session{
		id:       id,
		title:    cfg.Title,
		metadata: NewRegistry(),
		store:    NewStore(),
		renderer: cfg.Renderer,
		log:      cfg.Logger.With().Str("session", id).Logger(),
	}
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Title returns the session title.
func (s *Session) Title() string {
	return s.title
}

// SetRenderer replaces the renderer used by Plot.
func (s *Session) SetRenderer(r Renderer) {
	s.renderer = r
}

// Track records one step.
//
// The whole step is validated before anything is stored, so a failed call
// leaves the session unchanged. Variables not seen before start a new
// series, back-filled with missing markers for earlier steps.
func (s *Session) Track(values ...Value) error {
	samples, err := validateStep(values)
	if err != nil {
		return err
	}

	introduced := s.store.AppendStep(samples)
	step := s.store.Len() - 1

	for _, name := range introduced {
		s.log.Debug().
			Str("variable", name).
			Int("backfilled", step).
			Msg("new series")
	}
	s.log.Trace().Int("step", step).Int("values", len(samples)).Msg("step recorded")

	return nil
}

// SetMetadata sets the unit and label for a variable. Empty arguments keep
// what was set before. The variable does not have to be recorded yet.
func (s *Session) SetMetadata(name, unit, label string) error {
	if name == "" {
		return &VariableError{Op: "set metadata", Name: name, Err: ErrInvalidName}
	}
	s.metadata.Set(name, unit, label)
	return nil
}

// Metadata returns the resolved metadata for a variable. It never fails.
func (s *Session) Metadata(name string) Metadata {
	return s.metadata.Get(name)
}

// MetadataNames returns the names that have explicit metadata.
func (s *Session) MetadataNames() []string {
	return s.metadata.Names()
}

// Len returns the number of recorded steps.
func (s *Session) Len() int {
	return s.store.Len()
}

// Series returns a copy of the recorded values for name.
func (s *Session) Series(name string) ([]float64, error) {
	return s.store.Series(name)
}

// Names returns the recorded variables in order of first appearance.
func (s *Session) Names() []string {
	return s.store.Names()
}

// Projection builds the read-only view Plot hands to a renderer.
func (s *Session) Projection(opts PlotOptions, ys ...string) (*Projection, error) {
	if len(ys) == 0 {
		return nil, fmt.Errorf("plot: %w: no dependent variable given", ErrInvalidName)
	}
	if err := checkOptions(opts); err != nil {
		return nil, err
	}

	var x Axis
	if opts.Against == "" {
		x = stepAxis(s.store.Len())
	} else {
		axis, err := s.axis(opts.Against)
		if err != nil {
			return nil, err
		}
		x = axis
	}

	p := &Projection{
		Title:  s.title,
		X:      x,
		Y:      make([]Axis, 0, len(ys)),
		XLabel: x.Label(),
		Layout: opts.Layout,
		Width:  opts.Width,
		Height: opts.Height,
	}
	if p.Layout == "" {
		p.Layout = LayoutOverlay
	}
	if opts.Title != "" {
		p.Title = opts.Title
	}
	if opts.XLabel != "" {
		p.XLabel = opts.XLabel
	}

	for _, name := range ys {
		axis, err := s.axis(name)
		if err != nil {
			return nil, err
		}
		p.Y = append(p.Y, axis)
	}

	switch {
	case opts.YLabel != "":
		p.YLabel = opts.YLabel
	case len(p.Y) == 1:
		p.YLabel = p.Y[0].Label()
	}

	return p, nil
}

// Plot builds a projection and passes it to the session renderer.
func (s *Session) Plot(opts PlotOptions, ys ...string) error {
	return s.PlotWith(s.renderer, opts, ys...)
}

// PlotWith is Plot with an explicit renderer.
func (s *Session) PlotWith(r Renderer, opts PlotOptions, ys ...string) error {
	p, err := s.Projection(opts, ys...)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrNoRenderer
	}

	s.log.Debug().
		Strs("y", ys).
		Str("against", p.X.Name).
		Int("points", p.Len()).
		Msg("plot")

	return r.Render(p)
}

func (s *Session) axis(name string) (Axis, error) {
	values, err := s.store.Series(name)
	if err != nil {
		return Axis{}, &VariableError{Op: "plot", Name: name, Err: ErrUnknownVariable}
	}
	return Axis{
		Name:     name,
		Metadata: s.metadata.Get(name),
		Values:   values,
	}, nil
}
