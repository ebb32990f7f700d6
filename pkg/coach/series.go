package coach

import "math"

// Missing returns the marker stored for steps in which a variable had no value.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Sample is one validated (name, value) pair of a step.
type Sample struct {
	Name  string
	Value float64
}

// Store keeps one append-only series per variable name.
//
// Invariant: after every AppendStep, each series holds exactly Len samples.
// Variables first seen at step k are back-filled with k missing markers;
// known variables absent from a step receive a missing marker for it.
type Store struct {
	series map[string][]float64
	order  []string
	steps  int
}

// NewStore creates an empty series store.
func NewStore() *Store {
	return &Store{
		series: make(map[string][]float64),
	}
}

// AppendStep appends one step. Names in samples must be unique; the
// Session validates that before calling.
//
// It returns the names that appeared for the first time in this step.
func (s *Store) AppendStep(samples []Sample) []string {
	var introduced []string
	present := make(map[string]struct{}, len(samples))

	for _, sample := range samples {
		present[sample.Name] = struct{}{}

		values, exists := s.series[sample.Name]
		if !exists {
			// Back-fill the steps that ran before this variable existed
			values = make([]float64, s.steps, s.steps+64)
			for i := range values {
				values[i] = Missing()
			}
			s.order = append(s.order, sample.Name)
			introduced = append(introduced, sample.Name)
		}
		s.series[sample.Name] = append(values, sample.Value)
	}

	for _, name := range s.order {
		if _, ok := present[name]; !ok {
			s.series[name] = append(s.series[name], Missing())
		}
	}

	s.steps++
	s.checkAlignment()

	return introduced
}

// checkAlignment panics with *AlignmentError if any series has drifted.
func (s *Store) checkAlignment() {
	for _, name := range s.order {
		if got := len(s.series[name]); got != s.steps {
			panic(&AlignmentError{Name: name, Got: got, Want: s.steps})
		}
	}
}

// Len returns the number of recorded steps, which is also the length of every series.
func (s *Store) Len() int {
	return s.steps
}

// Has reports whether name has ever been recorded.
func (s *Store) Has(name string) bool {
	_, ok := s.series[name]
	return ok
}

// Series returns a copy of the series for name.
func (s *Store) Series(name string) ([]float64, error) {
	values, ok := s.series[name]
	if !ok {
		return nil, &VariableError{Op: "series", Name: name, Err: ErrUnknownVariable}
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out, nil
}

// Names returns the recorded variable names in order of first appearance.
func (s *Store) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}
