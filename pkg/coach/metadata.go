package coach

// Metadata describes how a variable is presented. It never changes stored values.
type Metadata struct {
	Unit  string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// DisplayLabel returns "Label (unit)", or just the label when the unit is empty.
func (m Metadata) DisplayLabel() string {
	if m.Unit == "" {
		return m.Label
	}
	return m.Label + " (" + m.Unit + ")"
}

// Registry maps variable names to metadata.
type Registry struct {
	entries map[string]Metadata
	order   []string
}

// NewRegistry creates an empty metadata registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Metadata),
	}
}

// Set registers or updates the entry for name.
//
// A non-empty unit or label replaces the stored one; an empty argument
// leaves the stored field untouched.
func (r *Registry) Set(name, unit, label string) {
	entry, exists := r.entries[name]
	if !exists {
		r.order = append(r.order, name)
	}
	if unit != "" {
		entry.Unit = unit
	}
	if label != "" {
		entry.Label = label
	}
	r.entries[name] = entry
}

// Get returns the resolved entry for name. Missing entries and missing labels
// fall back to the variable name with an empty unit.
func (r *Registry) Get(name string) Metadata {
	entry := r.entries[name]
	if entry.Label == "" {
		entry.Label = name
	}
	return entry
}

// Has reports whether metadata was ever set for name.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
