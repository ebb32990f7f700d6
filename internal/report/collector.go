package report

import (
	"sync"

	"github.com/wesleyorama2/coach/pkg/coach"
)

// Collector is a coach.Renderer that keeps projections so several plots
// can be written into one report.
type Collector struct {
	mu          sync.Mutex
	projections []*coach.Projection
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Render implements coach.Renderer.
func (c *Collector) Render(p *coach.Projection) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projections = append(c.projections, p)
	return nil
}

// Len returns the number of collected projections.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.projections)
}

// Projections returns the collected projections in render order.
func (c *Collector) Projections() []*coach.Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*coach.Projection, len(c.projections))
	copy(out, c.projections)
	return out
}

// WriteHTML writes every collected projection into one report.
func (c *Collector) WriteHTML(title, path string) error {
	return GenerateHTML(title, c.Projections(), path)
}
