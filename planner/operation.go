package planner

import (
	"sync"
	"time"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
)

// Plan tracks the lifecycle of a single global-path assignment, per
// spec.md §4.7's "Plan activation: becomes true when a new global path is
// received; becomes false on goal-reached or recovery trigger." Identified
// by a UUID rather than a sequence number, with no context-cancellation of
// its own since the DWA loop has no per-plan cancel path to expose.
type Plan struct {
	ID      uuid.UUID
	Started time.Time
	Path    []r2.Point

	mu     sync.Mutex
	active bool
}

// NewPlan activates a freshly received global path.
func NewPlan(path []r2.Point) *Plan {
	return &Plan{
		ID:      uuid.New(),
		Started: time.Now(),
		Path:    path,
		active:  true,
	}
}

// Active reports whether this plan is still being pursued.
func (p *Plan) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Complete deactivates the plan, whether by goal-reached or recovery
// trigger. It is idempotent.
func (p *Plan) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
}
