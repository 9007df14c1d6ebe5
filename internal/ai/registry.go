package ai

import (
	"fmt"
	"sync"

	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

// Registry maps engine identifiers to their runners.
// It provides thread-safe registration and lookup.
type Registry struct {
	mu      sync.RWMutex
	runners map[domain.EngineID]Runner
}

// NewRegistry creates a new empty runner registry.
func NewRegistry() *Registry {
	return &Registry{
		runners: make(map[domain.EngineID]Runner),
	}
}

// Register adds a runner for an engine.
// If a runner already exists for the engine, it is replaced.
func (r *Registry) Register(engine domain.EngineID, runner Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runners[engine] = runner
}

// Get retrieves the runner for an engine.
// Returns ErrBackendNotFound if no runner is registered for the engine.
func (r *Registry) Get(engine domain.EngineID) (Runner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runner, ok := r.runners[engine]
	if !ok {
		return nil, fmt.Errorf("%w: %s", rberrors.ErrBackendNotFound, engine)
	}
	return runner, nil
}

// Has checks if a runner is registered for the engine.
func (r *Registry) Has(engine domain.EngineID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.runners[engine]
	return ok
}
