package strategy

import (
	"sort"
	"sync"

	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// Registry maps strategy names to decision functions. Unknown names fail
// lookup deterministically, before any simulation state exists.
type Registry struct {
	strategies map[string]Strategy
	mu         sync.RWMutex
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
		mu:         sync.RWMutex{},
	}
}

// Register adds a strategy to the registry.
func (r *Registry) Register(s Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.strategies[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExists, "Register: strategy with name %s already registered", name)
	}

	r.strategies[name] = s

	return nil
}

// Get retrieves a strategy by name.
func (r *Registry) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.strategies[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy, "Get: strategy with name %s not found", name)
	}

	return s, nil
}

// List returns the sorted names of all registered strategies.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// DefaultRegistry returns a registry populated with the full strategy
// catalogue under their canonical names.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	for _, s := range []Strategy{
		NewTechnicalSummary(),
		NewLowFrequency(),
		NewADXFiltered(),
		NewMomentumReversal(),
		NewPositionSizing(),
		NewTrendFiltered(),
		NewMarketAdaptive(),
		NewRSI(),
		NewMACDCross(),
		NewBuyHoldFirst(),
	} {
		// names are canonical constants, duplicates impossible here
		_ = r.Register(s)
	}

	return r
}
