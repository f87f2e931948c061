package analysis

import (
	"context"
	"fmt"
	"sync"
)

// Runner is one pluggable NLP technique. Run never returns an error: any
// internal failure is captured as the error variant of the Result so the
// orchestrator can keep running sibling techniques.
type Runner interface {
	// Name returns the unique technique identifier, e.g. "tfidf_svm".
	Name() string

	// Kind returns the capability type of this technique.
	Kind() Kind

	// Run executes the technique over the resolved texts and labels. Labels
	// may be ignored by techniques that do not use supervision.
	Run(ctx context.Context, texts, labels []string) Result
}

// Registry holds the available techniques in registration order.
type Registry struct {
	mu      sync.RWMutex
	runners map[string]Runner
	order   []string
}

// NewRegistry creates an empty technique registry.
func NewRegistry() *Registry {
	return &Registry{runners: make(map[string]Runner)}
}

// Register adds a technique. Duplicate names and empty names are rejected.
func (r *Registry) Register(runner Runner) error {
	if runner == nil {
		return fmt.Errorf("cannot register nil technique")
	}
	name := runner.Name()
	if name == "" {
		return fmt.Errorf("technique name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runners[name]; exists {
		return fmt.Errorf("technique %s already registered", name)
	}
	r.runners[name] = runner
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a technique by name.
func (r *Registry) Get(name string) (Runner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runner, exists := r.runners[name]
	if !exists {
		return nil, fmt.Errorf("technique %s not found", name)
	}
	return runner, nil
}

// Has reports whether a technique is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.runners[name]
	return exists
}

// Names returns the registered technique names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
