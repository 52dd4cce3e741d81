package i18nkeys

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Function represents a callable registered against selector engines.
type Function func(args ...any) (any, error)

// FunctionRegistry stores custom functions keyed by name. Lookup is
// case-insensitive; Names reports the casing used at registration so engines
// can bind the identifiers callers actually wrote.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]registeredFunction
}

type registeredFunction struct {
	name string
	fn   Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]registeredFunction),
	}
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("i18nkeys: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("i18nkeys: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]registeredFunction)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("i18nkeys: function %q already registered", name)
	}
	r.functions[key] = registeredFunction{name: name, fn: fn}
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]registeredFunction, len(r.functions)),
	}
	for key, registered := range r.functions {
		clone.functions[key] = registered
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("i18nkeys: function registry is nil")
	}
	r.mu.RLock()
	registered := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if registered.fn == nil {
		return nil, fmt.Errorf("i18nkeys: function %q not registered", name)
	}
	return registered.fn(args...)
}

// Names returns registered function names, in their original casing, sorted
// alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for _, registered := range r.functions {
		names = append(names, registered.name)
	}
	sort.Strings(names)
	return names
}

// WithFunctionRegistry configures the catalog's selector engines to use
// registry.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *catalogConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for selector expressions. A
// registration failure, such as a duplicate name, surfaces as an error from
// New.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *catalogConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		if err := cfg.functions.Register(name, fn); err != nil && cfg.err == nil {
			cfg.err = err
		}
	}
}
