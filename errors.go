package i18nkeys

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyKey indicates an empty lookup key.
	ErrEmptyKey = errors.New("i18nkeys: key must not be empty")
	// ErrKeyNotFound indicates a key path that addresses no leaf in any
	// consulted namespace.
	ErrKeyNotFound = errors.New("i18nkeys: key not found")
	// ErrNamespaceNotFound indicates an explicit namespace prefix that names
	// no loaded namespace.
	ErrNamespaceNotFound = errors.New("i18nkeys: namespace not found")
	// ErrNotALeaf indicates a path that addresses a nested subtree while
	// AllowObjectInChildren is disabled.
	ErrNotALeaf = errors.New("i18nkeys: key addresses an object, not a leaf")
	// ErrEmptyValue indicates an empty string leaf while ReturnEmptyString is
	// disabled.
	ErrEmptyValue = errors.New("i18nkeys: key resolves to an empty string")
	// ErrNullValue indicates a null leaf while ReturnNull is disabled.
	ErrNullValue = errors.New("i18nkeys: key resolves to null")
	// ErrEmptyResourceKey indicates an empty map key inside a namespace.
	ErrEmptyResourceKey = errors.New("i18nkeys: resource key must not be empty")
	// ErrSeparatorInKey indicates a resource key containing a configured
	// separator. Such keys are rejected outright; no escaping is attempted.
	ErrSeparatorInKey = errors.New("i18nkeys: resource key contains a separator")
	// ErrNestingDisabled indicates a nested resource map while the key
	// separator is disabled.
	ErrNestingDisabled = errors.New("i18nkeys: nested keys require a key separator")
	// ErrDepthExceeded indicates namespace nesting beyond the configured
	// maximum.
	ErrDepthExceeded = errors.New("i18nkeys: namespace nesting exceeds max depth")
	// ErrInvalidLeaf indicates a leaf value that is not a string, string
	// array or null.
	ErrInvalidLeaf = errors.New("i18nkeys: leaf value must be a string")
	// ErrLanguageNotLoaded indicates a comparison against a language the
	// resource set does not contain.
	ErrLanguageNotLoaded = errors.New("i18nkeys: language not loaded")
)

// ResolveError reports a failed key lookup. It always wraps one of the
// sentinel errors above so callers can branch with errors.Is.
type ResolveError struct {
	Key       string
	Namespace string
	Err       error
}

func (e *ResolveError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Namespace == "" {
		return fmt.Sprintf("i18nkeys: resolve %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("i18nkeys: resolve %q ns=%s: %v", e.Key, e.Namespace, e.Err)
}

func (e *ResolveError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func resolveError(key, namespace string, err error) *ResolveError {
	return &ResolveError{Key: key, Namespace: namespace, Err: err}
}

// FlattenError reports a namespace shape the flattener rejected. Path names
// the offending key address where known.
type FlattenError struct {
	Namespace string
	Path      string
	Err       error
}

func (e *FlattenError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path == "" {
		return fmt.Sprintf("i18nkeys: flatten ns=%s: %v", e.Namespace, e.Err)
	}
	return fmt.Sprintf("i18nkeys: flatten ns=%s path=%q: %v", e.Namespace, e.Path, e.Err)
}

func (e *FlattenError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func flattenError(namespace, path string, err error) *FlattenError {
	return &FlattenError{Namespace: namespace, Path: path, Err: err}
}
