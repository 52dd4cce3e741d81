package i18nkeys

import (
	"errors"
	"strings"

	"github.com/goliatone/go-i18n-keys/internal/nested"
)

// Resolve computes the expected lookup shape for a compile-time-known key.
// The key may carry an explicit namespace prefix; otherwise the default and
// fallback namespaces are consulted in order. A key that addresses no leaf is
// a usage error, never silently defaulted.
func (c *Catalog) Resolve(key string) (Resolution, error) {
	resolution, _, err := c.resolve(key, false)
	return resolution, err
}

// ResolveTrace behaves like Resolve and additionally reports the namespace
// lookups that were attempted, in order.
func (c *Catalog) ResolveTrace(key string) (Resolution, Trace, error) {
	return c.resolve(key, true)
}

// ResolveIn resolves path directly inside ns, bypassing prefix parsing and
// namespace fallback.
func (c *Catalog) ResolveIn(ns, path string) (Resolution, error) {
	if _, ok := c.indexes[ns]; !ok {
		return Resolution{}, resolveError(path, ns, ErrNamespaceNotFound)
	}
	resolution, err := c.lookupIn(ns, path)
	if err != nil {
		return Resolution{}, err
	}
	resolution.Key = path
	return resolution, nil
}

// ResolveDynamic covers keys assembled at runtime: prefix is the literal part
// of the key and everything below it is unknown. When any entry lives under
// the prefix the resolution is widened to a plain string shape; when nothing
// does the lookup is rejected like any other unmatched key.
func (c *Catalog) ResolveDynamic(prefix string) (Resolution, error) {
	if prefix == "" {
		return Resolution{}, resolveError(prefix, "", ErrEmptyKey)
	}
	ns, path, explicit := c.splitKey(prefix)
	candidates, err := c.candidates(ns, explicit, prefix)
	if err != nil {
		return Resolution{}, err
	}

	for _, candidate := range candidates {
		if c.hasPrefix(candidate, path) {
			return Resolution{
				Key:       prefix,
				Namespace: candidate,
				Path:      path,
				Kind:      KindWidened,
				Nullable:  c.cfg.ReturnNull,
				Widened:   true,
			}, nil
		}
	}
	return Resolution{}, resolveError(prefix, candidates[0], ErrKeyNotFound)
}

func (c *Catalog) resolve(key string, traced bool) (Resolution, Trace, error) {
	trace := Trace{Key: key}
	if key == "" {
		return Resolution{}, trace, resolveError(key, "", ErrEmptyKey)
	}
	ns, path, explicit := c.splitKey(key)
	candidates, err := c.candidates(ns, explicit, key)
	if err != nil {
		return Resolution{}, trace, err
	}

	var firstErr error
	for _, candidate := range candidates {
		resolution, err := c.lookupIn(candidate, path)
		if traced {
			trace.Steps = append(trace.Steps, traceStep(candidate, path, resolution, err))
		}
		if err == nil {
			resolution.Key = key
			return resolution, trace, nil
		}
		// Only a plain miss falls through to the next namespace; shape and
		// nullability violations surface immediately as usage errors.
		if !errors.Is(err, ErrKeyNotFound) {
			firstErr = err
			break
		}
	}
	if firstErr != nil {
		return Resolution{}, trace, firstErr
	}
	return Resolution{}, trace, resolveError(key, candidates[0], ErrKeyNotFound)
}

// lookupIn applies the nullability and shape policies to the entry addressed
// by (ns, path). The namespace must exist in the index.
func (c *Catalog) lookupIn(ns, path string) (Resolution, error) {
	index := c.indexes[ns]
	if idx, ok := index.byPath[path]; ok {
		entry := index.entries[idx]
		switch entry.Kind {
		case KindNil:
			if !c.cfg.ReturnNull {
				return Resolution{}, resolveError(path, ns, ErrNullValue)
			}
		case KindString:
			if !c.cfg.ReturnEmptyString && entry.Value == "" {
				return Resolution{}, resolveError(path, ns, ErrEmptyValue)
			}
		}
		return Resolution{
			Namespace: ns,
			Path:      entry.Path,
			Kind:      entry.Kind,
			Value:     entry.Value,
			Plural:    entry.Plural,
			Nullable:  c.cfg.ReturnNull,
		}, nil
	}

	if node, ok := nested.Get(index.namespace.Tree, c.splitPath(path)); ok {
		if _, isObject := node.(map[string]any); isObject {
			if c.cfg.AllowObjectInChildren {
				return Resolution{
					Namespace: ns,
					Path:      path,
					Kind:      KindObject,
					Nullable:  c.cfg.ReturnNull,
				}, nil
			}
			return Resolution{}, resolveError(path, ns, ErrNotALeaf)
		}
	}
	return Resolution{}, resolveError(path, ns, ErrKeyNotFound)
}

// splitKey separates an explicit namespace prefix from the key path.
func (c *Catalog) splitKey(key string) (ns, path string, explicit bool) {
	if c.cfg.NSSeparator == "" {
		return "", key, false
	}
	idx := strings.Index(key, c.cfg.NSSeparator)
	if idx < 0 {
		return "", key, false
	}
	return key[:idx], key[idx+len(c.cfg.NSSeparator):], true
}

func (c *Catalog) splitPath(path string) []string {
	if c.cfg.KeySeparator == "" {
		return []string{path}
	}
	return strings.Split(path, c.cfg.KeySeparator)
}

// candidates returns the ordered namespaces a lookup consults. Explicit
// prefixes name exactly one namespace; implicit keys walk the default
// namespace and then the configured fallbacks, skipping namespaces that are
// not loaded.
func (c *Catalog) candidates(ns string, explicit bool, key string) ([]string, error) {
	if explicit {
		if _, ok := c.indexes[ns]; !ok {
			return nil, resolveError(key, ns, ErrNamespaceNotFound)
		}
		return []string{ns}, nil
	}
	out := make([]string, 0, 1+len(c.cfg.FallbackNS))
	for _, candidate := range append([]string{c.cfg.DefaultNS}, c.cfg.FallbackNS...) {
		if _, ok := c.indexes[candidate]; ok {
			out = append(out, candidate)
		}
	}
	if len(out) == 0 {
		return nil, resolveError(key, c.cfg.DefaultNS, ErrNamespaceNotFound)
	}
	return out, nil
}

// hasPrefix reports whether any entry in ns lives at or below path.
func (c *Catalog) hasPrefix(ns, path string) bool {
	index := c.indexes[ns]
	if path == "" {
		return len(index.entries) > 0
	}
	if _, ok := index.byPath[path]; ok {
		return true
	}
	if c.cfg.KeySeparator == "" {
		return false
	}
	prefix := path + c.cfg.KeySeparator
	for i := range index.entries {
		if strings.HasPrefix(index.entries[i].Path, prefix) {
			return true
		}
	}
	return false
}
