package i18nkeys

import (
	"errors"

	"golang.org/x/text/language"

	"github.com/goliatone/go-i18n-keys/resource"
)

// Catalog is the immutable key index built from the default language of a
// resource set. All methods are read-only and safe for concurrent use.
type Catalog struct {
	cfg       Config
	set       *resource.Set
	names     []string
	indexes   map[string]*namespaceIndex
	selector  Selector
	cache     ProgramCache
	functions *FunctionRegistry
	logger    SelectorLogger
}

type namespaceIndex struct {
	namespace resource.Namespace
	entries   []Entry
	byPath    map[string]int
}

// New flattens the default language of set into a Catalog. Construction fails
// on invalid configuration or on any namespace the flattener rejects; a
// catalog is never built from partially inferred resources.
func New(set *resource.Set, opts ...Option) (*Catalog, error) {
	if set == nil {
		return nil, errors.New("i18nkeys: resource set must not be nil")
	}
	cfg := applyOptions(opts)
	if cfg.err != nil {
		return nil, cfg.err
	}
	if err := cfg.config.Validate(); err != nil {
		return nil, err
	}

	defaultLang := set.DefaultLanguage().String()
	names := set.NamespaceNames(defaultLang)
	catalog := &Catalog{
		cfg:       cfg.config,
		set:       set,
		names:     names,
		indexes:   make(map[string]*namespaceIndex, len(names)),
		selector:  cfg.selector,
		cache:     cfg.cache,
		functions: cfg.functions,
		logger:    cfg.logger,
	}

	for _, name := range names {
		ns, _ := set.Namespace(defaultLang, name)
		index, err := buildIndex(ns, cfg.config)
		if err != nil {
			return nil, err
		}
		catalog.indexes[name] = index
	}
	return catalog, nil
}

func buildIndex(ns resource.Namespace, cfg Config) (*namespaceIndex, error) {
	entries, err := flattenNamespace(ns, cfg)
	if err != nil {
		return nil, err
	}
	byPath := make(map[string]int, len(entries))
	for i := range entries {
		byPath[entries[i].Path] = i
	}
	return &namespaceIndex{
		namespace: ns,
		entries:   entries,
		byPath:    byPath,
	}, nil
}

// Config returns the effective configuration.
func (c *Catalog) Config() Config {
	return c.cfg
}

// SnapshotID identifies the resource snapshot this catalog was built from.
func (c *Catalog) SnapshotID() string {
	return c.set.SnapshotID()
}

// DefaultLanguage returns the language whose shape drives inference.
func (c *Catalog) DefaultLanguage() language.Tag {
	return c.set.DefaultLanguage()
}

// Languages returns every loaded language, sorted.
func (c *Catalog) Languages() []string {
	return c.set.Languages()
}

// Namespaces returns the names of all indexed namespaces, sorted.
func (c *Catalog) Namespaces() []string {
	return append([]string(nil), c.names...)
}

// Entries returns a copy of the flattened entries for ns, sorted by path.
// A nil slice means the namespace is unknown.
func (c *Catalog) Entries(ns string) []Entry {
	index, ok := c.indexes[ns]
	if !ok {
		return nil
	}
	return append([]Entry(nil), index.entries...)
}

// Lookup returns the entry addressed by (ns, path) without applying any
// nullability or fallback policy.
func (c *Catalog) Lookup(ns, path string) (Entry, bool) {
	index, ok := c.indexes[ns]
	if !ok {
		return Entry{}, false
	}
	idx, ok := index.byPath[path]
	if !ok {
		return Entry{}, false
	}
	return index.entries[idx], true
}

// Len returns the total number of entries across all namespaces.
func (c *Catalog) Len() int {
	total := 0
	for _, index := range c.indexes {
		total += len(index.entries)
	}
	return total
}
