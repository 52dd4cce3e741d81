package i18nkeys

// Kind identifies the inferred shape of a translation leaf or resolution.
type Kind string

const (
	// KindString is a plain translation string.
	KindString Kind = "string"
	// KindStringSlice is an array leaf of translation strings.
	KindStringSlice Kind = "string_slice"
	// KindObject marks a resolution that addressed a non-leaf subtree. Only
	// produced when AllowObjectInChildren is enabled.
	KindObject Kind = "object"
	// KindNil is an explicit null leaf.
	KindNil Kind = "nil"
	// KindWidened marks resolutions whose key contained a runtime-computed
	// segment: the precise leaf shape degrades to plain string.
	KindWidened Kind = "widened"
)

// Entry describes one addressable key produced by flattening a namespace.
// Entries are immutable after catalog construction.
type Entry struct {
	// Namespace names the owning namespace.
	Namespace string
	// Path is the canonical separator-joined leaf address within Namespace.
	Path string
	// Segments are the individual path components.
	Segments []string
	// Kind is the inferred leaf shape.
	Kind Kind
	// Value is the default-language value (string or []string; subtree maps
	// never appear here).
	Value any
	// Depth counts path segments.
	Depth int
	// Plural lists the plural categories present for this key, sorted. A
	// non-empty list means the key is plural aware and Value holds a
	// representative form.
	Plural []string
	// Contexts lists context suffixes that exist alongside this key, sorted.
	Contexts []string
}

// Resolution is the outcome of a successful key lookup.
type Resolution struct {
	// Key echoes the caller supplied key, namespace prefix included.
	Key string
	// Namespace is the namespace the key resolved in.
	Namespace string
	// Path is the canonical path within Namespace.
	Path string
	// Kind is the resolved value shape.
	Kind Kind
	// Value is the default-language value for literal resolutions; nil for
	// widened or object resolutions.
	Value any
	// Plural lists plural categories available for the key.
	Plural []string
	// Nullable reports whether the lookup may legally produce an absent
	// result. Mirrors the ReturnNull configuration.
	Nullable bool
	// Widened reports that the key was not a compile-time literal and the
	// resolution was degraded to a plain string shape.
	Widened bool
}

// Option configures catalog construction.
type Option func(*catalogConfig)

type catalogConfig struct {
	config    Config
	selector  Selector
	cache     ProgramCache
	functions *FunctionRegistry
	logger    SelectorLogger
	// err records the first option application failure for New to return.
	err error
}

func applyOptions(opts []Option) catalogConfig {
	cfg := catalogConfig{config: DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithConfig replaces the whole configuration in one call. Later options still
// apply on top.
func WithConfig(config Config) Option {
	return func(cfg *catalogConfig) {
		cfg.config = config
	}
}

// WithSelector configures the expression engine used by Select.
func WithSelector(selector Selector) Option {
	return func(cfg *catalogConfig) {
		cfg.selector = selector
	}
}
