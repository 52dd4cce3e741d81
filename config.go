package i18nkeys

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Format selects the resource format version the flattener follows. The two
// versions differ in plural suffix grammar and array leaf handling.
type Format string

const (
	// FormatV3 uses the legacy plural grammar (`_plural` and numeric
	// suffixes) and flattens array leaves into indexed keys.
	FormatV3 Format = "v3"
	// FormatV4 uses CLDR plural category suffixes and keeps array leaves as
	// addressable string-slice values.
	FormatV4 Format = "v4"
)

// Config parameterizes flattening and lookup resolution. It is fixed at
// catalog construction and never changes afterwards.
type Config struct {
	// DefaultNS is the namespace consulted for keys without an explicit
	// prefix. Defaults to "translation".
	DefaultNS string
	// FallbackNS lists namespaces consulted, in order, after DefaultNS
	// misses.
	FallbackNS []string
	// KeySeparator joins path segments. Defaults to ".". Empty disables
	// nesting: every key is a single flat segment.
	KeySeparator string
	// NSSeparator splits an explicit namespace prefix from the key. Defaults
	// to ":". Empty disables namespace prefixes.
	NSSeparator string
	// PluralSeparator splits plural category suffixes. Defaults to "_".
	PluralSeparator string
	// ContextSeparator splits context suffixes. Defaults to "_".
	ContextSeparator string
	// ReturnNull, when true, makes every resolution nullable: callers must
	// account for an absent result. When false the resolver asserts presence.
	ReturnNull bool
	// ReturnEmptyString, when false, treats empty string leaves as missing.
	// Defaults to true.
	ReturnEmptyString bool
	// Format is the resource format version. Defaults to FormatV4.
	Format Format
	// AllowObjectInChildren permits resolving a non-leaf path to its subtree
	// instead of failing with ErrNotALeaf.
	AllowObjectInChildren bool
	// MaxDepth bounds namespace nesting during flattening. Defaults to 64.
	MaxDepth int
}

const (
	defaultNS       = "translation"
	defaultMaxDepth = 64
)

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		DefaultNS:         defaultNS,
		KeySeparator:      ".",
		NSSeparator:       ":",
		PluralSeparator:   "_",
		ContextSeparator:  "_",
		ReturnEmptyString: true,
		Format:            FormatV4,
		MaxDepth:          defaultMaxDepth,
	}
}

var (
	// ErrConfigSeparator indicates an invalid or conflicting separator.
	ErrConfigSeparator = errors.New("i18nkeys: invalid separator configuration")
	// ErrConfigFormat indicates an unknown resource format version.
	ErrConfigFormat = errors.New("i18nkeys: unknown resource format")
)

// Validate checks separator and format constraints. A zero Config is not
// valid; start from DefaultConfig.
func (c Config) Validate() error {
	if c.DefaultNS == "" {
		return errors.New("i18nkeys: default namespace must not be empty")
	}
	if c.Format != FormatV3 && c.Format != FormatV4 {
		return fmt.Errorf("%w: %q", ErrConfigFormat, c.Format)
	}
	if c.MaxDepth < 1 {
		return errors.New("i18nkeys: max depth must be at least 1")
	}
	for _, sep := range []struct {
		name     string
		value    string
		optional bool
	}{
		{"keySeparator", c.KeySeparator, true},
		{"nsSeparator", c.NSSeparator, true},
		{"pluralSeparator", c.PluralSeparator, false},
		{"contextSeparator", c.ContextSeparator, false},
	} {
		if sep.value == "" {
			if sep.optional {
				continue
			}
			return fmt.Errorf("%w: %s must not be empty", ErrConfigSeparator, sep.name)
		}
		if utf8.RuneCountInString(sep.value) != 1 {
			return fmt.Errorf("%w: %s must be a single rune, got %q", ErrConfigSeparator, sep.name, sep.value)
		}
	}
	if c.KeySeparator != "" && c.KeySeparator == c.NSSeparator {
		return fmt.Errorf("%w: keySeparator and nsSeparator must differ", ErrConfigSeparator)
	}
	// Plural and context suffixes live inside key segments, so a key or
	// namespace separator sharing their rune would make every suffixed key
	// unaddressable.
	for _, sep := range []struct {
		name  string
		value string
	}{
		{"keySeparator", c.KeySeparator},
		{"nsSeparator", c.NSSeparator},
	} {
		if sep.value == "" {
			continue
		}
		if sep.value == c.PluralSeparator {
			return fmt.Errorf("%w: %s must differ from pluralSeparator", ErrConfigSeparator, sep.name)
		}
		if sep.value == c.ContextSeparator {
			return fmt.Errorf("%w: %s must differ from contextSeparator", ErrConfigSeparator, sep.name)
		}
	}
	return nil
}

// WithDefaultNS sets the default namespace.
func WithDefaultNS(ns string) Option {
	return func(cfg *catalogConfig) {
		cfg.config.DefaultNS = ns
	}
}

// WithFallbackNS sets the ordered fallback namespace list.
func WithFallbackNS(ns ...string) Option {
	return func(cfg *catalogConfig) {
		cfg.config.FallbackNS = append([]string(nil), ns...)
	}
}

// WithKeySeparator sets the path segment separator. Pass "" to disable
// nesting.
func WithKeySeparator(sep string) Option {
	return func(cfg *catalogConfig) {
		cfg.config.KeySeparator = sep
	}
}

// WithNSSeparator sets the namespace prefix separator. Pass "" to disable
// namespace prefixes in keys.
func WithNSSeparator(sep string) Option {
	return func(cfg *catalogConfig) {
		cfg.config.NSSeparator = sep
	}
}

// WithPluralSeparator sets the plural suffix separator.
func WithPluralSeparator(sep string) Option {
	return func(cfg *catalogConfig) {
		cfg.config.PluralSeparator = sep
	}
}

// WithContextSeparator sets the context suffix separator.
func WithContextSeparator(sep string) Option {
	return func(cfg *catalogConfig) {
		cfg.config.ContextSeparator = sep
	}
}

// WithReturnNull toggles nullable resolutions.
func WithReturnNull(enabled bool) Option {
	return func(cfg *catalogConfig) {
		cfg.config.ReturnNull = enabled
	}
}

// WithReturnEmptyString toggles whether empty string leaves count as present.
func WithReturnEmptyString(enabled bool) Option {
	return func(cfg *catalogConfig) {
		cfg.config.ReturnEmptyString = enabled
	}
}

// WithFormat selects the resource format version.
func WithFormat(format Format) Option {
	return func(cfg *catalogConfig) {
		cfg.config.Format = format
	}
}

// WithAllowObjectInChildren permits object-valued resolutions for non-leaf
// paths.
func WithAllowObjectInChildren(enabled bool) Option {
	return func(cfg *catalogConfig) {
		cfg.config.AllowObjectInChildren = enabled
	}
}

// WithMaxDepth bounds namespace nesting accepted by the flattener.
func WithMaxDepth(depth int) Option {
	return func(cfg *catalogConfig) {
		cfg.config.MaxDepth = depth
	}
}
