package resource

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/goliatone/go-i18n-keys/internal/nested"
)

var (
	// ErrDefaultLanguageMissing indicates the default language has no loaded
	// namespaces.
	ErrDefaultLanguageMissing = errors.New("resource: default language has no resources")
	// ErrLanguageTag indicates a language code could not be parsed as BCP 47.
	ErrLanguageTag = errors.New("resource: invalid language tag")
	// ErrNamespaceNameRequired indicates an empty namespace name.
	ErrNamespaceNameRequired = errors.New("resource: namespace name must be provided")
	// ErrInvalidTree indicates a namespace tree that is not a JSON-like
	// string-keyed structure.
	ErrInvalidTree = errors.New("resource: namespace tree must be string keyed")
)

// Namespace is a named, immutable nested mapping of translation strings.
// The tree is deep copied on construction and must not be mutated afterwards.
type Namespace struct {
	Name string
	Tree map[string]any
}

// Set holds namespaces per language, keyed by canonical BCP 47 tag strings.
// Only the default language drives key inference; other languages are carried
// for coverage comparison.
type Set struct {
	defaultTag language.Tag
	snapshotID string
	languages  map[string]map[string]Namespace
}

// New builds a Set from in-memory trees keyed language → namespace → tree.
// Trees are normalized and deep copied so the Set is detached from the
// caller's maps.
func New(defaultLang string, data map[string]map[string]map[string]any, opts ...Option) (*Set, error) {
	cfg := applyOptions(opts)
	defaultTag, err := parseTag(defaultLang)
	if err != nil {
		return nil, err
	}

	set := &Set{
		defaultTag: defaultTag,
		snapshotID: cfg.snapshotID,
		languages:  make(map[string]map[string]Namespace, len(data)),
	}
	if set.snapshotID == "" {
		set.snapshotID = uuid.NewString()
	}

	// Source keys are walked in sorted order so languages that canonicalize
	// to the same tag merge deterministically, the later source key winning.
	for _, lang := range sortedKeys(data) {
		tag, err := parseTag(lang)
		if err != nil {
			return nil, err
		}
		namespaces := data[lang]
		for _, name := range sortedKeys(namespaces) {
			normalized, err := normalizeTree(name, namespaces[name])
			if err != nil {
				return nil, err
			}
			set.put(tag.String(), name, normalized)
		}
	}

	if _, ok := set.languages[defaultTag.String()]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageMissing, defaultTag)
	}
	return set, nil
}

// Option configures Set construction.
type Option func(*setConfig)

type setConfig struct {
	snapshotID string
}

// WithSnapshotID overrides the generated snapshot identifier. Useful when a
// caller wants reproducible provenance across reloads.
func WithSnapshotID(id string) Option {
	return func(cfg *setConfig) {
		cfg.snapshotID = id
	}
}

func applyOptions(opts []Option) setConfig {
	cfg := setConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// DefaultLanguage returns the canonical default language tag.
func (s *Set) DefaultLanguage() language.Tag {
	return s.defaultTag
}

// SnapshotID identifies this loaded snapshot for provenance.
func (s *Set) SnapshotID() string {
	return s.snapshotID
}

// Languages returns the canonical tags of all loaded languages, sorted.
func (s *Set) Languages() []string {
	out := make([]string, 0, len(s.languages))
	for lang := range s.languages {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// NamespaceNames returns the namespace names loaded for lang, sorted.
func (s *Set) NamespaceNames(lang string) []string {
	namespaces, ok := s.languages[canonical(lang)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(namespaces))
	for name := range namespaces {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Namespace returns the named namespace for lang. The returned tree is shared
// and must be treated as read-only.
func (s *Set) Namespace(lang, name string) (Namespace, bool) {
	namespaces, ok := s.languages[canonical(lang)]
	if !ok {
		return Namespace{}, false
	}
	ns, ok := namespaces[name]
	return ns, ok
}

// put merges tree into the (lang, name) slot, the new tree winning on leaf
// conflicts.
func (s *Set) put(lang, name string, tree map[string]any) {
	if s.languages[lang] == nil {
		s.languages[lang] = make(map[string]Namespace)
	}
	if existing, ok := s.languages[lang][name]; ok {
		tree = nested.Merge(tree, existing.Tree)
	}
	s.languages[lang][name] = Namespace{Name: name, Tree: tree}
}

func normalizeTree(name string, tree map[string]any) (map[string]any, error) {
	if name == "" {
		return nil, ErrNamespaceNameRequired
	}
	normalized, ok := nested.Normalize(nested.Clone(tree))
	if !ok {
		return nil, fmt.Errorf("%w: namespace %q", ErrInvalidTree, name)
	}
	out, _ := normalized.(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func parseTag(lang string) (language.Tag, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %v", ErrLanguageTag, lang, err)
	}
	return tag, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func canonical(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	return tag.String()
}
