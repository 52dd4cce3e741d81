package i18nkeys

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-i18n-keys/resource"
)

// v4 plural suffixes follow the CLDR category names.
var cldrCategories = map[string]struct{}{
	"zero":  {},
	"one":   {},
	"two":   {},
	"few":   {},
	"many":  {},
	"other": {},
}

// flattenNamespace derives every addressable key path in ns together with the
// inferred leaf kind, then folds plural and context variants into their base
// entries. Output is sorted by path.
func flattenNamespace(ns resource.Namespace, cfg Config) ([]Entry, error) {
	f := &flattener{
		cfg:       cfg,
		namespace: ns.Name,
		byPath:    map[string]int{},
	}
	if err := f.walk(ns.Tree, nil); err != nil {
		return nil, err
	}
	f.groupPlurals()
	f.groupContexts()

	sort.Slice(f.entries, func(i, j int) bool {
		return f.entries[i].Path < f.entries[j].Path
	})
	return f.entries, nil
}

type flattener struct {
	cfg       Config
	namespace string
	entries   []Entry
	byPath    map[string]int
}

func (f *flattener) walk(node map[string]any, segments []string) error {
	if len(segments) >= f.cfg.MaxDepth {
		return flattenError(f.namespace, f.joinPath(segments), ErrDepthExceeded)
	}

	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := f.validateKey(key, segments); err != nil {
			return err
		}
		path := append(segments, key)
		switch value := node[key].(type) {
		case string:
			f.add(path, KindString, value)
		case nil:
			f.add(path, KindNil, nil)
		case []any:
			if err := f.addSlice(path, value); err != nil {
				return err
			}
		case map[string]any:
			if f.cfg.KeySeparator == "" {
				return flattenError(f.namespace, f.joinPath(path), ErrNestingDisabled)
			}
			if err := f.walk(value, path); err != nil {
				return err
			}
		default:
			return flattenError(f.namespace, f.joinPath(path),
				fmt.Errorf("%w: got %T", ErrInvalidLeaf, value))
		}
	}
	return nil
}

// validateKey enforces the separator policy: keys containing a configured
// separator are ambiguous addresses and are rejected, never escaped.
func (f *flattener) validateKey(key string, segments []string) error {
	if key == "" {
		return flattenError(f.namespace, f.joinPath(segments), ErrEmptyResourceKey)
	}
	if f.cfg.KeySeparator != "" && strings.Contains(key, f.cfg.KeySeparator) {
		return flattenError(f.namespace, key,
			fmt.Errorf("%w: %q contains key separator %q", ErrSeparatorInKey, key, f.cfg.KeySeparator))
	}
	if f.cfg.NSSeparator != "" && strings.Contains(key, f.cfg.NSSeparator) {
		return flattenError(f.namespace, key,
			fmt.Errorf("%w: %q contains namespace separator %q", ErrSeparatorInKey, key, f.cfg.NSSeparator))
	}
	return nil
}

func (f *flattener) addSlice(segments []string, values []any) error {
	strs := make([]string, len(values))
	for i, value := range values {
		s, ok := value.(string)
		if !ok {
			return flattenError(f.namespace, f.joinPath(segments),
				fmt.Errorf("%w: array element %d is %T", ErrInvalidLeaf, i, value))
		}
		strs[i] = s
	}
	if f.cfg.Format == FormatV3 {
		// v3 addresses array elements individually.
		for i, s := range strs {
			f.add(append(segments, strconv.Itoa(i)), KindString, s)
		}
		return nil
	}
	f.add(segments, KindStringSlice, strs)
	return nil
}

func (f *flattener) add(segments []string, kind Kind, value any) {
	path := f.joinPath(segments)
	entry := Entry{
		Namespace: f.namespace,
		Path:      path,
		Segments:  append([]string(nil), segments...),
		Kind:      kind,
		Value:     value,
		Depth:     len(segments),
	}
	f.byPath[path] = len(f.entries)
	f.entries = append(f.entries, entry)
}

func (f *flattener) joinPath(segments []string) string {
	return strings.Join(segments, f.cfg.KeySeparator)
}

type pluralForm struct {
	category string
	index    int
}

// groupPlurals folds suffixed plural leaves (user_one, user_other, ...) into
// a base entry carrying the category list. When no standalone base leaf
// exists one is synthesized from the representative form.
func (f *flattener) groupPlurals() {
	groups := map[string][]pluralForm{}
	bases := []string{}
	for i, entry := range f.entries {
		if len(entry.Segments) == 0 {
			continue
		}
		last := entry.Segments[len(entry.Segments)-1]
		base, category, ok := f.splitPluralSuffix(last)
		if !ok {
			continue
		}
		basePath := f.joinPath(replaceLast(entry.Segments, base))
		if _, seen := groups[basePath]; !seen {
			bases = append(bases, basePath)
		}
		groups[basePath] = append(groups[basePath], pluralForm{category: category, index: i})
	}
	sort.Strings(bases)

	for _, basePath := range bases {
		forms := groups[basePath]
		categories := make([]string, 0, len(forms))
		for _, form := range forms {
			categories = append(categories, form.category)
		}
		sort.Strings(categories)

		if idx, ok := f.byPath[basePath]; ok {
			f.entries[idx].Plural = categories
			continue
		}
		rep := f.entries[f.representative(forms).index]
		segments := replaceLast(rep.Segments, lastSegmentOf(basePath, rep.Segments, f.cfg.KeySeparator))
		f.entries = append(f.entries, Entry{
			Namespace: f.namespace,
			Path:      basePath,
			Segments:  segments,
			Kind:      rep.Kind,
			Value:     rep.Value,
			Depth:     len(segments),
			Plural:    categories,
		})
		f.byPath[basePath] = len(f.entries) - 1
	}
}

// representative prefers the catch-all category so the base entry carries the
// most general form.
func (f *flattener) representative(forms []pluralForm) pluralForm {
	preferred := "other"
	if f.cfg.Format == FormatV3 {
		preferred = "plural"
	}
	best := forms[0]
	for _, form := range forms {
		if form.category == preferred {
			return form
		}
		if form.category < best.category {
			best = form
		}
	}
	return best
}

// splitPluralSuffix splits a path segment into base and plural category.
// v4 recognises CLDR categories, optionally prefixed by "ordinal"; v3
// recognises "plural" and bare numeric suffixes.
func (f *flattener) splitPluralSuffix(segment string) (base, category string, ok bool) {
	sep := f.cfg.PluralSeparator
	idx := strings.LastIndex(segment, sep)
	if idx <= 0 || idx == len(segment)-len(sep) {
		return "", "", false
	}
	base, suffix := segment[:idx], segment[idx+len(sep):]

	if f.cfg.Format == FormatV3 {
		if suffix == "plural" || isDigits(suffix) {
			return base, suffix, true
		}
		return "", "", false
	}

	if _, isCategory := cldrCategories[suffix]; !isCategory {
		return "", "", false
	}
	if trimmed, found := strings.CutSuffix(base, sep+"ordinal"); found && trimmed != "" {
		return trimmed, "ordinal" + sep + suffix, true
	}
	return base, suffix, true
}

// groupContexts records context variants (friend_male) on their base entry.
// A suffix only counts as a context when the base key itself exists; other
// underscored keys stay plain entries.
func (f *flattener) groupContexts() {
	sep := f.cfg.ContextSeparator
	for _, entry := range f.entries {
		if len(entry.Segments) == 0 {
			continue
		}
		last := entry.Segments[len(entry.Segments)-1]
		idx := strings.LastIndex(last, sep)
		if idx <= 0 || idx == len(last)-len(sep) {
			continue
		}
		base, suffix := last[:idx], last[idx+len(sep):]
		if f.isPluralCategory(suffix) {
			continue
		}
		basePath := f.joinPath(replaceLast(entry.Segments, base))
		baseIdx, ok := f.byPath[basePath]
		if !ok {
			continue
		}
		f.entries[baseIdx].Contexts = insertSorted(f.entries[baseIdx].Contexts, suffix)
	}
}

func (f *flattener) isPluralCategory(suffix string) bool {
	if f.cfg.Format == FormatV3 {
		return suffix == "plural" || isDigits(suffix)
	}
	_, ok := cldrCategories[suffix]
	return ok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func replaceLast(segments []string, last string) []string {
	out := append([]string(nil), segments...)
	out[len(out)-1] = last
	return out
}

func lastSegmentOf(path string, _ []string, sep string) string {
	if sep == "" {
		return path
	}
	if idx := strings.LastIndex(path, sep); idx >= 0 {
		return path[idx+len(sep):]
	}
	return path
}

func insertSorted(values []string, value string) []string {
	idx := sort.SearchStrings(values, value)
	if idx < len(values) && values[idx] == value {
		return values
	}
	values = append(values, "")
	copy(values[idx+1:], values[idx:])
	values[idx] = value
	return values
}
