package i18nkeys

import (
	"fmt"
	"sort"
)

// Diff reports how a language's resources deviate from the default-language
// catalog. Keys are fully qualified (namespace prefix included).
type Diff struct {
	// Language is the compared language's canonical tag.
	Language string
	// Missing lists keys present in the default language but absent here.
	Missing []string
	// Extra lists keys present here but absent from the default language.
	Extra []string
	// Mismatched lists keys whose value shape differs between languages.
	Mismatched []Mismatch
}

// Mismatch pairs a key with the two conflicting shapes.
type Mismatch struct {
	Key  string
	Want Kind
	Got  Kind
}

// Empty reports whether the compared language matches the default shape.
func (d Diff) Empty() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0 && len(d.Mismatched) == 0
}

// Compare flattens lang's namespaces under the catalog configuration and
// diffs them against the default-language entries. Inference itself still
// trusts only the default language; Compare makes the "other languages are
// assumed to match" assumption checkable.
//
// Plural category sets are allowed to differ between languages (CLDR rules
// legitimately vary), so only the presence and shape of keys are compared.
func (c *Catalog) Compare(lang string) (Diff, error) {
	defaultLang := c.set.DefaultLanguage().String()
	diff := Diff{Language: lang}

	found := false
	for _, loaded := range c.set.Languages() {
		if loaded == lang {
			found = true
			break
		}
	}
	if !found {
		return Diff{}, fmt.Errorf("%w: %q", ErrLanguageNotLoaded, lang)
	}
	if lang == defaultLang {
		return diff, nil
	}

	theirs := map[string]Kind{}
	for _, name := range c.set.NamespaceNames(lang) {
		ns, _ := c.set.Namespace(lang, name)
		entries, err := flattenNamespace(ns, c.cfg)
		if err != nil {
			return Diff{}, err
		}
		for _, entry := range entries {
			theirs[c.qualifiedKey(entry)] = entry.Kind
		}
	}

	seen := map[string]struct{}{}
	for _, name := range c.names {
		for _, entry := range c.indexes[name].entries {
			key := c.qualifiedKey(entry)
			seen[key] = struct{}{}
			kind, ok := theirs[key]
			if !ok {
				diff.Missing = append(diff.Missing, key)
				continue
			}
			if kind != entry.Kind {
				diff.Mismatched = append(diff.Mismatched, Mismatch{
					Key:  key,
					Want: entry.Kind,
					Got:  kind,
				})
			}
		}
	}
	for key := range theirs {
		if _, ok := seen[key]; !ok {
			diff.Extra = append(diff.Extra, key)
		}
	}

	sort.Strings(diff.Missing)
	sort.Strings(diff.Extra)
	sort.Slice(diff.Mismatched, func(i, j int) bool {
		return diff.Mismatched[i].Key < diff.Mismatched[j].Key
	})
	return diff, nil
}
