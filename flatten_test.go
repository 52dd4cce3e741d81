package i18nkeys

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-i18n-keys/resource"
)

func flattenTree(t *testing.T, tree map[string]any, opts ...Option) []Entry {
	t.Helper()
	entries, err := flattenTreeErr(tree, opts...)
	if err != nil {
		t.Fatalf("unexpected flatten error: %v", err)
	}
	return entries
}

func flattenTreeErr(tree map[string]any, opts ...Option) ([]Entry, error) {
	cfg := applyOptions(opts)
	return flattenNamespace(resource.Namespace{Name: "test", Tree: tree}, cfg.config)
}

func paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.Path
	}
	return out
}

func entryByPath(t *testing.T, entries []Entry, path string) Entry {
	t.Helper()
	for _, entry := range entries {
		if entry.Path == path {
			return entry
		}
	}
	t.Fatalf("no entry for path %q in %v", path, paths(entries))
	return Entry{}
}

func TestFlattenDerivesSortedLeafPaths(t *testing.T) {
	entries := flattenTree(t, map[string]any{
		"greeting": "hello",
		"nav": map[string]any{
			"home": "Home",
			"deep": map[string]any{
				"leaf": "value",
			},
		},
	})

	want := []string{"greeting", "nav.deep.leaf", "nav.home"}
	if got := paths(entries); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected paths: got %v want %v", got, want)
	}

	leaf := entryByPath(t, entries, "nav.deep.leaf")
	if leaf.Kind != KindString || leaf.Value != "value" || leaf.Depth != 3 {
		t.Fatalf("unexpected leaf entry: %+v", leaf)
	}
	if !reflect.DeepEqual(leaf.Segments, []string{"nav", "deep", "leaf"}) {
		t.Fatalf("unexpected segments: %v", leaf.Segments)
	}
}

func TestFlattenArrayLeavesByFormat(t *testing.T) {
	tree := map[string]any{
		"tags": []any{"alpha", "beta"},
	}

	v4 := flattenTree(t, tree)
	entry := entryByPath(t, v4, "tags")
	if entry.Kind != KindStringSlice {
		t.Fatalf("expected v4 array leaf to keep slice kind, got %s", entry.Kind)
	}
	if !reflect.DeepEqual(entry.Value, []string{"alpha", "beta"}) {
		t.Fatalf("unexpected slice value: %#v", entry.Value)
	}

	v3 := flattenTree(t, tree, WithFormat(FormatV3))
	want := []string{"tags.0", "tags.1"}
	if got := paths(v3); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected v3 to flatten array indices, got %v", got)
	}
	if entryByPath(t, v3, "tags.1").Value != "beta" {
		t.Fatalf("unexpected indexed value")
	}
}

func TestFlattenRejectsNonStringArrayElements(t *testing.T) {
	_, err := flattenTreeErr(map[string]any{"tags": []any{"ok", 7}})
	if !errors.Is(err, ErrInvalidLeaf) {
		t.Fatalf("expected ErrInvalidLeaf, got %v", err)
	}
}

func TestFlattenRejectsNonStringScalars(t *testing.T) {
	_, err := flattenTreeErr(map[string]any{"count": 42})
	if !errors.Is(err, ErrInvalidLeaf) {
		t.Fatalf("expected ErrInvalidLeaf, got %v", err)
	}
	var flatErr *FlattenError
	if !errors.As(err, &flatErr) || flatErr.Path != "count" {
		t.Fatalf("expected FlattenError naming the path, got %v", err)
	}
}

func TestFlattenSeparatorInKeyPolicy(t *testing.T) {
	if _, err := flattenTreeErr(map[string]any{"bad.key": "v"}); !errors.Is(err, ErrSeparatorInKey) {
		t.Fatalf("expected key separator rejection, got %v", err)
	}
	if _, err := flattenTreeErr(map[string]any{"bad:key": "v"}); !errors.Is(err, ErrSeparatorInKey) {
		t.Fatalf("expected namespace separator rejection, got %v", err)
	}

	// The rejected character is configuration dependent: with "/" as the key
	// separator, dots become plain characters.
	entries := flattenTree(t, map[string]any{
		"bad.key": "v",
		"nested":  map[string]any{"leaf": "x"},
	}, WithKeySeparator("/"))
	if got := paths(entries); !reflect.DeepEqual(got, []string{"bad.key", "nested/leaf"}) {
		t.Fatalf("unexpected paths with custom separator: %v", got)
	}
}

func TestFlattenRejectsEmptyResourceKey(t *testing.T) {
	_, err := flattenTreeErr(map[string]any{"": "v"})
	if !errors.Is(err, ErrEmptyResourceKey) {
		t.Fatalf("expected ErrEmptyResourceKey, got %v", err)
	}
}

func TestFlattenNestingDisabledWithoutKeySeparator(t *testing.T) {
	_, err := flattenTreeErr(map[string]any{
		"nested": map[string]any{"leaf": "v"},
	}, WithKeySeparator(""))
	if !errors.Is(err, ErrNestingDisabled) {
		t.Fatalf("expected ErrNestingDisabled, got %v", err)
	}

	entries := flattenTree(t, map[string]any{"flat": "v"}, WithKeySeparator(""))
	if len(entries) != 1 || entries[0].Path != "flat" {
		t.Fatalf("expected flat keys to remain addressable, got %v", paths(entries))
	}
}

func TestFlattenMaxDepth(t *testing.T) {
	tree := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": "leaf",
			},
		},
	}
	if _, err := flattenTreeErr(tree, WithMaxDepth(2)); !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("expected ErrDepthExceeded, got %v", err)
	}
	if entries := flattenTree(t, tree, WithMaxDepth(3)); len(entries) != 1 {
		t.Fatalf("expected depth 3 to be accepted, got %v", paths(entries))
	}
}

func TestFlattenGroupsV4Plurals(t *testing.T) {
	entries := flattenTree(t, map[string]any{
		"item_one":   "{{count}} item",
		"item_other": "{{count}} items",
	})

	base := entryByPath(t, entries, "item")
	if !reflect.DeepEqual(base.Plural, []string{"one", "other"}) {
		t.Fatalf("unexpected plural categories: %v", base.Plural)
	}
	if base.Kind != KindString || base.Value != "{{count}} items" {
		t.Fatalf("expected base to carry the catch-all form, got %+v", base)
	}

	// Suffixed forms stay addressable as literal keys.
	if entryByPath(t, entries, "item_one").Value != "{{count}} item" {
		t.Fatalf("expected suffixed form to remain an entry")
	}
}

func TestFlattenGroupsV4OrdinalPlurals(t *testing.T) {
	entries := flattenTree(t, map[string]any{
		"place_ordinal_one":   "{{count}}st place",
		"place_ordinal_other": "{{count}}th place",
	})

	base := entryByPath(t, entries, "place")
	if !reflect.DeepEqual(base.Plural, []string{"ordinal_one", "ordinal_other"}) {
		t.Fatalf("unexpected ordinal categories: %v", base.Plural)
	}
}

func TestFlattenGroupsV3Plurals(t *testing.T) {
	entries := flattenTree(t, map[string]any{
		"key":        "one thing",
		"key_plural": "many things",
		"slot_0":     "none",
		"slot_1":     "one",
	}, WithFormat(FormatV3))

	base := entryByPath(t, entries, "key")
	if !reflect.DeepEqual(base.Plural, []string{"plural"}) {
		t.Fatalf("unexpected v3 plural marker: %v", base.Plural)
	}
	if base.Value != "one thing" {
		t.Fatalf("expected existing base leaf to keep its value, got %v", base.Value)
	}

	slot := entryByPath(t, entries, "slot")
	if !reflect.DeepEqual(slot.Plural, []string{"0", "1"}) {
		t.Fatalf("unexpected numeric categories: %v", slot.Plural)
	}
}

func TestFlattenV4IgnoresV3PluralSuffix(t *testing.T) {
	entries := flattenTree(t, map[string]any{"key_plural": "many"})
	for _, entry := range entries {
		if entry.Path == "key" {
			t.Fatalf("expected no base synthesis for _plural under v4")
		}
	}
}

func TestFlattenRecordsContextsOnBaseEntry(t *testing.T) {
	entries := flattenTree(t, map[string]any{
		"friend":        "A friend",
		"friend_male":   "A male friend",
		"friend_female": "A female friend",
		"loner_wolf":    "no base key",
	})

	base := entryByPath(t, entries, "friend")
	if !reflect.DeepEqual(base.Contexts, []string{"female", "male"}) {
		t.Fatalf("unexpected contexts: %v", base.Contexts)
	}

	// Without a base entry the suffix is just part of the key.
	if entry := entryByPath(t, entries, "loner_wolf"); len(entry.Contexts) != 0 {
		t.Fatalf("unexpected contexts on standalone key: %v", entry.Contexts)
	}
}

func TestFlattenNullLeafKind(t *testing.T) {
	entries := flattenTree(t, map[string]any{"pending": nil})
	if entryByPath(t, entries, "pending").Kind != KindNil {
		t.Fatalf("expected null leaf to flatten as KindNil")
	}
}
