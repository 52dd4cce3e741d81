package nested

import (
	"reflect"
	"testing"
)

func TestCloneDetachesNestedContainers(t *testing.T) {
	original := map[string]any{
		"greeting": "hello",
		"menu": map[string]any{
			"items": []any{"open", "save"},
		},
	}

	clone := Clone(original)
	if !reflect.DeepEqual(clone, original) {
		t.Fatalf("expected clone to equal original, got %#v", clone)
	}

	clone["menu"].(map[string]any)["items"].([]any)[0] = "mutated"
	if original["menu"].(map[string]any)["items"].([]any)[0] != "open" {
		t.Fatalf("expected original to be unaffected by clone mutation")
	}
}

func TestMergeStrongWinsOnLeafConflicts(t *testing.T) {
	weak := map[string]any{
		"title": "old",
		"nav": map[string]any{
			"home": "Home",
			"back": "Back",
		},
	}
	strong := map[string]any{
		"title": "new",
		"nav": map[string]any{
			"back": "Go back",
		},
	}

	merged := Merge(strong, weak)
	if merged["title"] != "new" {
		t.Fatalf("expected strong leaf to win, got %v", merged["title"])
	}
	nav := merged["nav"].(map[string]any)
	if nav["home"] != "Home" || nav["back"] != "Go back" {
		t.Fatalf("expected nested maps to merge recursively, got %#v", nav)
	}
	if weak["nav"].(map[string]any)["back"] != "Back" {
		t.Fatalf("expected Merge to leave weak input untouched")
	}
}

func TestMergeReplacesMapWithLeaf(t *testing.T) {
	weak := map[string]any{"key": map[string]any{"nested": "value"}}
	strong := map[string]any{"key": "flat"}

	merged := Merge(strong, weak)
	if merged["key"] != "flat" {
		t.Fatalf("expected leaf to replace nested map, got %#v", merged["key"])
	}
}

func TestGetWalksSegments(t *testing.T) {
	tree := map[string]any{
		"errors": map[string]any{
			"http": map[string]any{
				"404": "not found",
			},
		},
	}

	value, ok := Get(tree, []string{"errors", "http", "404"})
	if !ok || value != "not found" {
		t.Fatalf("expected leaf lookup to succeed, got %v (%v)", value, ok)
	}

	if _, ok := Get(tree, []string{"errors", "missing"}); ok {
		t.Fatalf("expected missing segment to report not found")
	}
	if _, ok := Get(tree, []string{"errors", "http", "404", "deeper"}); ok {
		t.Fatalf("expected descent through a leaf to report not found")
	}
	if _, ok := Get(tree, nil); ok {
		t.Fatalf("expected empty path to report not found")
	}
}

func TestNormalizeRewritesAnyKeyedMaps(t *testing.T) {
	value := map[string]any{
		"outer": map[any]any{
			"inner": []any{map[any]any{"leaf": "v"}},
		},
	}

	normalized, ok := Normalize(value)
	if !ok {
		t.Fatalf("expected normalization to succeed")
	}
	outer, ok := normalized.(map[string]any)["outer"].(map[string]any)
	if !ok {
		t.Fatalf("expected outer map to be string keyed, got %#v", normalized)
	}
	item := outer["inner"].([]any)[0]
	if _, ok := item.(map[string]any); !ok {
		t.Fatalf("expected slice element to be normalized, got %#v", item)
	}
}

func TestNormalizeRejectsNonStringKeys(t *testing.T) {
	if _, ok := Normalize(map[any]any{42: "v"}); ok {
		t.Fatalf("expected non-string keys to be rejected")
	}
}
