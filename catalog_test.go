package i18nkeys

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-i18n-keys/resource"
)

func TestNewRequiresResourceSet(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil resource set")
	}
}

func TestNewValidatesConfiguration(t *testing.T) {
	set := testSet(t)

	_, err := New(set, WithKeySeparator(":"), WithNSSeparator(":"))
	if !errors.Is(err, ErrConfigSeparator) {
		t.Fatalf("expected ErrConfigSeparator, got %v", err)
	}

	_, err = New(set, WithFormat(Format("v99")))
	if !errors.Is(err, ErrConfigFormat) {
		t.Fatalf("expected ErrConfigFormat, got %v", err)
	}
}

func TestNewRejectsMalformedNamespaces(t *testing.T) {
	set, err := resource.New("en", map[string]map[string]map[string]any{
		"en": {
			"common": {"bad.key": "v"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error building resource set: %v", err)
	}

	if _, err := New(set, WithDefaultNS("common")); !errors.Is(err, ErrSeparatorInKey) {
		t.Fatalf("expected flatten diagnostics to fail construction, got %v", err)
	}
}

func TestCatalogAccessors(t *testing.T) {
	catalog := testCatalog(t)

	if got := catalog.Namespaces(); !reflect.DeepEqual(got, []string{"common", "errors"}) {
		t.Fatalf("unexpected namespaces: %v", got)
	}
	if got := catalog.Languages(); !reflect.DeepEqual(got, []string{"en", "fr"}) {
		t.Fatalf("unexpected languages: %v", got)
	}
	if got := catalog.DefaultLanguage().String(); got != "en" {
		t.Fatalf("unexpected default language: %s", got)
	}
	if catalog.SnapshotID() == "" {
		t.Fatalf("expected a snapshot id")
	}
	if catalog.Config().DefaultNS != "common" {
		t.Fatalf("unexpected config: %+v", catalog.Config())
	}

	entry, ok := catalog.Lookup("errors", "http.404")
	if !ok || entry.Value != "not found" {
		t.Fatalf("unexpected lookup result: %+v (%v)", entry, ok)
	}
	if _, ok := catalog.Lookup("nowhere", "x"); ok {
		t.Fatalf("expected lookup in unknown namespace to miss")
	}
	if _, ok := catalog.Lookup("errors", "http"); ok {
		t.Fatalf("expected object path to miss in Lookup")
	}

	if catalog.Entries("nowhere") != nil {
		t.Fatalf("expected nil entries for unknown namespace")
	}
	entries := catalog.Entries("errors")
	if len(entries) != 2 {
		t.Fatalf("unexpected entry count: %v", paths(entries))
	}
	if catalog.Len() == 0 {
		t.Fatalf("expected non-empty catalog")
	}
}

func TestCatalogEntriesAreDetached(t *testing.T) {
	catalog := testCatalog(t)

	entries := catalog.Entries("errors")
	entries[0] = Entry{}
	fresh := catalog.Entries("errors")
	if fresh[0].Path == "" {
		t.Fatalf("expected Entries to return a defensive copy")
	}
}
