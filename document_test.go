package i18nkeys

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDocumentDescribesCatalog(t *testing.T) {
	catalog := testCatalog(t)

	doc := catalog.Document()
	if doc.Format != DocumentFormatDescriptors {
		t.Fatalf("unexpected format: %s", doc.Format)
	}
	if doc.SnapshotID != catalog.SnapshotID() {
		t.Fatalf("expected document to carry the snapshot id")
	}
	if doc.DefaultNS != "common" || doc.Language != "en" {
		t.Fatalf("unexpected document header: %+v", doc)
	}
	if len(doc.Namespaces) != 2 {
		t.Fatalf("unexpected namespace count: %d", len(doc.Namespaces))
	}
	if doc.Namespaces[0].Name != "common" || doc.Namespaces[1].Name != "errors" {
		t.Fatalf("expected sorted namespaces: %+v", doc.Namespaces)
	}

	var item *KeyDescriptor
	for i := range doc.Namespaces[0].Keys {
		if doc.Namespaces[0].Keys[i].Path == "item" {
			item = &doc.Namespaces[0].Keys[i]
		}
	}
	if item == nil {
		t.Fatalf("expected plural base descriptor")
	}
	if !reflect.DeepEqual(item.Plural, []string{"one", "other"}) {
		t.Fatalf("unexpected plural categories: %v", item.Plural)
	}
}

func TestDocumentToJSON(t *testing.T) {
	catalog := testCatalog(t)

	payload, err := catalog.Document().ToJSON()
	if err != nil {
		t.Fatalf("unexpected error from ToJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if decoded["format"] != string(DocumentFormatDescriptors) {
		t.Fatalf("unexpected serialized format: %v", decoded["format"])
	}
}
