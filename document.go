package i18nkeys

import "encoding/json"

// DocumentFormat identifies the representation a catalog document encodes.
type DocumentFormat string

// DocumentFormatDescriptors represents the flattened key descriptors.
const DocumentFormatDescriptors DocumentFormat = "descriptors"

// Document is a JSON-serialisable snapshot of the catalog's key surface,
// intended for external tooling (editors, linters, translation pipelines).
type Document struct {
	Format     DocumentFormat        `json:"format"`
	SnapshotID string                `json:"snapshot_id,omitempty"`
	DefaultNS  string                `json:"default_ns"`
	Language   string                `json:"language"`
	Namespaces []NamespaceDescriptor `json:"namespaces"`
}

// NamespaceDescriptor lists the key descriptors of one namespace.
type NamespaceDescriptor struct {
	Name string          `json:"name"`
	Keys []KeyDescriptor `json:"keys"`
}

// KeyDescriptor describes a single addressable key.
type KeyDescriptor struct {
	Path     string   `json:"path"`
	Kind     Kind     `json:"kind"`
	Depth    int      `json:"depth"`
	Plural   []string `json:"plural,omitempty"`
	Contexts []string `json:"contexts,omitempty"`
}

// Document derives the descriptor document for the catalog. Namespaces and
// keys appear in sorted order.
func (c *Catalog) Document() Document {
	doc := Document{
		Format:     DocumentFormatDescriptors,
		SnapshotID: c.set.SnapshotID(),
		DefaultNS:  c.cfg.DefaultNS,
		Language:   c.set.DefaultLanguage().String(),
		Namespaces: make([]NamespaceDescriptor, 0, len(c.names)),
	}
	for _, name := range c.names {
		index := c.indexes[name]
		descriptor := NamespaceDescriptor{
			Name: name,
			Keys: make([]KeyDescriptor, 0, len(index.entries)),
		}
		for _, entry := range index.entries {
			descriptor.Keys = append(descriptor.Keys, KeyDescriptor{
				Path:     entry.Path,
				Kind:     entry.Kind,
				Depth:    entry.Depth,
				Plural:   entry.Plural,
				Contexts: entry.Contexts,
			})
		}
		doc.Namespaces = append(doc.Namespaces, descriptor)
	}
	return doc
}

// ToJSON serialises the document.
func (d Document) ToJSON() ([]byte, error) {
	type alias Document
	return json.Marshal(alias(d))
}
