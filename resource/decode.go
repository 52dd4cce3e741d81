package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/goliatone/go-i18n-keys/internal/nested"
)

// ErrUnsupportedFormat indicates a resource file extension without a decoder.
var ErrUnsupportedFormat = errors.New("resource: unsupported file format")

// decodeTree unmarshals payload according to the file extension and
// normalizes the result into a string-keyed nested map.
func decodeTree(name string, payload []byte) (map[string]any, error) {
	var raw map[string]any
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".json":
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("resource: decode %s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("resource: decode %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("resource: decode %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	normalized, ok := nested.Normalize(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTree, name)
	}
	tree, _ := normalized.(map[string]any)
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

// mergeTrees combines strong over weak, strong winning on leaf conflicts.
func mergeTrees(strong, weak map[string]any) map[string]any {
	return nested.Merge(strong, weak)
}
