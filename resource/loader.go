package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches the conventional <lang>/<namespace>.<ext> layout.
const DefaultPattern = "*/*.{json,toml,yaml,yml}"

var (
	// ErrNoResourceFiles indicates the glob pattern matched nothing.
	ErrNoResourceFiles = errors.New("resource: no resource files matched")
	// ErrBadLayout indicates a matched path that does not follow the
	// <lang>/<namespace>.<ext> layout.
	ErrBadLayout = errors.New("resource: path must follow <lang>/<namespace>.<ext>")
)

// LoadOption configures filesystem loading.
type LoadOption func(*loadConfig)

type loadConfig struct {
	pattern    string
	setOptions []Option
}

// WithPattern overrides the doublestar glob used to discover resource files.
// The pattern is matched against paths relative to the loaded filesystem root
// and every match must still resolve to <lang>/<namespace>.<ext>.
func WithPattern(pattern string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.pattern = pattern
	}
}

// WithSetOptions forwards Set construction options to Load.
func WithSetOptions(opts ...Option) LoadOption {
	return func(cfg *loadConfig) {
		cfg.setOptions = append(cfg.setOptions, opts...)
	}
}

// Load discovers and decodes resource files from fsys. Files are decoded by
// extension (JSON, TOML or YAML), grouped into namespaces per language
// directory, and deep merged when several files target the same namespace.
// Matches are processed in sorted path order so merges are deterministic,
// later paths winning on leaf conflicts.
func Load(fsys fs.FS, defaultLang string, opts ...LoadOption) (*Set, error) {
	cfg := loadConfig{pattern: DefaultPattern}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	matches, err := doublestar.Glob(fsys, cfg.pattern)
	if err != nil {
		return nil, fmt.Errorf("resource: glob %q: %w", cfg.pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: pattern %q", ErrNoResourceFiles, cfg.pattern)
	}
	sort.Strings(matches)

	data := map[string]map[string]map[string]any{}
	for _, match := range matches {
		lang, name, err := splitResourcePath(match)
		if err != nil {
			return nil, err
		}
		payload, err := fs.ReadFile(fsys, match)
		if err != nil {
			return nil, fmt.Errorf("resource: read %s: %w", match, err)
		}
		tree, err := decodeTree(match, payload)
		if err != nil {
			return nil, err
		}
		if data[lang] == nil {
			data[lang] = map[string]map[string]any{}
		}
		if existing, ok := data[lang][name]; ok {
			tree = mergeTrees(tree, existing)
		}
		data[lang][name] = tree
	}

	return New(defaultLang, data, cfg.setOptions...)
}

func splitResourcePath(match string) (lang, name string, err error) {
	dir, file := path.Split(match)
	dir = strings.Trim(dir, "/")
	if dir == "" || strings.Contains(dir, "/") {
		return "", "", fmt.Errorf("%w: %s", ErrBadLayout, match)
	}
	ext := path.Ext(file)
	name = strings.TrimSuffix(file, ext)
	if name == "" {
		return "", "", fmt.Errorf("%w: %s", ErrBadLayout, match)
	}
	return dir, name, nil
}
