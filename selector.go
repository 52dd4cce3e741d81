package i18nkeys

import (
	"time"
)

// SelectionContext carries the bindings available to a selector expression
// while it inspects a single catalog entry.
type SelectionContext struct {
	// Key is the fully qualified key (namespace prefix included when the
	// namespace separator is configured).
	Key string
	// Entry is the flattened entry under inspection.
	Entry Entry
	// Args holds caller supplied values referenced by the expression.
	Args map[string]any
}

func (ctx SelectionContext) withDefaultArgs() SelectionContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

// binding exposes the entry fields under the names selector expressions see.
func (ctx SelectionContext) binding() map[string]any {
	segments := make([]any, len(ctx.Entry.Segments))
	for i, segment := range ctx.Entry.Segments {
		segments[i] = segment
	}
	plural := make([]any, len(ctx.Entry.Plural))
	for i, category := range ctx.Entry.Plural {
		plural[i] = category
	}
	contexts := make([]any, len(ctx.Entry.Contexts))
	for i, name := range ctx.Entry.Contexts {
		contexts[i] = name
	}
	return map[string]any{
		"key":      ctx.Key,
		"ns":       ctx.Entry.Namespace,
		"path":     ctx.Entry.Path,
		"segments": segments,
		"depth":    ctx.Entry.Depth,
		"kind":     string(ctx.Entry.Kind),
		"plural":   plural,
		"contexts": contexts,
		"value":    ctx.Entry.Value,
		"args":     ctx.Args,
	}
}

// Selector evaluates a boolean expression against catalog entries.
type Selector interface {
	Select(ctx SelectionContext, expr string) (bool, error)
	Compile(expr string) (CompiledSelector, error)
}

// CompiledSelector is a reusable selector program.
type CompiledSelector interface {
	Select(ctx SelectionContext) (bool, error)
}

// Select returns every entry, across all namespaces, for which expr evaluates
// to true. Expressions see the bindings documented on SelectionContext. The
// configured selector engine is used, defaulting to the expr backend.
func (c *Catalog) Select(expr string) ([]Entry, error) {
	return c.SelectWith(nil, expr)
}

// SelectWith behaves like Select with additional args exposed to the
// expression.
func (c *Catalog) SelectWith(args map[string]any, expr string) ([]Entry, error) {
	selector := c.resolveSelector()
	engine := selectorEngineName(selector)
	start := time.Now()

	matched, total, err := c.selectEntries(selector, args, expr)
	c.selectorLogger().LogSelection(SelectorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Total:    total,
		Matched:  len(matched),
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, err
	}
	return matched, nil
}

func (c *Catalog) selectEntries(selector Selector, args map[string]any, expr string) ([]Entry, int, error) {
	compiled, err := selector.Compile(expr)
	if err != nil {
		return nil, 0, err
	}

	total := 0
	var matched []Entry
	for _, name := range c.names {
		index := c.indexes[name]
		for i := range index.entries {
			total++
			entry := index.entries[i]
			ctx := SelectionContext{
				Key:   c.qualifiedKey(entry),
				Entry: entry,
				Args:  args,
			}
			ok, err := compiled.Select(ctx.withDefaultArgs())
			if err != nil {
				return nil, total, err
			}
			if ok {
				matched = append(matched, entry)
			}
		}
	}
	return matched, total, nil
}

func (c *Catalog) qualifiedKey(entry Entry) string {
	if c.cfg.NSSeparator == "" {
		return entry.Path
	}
	return entry.Namespace + c.cfg.NSSeparator + entry.Path
}

func (c *Catalog) resolveSelector() Selector {
	if c.selector != nil {
		return c.selector
	}
	var exprOpts []ExprSelectorOption
	if c.cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(c.cache))
	}
	if c.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(c.functions))
	}
	return NewExprSelector(exprOpts...)
}

func selectorEngineName(selector Selector) string {
	if named, ok := selector.(interface{ engineName() string }); ok {
		return named.engineName()
	}
	return "custom"
}
