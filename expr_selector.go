package i18nkeys

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprSelectorOption configures an expr selector instance.
type ExprSelectorOption func(*exprSelector)

// ExprWithProgramCache wires a ProgramCache into the expr selector.
func ExprWithProgramCache(cache ProgramCache) ExprSelectorOption {
	return func(s *exprSelector) {
		s.cache = cache
	}
}

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr selector.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprSelectorOption {
	return func(s *exprSelector) {
		if registry == nil {
			return
		}
		s.registry = registry.Clone()
	}
}

// exprSelector evaluates selector expressions using github.com/expr-lang/expr.
type exprSelector struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewExprSelector constructs a Selector backed by expr-lang/expr.
func NewExprSelector(opts ...ExprSelectorOption) Selector {
	s := &exprSelector{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *exprSelector) engineName() string { return "expr" }

// Select compiles and runs expression against a single entry context.
func (s *exprSelector) Select(ctx SelectionContext, expression string) (bool, error) {
	compiled, err := s.Compile(expression)
	if err != nil {
		return false, err
	}
	return compiled.Select(ctx)
}

// Compile returns a compiled selector that evaluates expression per entry.
func (s *exprSelector) Compile(expression string) (CompiledSelector, error) {
	if expression == "" {
		return nil, wrapSelectorError("expr", fmt.Errorf("expression must not be empty"))
	}
	program, err := s.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &exprCompiledSelector{
		selector:   s,
		program:    program,
		expression: expression,
	}, nil
}

func (s *exprSelector) loadOrCompile(expression string) (*exprvm.Program, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range s.registryNames() {
		fn := s.registryFunction(name)
		options = append(options, exprlang.Function(name, fn))
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, wrapSelectionError("expr", expression, "", err)
	}
	if s.cache != nil {
		s.cache.Set(expression, program)
	}
	return program, nil
}

type exprCompiledSelector struct {
	selector   *exprSelector
	program    *exprvm.Program
	expression string
}

func (c *exprCompiledSelector) Select(ctx SelectionContext) (bool, error) {
	if c.selector == nil {
		return false, wrapSelectorError("expr", fmt.Errorf("compiled selector missing engine"))
	}
	ctx = ctx.withDefaultArgs()
	env := c.selector.environment(ctx)
	result, err := exprlang.Run(c.program, env)
	if err != nil {
		return false, wrapSelectionError("expr", c.expression, ctx.Key, err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, wrapSelectionError("expr", c.expression, ctx.Key,
			fmt.Errorf("expression must produce a bool, got %T", result))
	}
	return matched, nil
}

func (s *exprSelector) environment(ctx SelectionContext) map[string]any {
	env := ctx.binding()
	if s.registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return s.registry.Call(name, arguments...)
		}
		for _, name := range s.registry.Names() {
			fn := name
			env[fn] = func(arguments ...any) (any, error) {
				return s.registry.Call(fn, arguments...)
			}
		}
	}
	return env
}

func (s *exprSelector) registryNames() []string {
	if s == nil || s.registry == nil {
		return nil
	}
	return s.registry.Names()
}

func (s *exprSelector) registryFunction(name string) func(...any) (any, error) {
	if s == nil || s.registry == nil {
		return nil
	}
	return func(arguments ...any) (any, error) {
		return s.registry.Call(name, arguments...)
	}
}
