package i18nkeys

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELSelectorOption configures the CEL selector.
type CELSelectorOption func(*celSelector)

// CELWithProgramCache wires a ProgramCache into the CEL selector.
func CELWithProgramCache(cache ProgramCache) CELSelectorOption {
	return func(s *celSelector) {
		s.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL selector.
// Registered functions are reachable through call("name", arg).
func CELWithFunctionRegistry(registry *FunctionRegistry) CELSelectorOption {
	return func(s *celSelector) {
		if registry == nil {
			return
		}
		s.registry = registry.Clone()
	}
}

type celSelector struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELSelector constructs a Selector backed by cel-go.
func NewCELSelector(opts ...CELSelectorOption) Selector {
	s := &celSelector{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *celSelector) engineName() string { return "cel" }

func (s *celSelector) Select(ctx SelectionContext, expression string) (bool, error) {
	compiled, err := s.Compile(expression)
	if err != nil {
		return false, err
	}
	return compiled.Select(ctx)
}

func (s *celSelector) Compile(expression string) (CompiledSelector, error) {
	if expression == "" {
		return nil, wrapSelectorError("cel", fmt.Errorf("expression must not be empty"))
	}
	program, err := s.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &celCompiledSelector{
		selector:   s,
		program:    program,
		expression: expression,
	}, nil
}

func (s *celSelector) loadOrCompile(expression string) (celgo.Program, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(expression); ok {
			if program, ok := cached.(celgo.Program); ok {
				return program, nil
			}
		}
	}

	env, err := s.buildEnv()
	if err != nil {
		return nil, wrapSelectorError("cel", err)
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, wrapSelectionError("cel", expression, "", issues.Err())
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, wrapSelectionError("cel", expression, "", issues.Err())
	}
	if out := checked.OutputType(); out != celgo.BoolType && out != celgo.DynType {
		return nil, wrapSelectionError("cel", expression, "",
			fmt.Errorf("expression must produce a bool, got %s", out))
	}
	program, err := env.Program(checked)
	if err != nil {
		return nil, wrapSelectionError("cel", expression, "", err)
	}

	if s.cache != nil {
		s.cache.Set(expression, program)
	}
	return program, nil
}

// buildEnv declares the fixed entry bindings. The CEL environment is static,
// so compiled programs are reusable across entries and catalogs.
func (s *celSelector) buildEnv() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("key", celgo.StringType),
		celgo.Variable("ns", celgo.StringType),
		celgo.Variable("path", celgo.StringType),
		celgo.Variable("segments", celgo.ListType(celgo.StringType)),
		celgo.Variable("depth", celgo.IntType),
		celgo.Variable("kind", celgo.StringType),
		celgo.Variable("plural", celgo.ListType(celgo.StringType)),
		celgo.Variable("contexts", celgo.ListType(celgo.StringType)),
		celgo.Variable("value", celgo.DynType),
		celgo.Variable("args", celgo.DynType),
	}
	if s.registry != nil {
		opts = append(opts, celgo.Function("call",
			celgo.Overload("call_string_dyn",
				[]*celgo.Type{celgo.StringType, celgo.DynType},
				celgo.DynType,
				celgo.FunctionBinding(s.callBinding()),
			)))
	}
	return celgo.NewEnv(opts...)
}

type celCompiledSelector struct {
	selector   *celSelector
	program    celgo.Program
	expression string
}

func (c *celCompiledSelector) Select(ctx SelectionContext) (bool, error) {
	if c.selector == nil {
		return false, wrapSelectorError("cel", fmt.Errorf("compiled selector missing engine"))
	}
	ctx = ctx.withDefaultArgs()
	out, _, err := c.program.Eval(ctx.binding())
	if err != nil {
		return false, wrapSelectionError("cel", c.expression, ctx.Key, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, wrapSelectionError("cel", c.expression, ctx.Key,
			fmt.Errorf("expression must produce a bool, got %T", out.Value()))
	}
	return matched, nil
}

func (s *celSelector) callBinding() func(...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		if s.registry == nil {
			return types.NewErr("i18nkeys: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("i18nkeys: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("i18nkeys: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := s.registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
