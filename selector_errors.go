package i18nkeys

import (
	"errors"
	"fmt"
	"strings"
)

// SelectionError captures selector engine metadata alongside the originating
// error.
type SelectionError struct {
	Engine string
	Expr   string
	Key    string
	Err    error
}

func (e *SelectionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Key == "" {
		return fmt.Sprintf("i18nkeys: %s selector %s: %v", e.Engine, describeExpression(e.Expr), e.Err)
	}
	return fmt.Sprintf("i18nkeys: %s selector %s key=%s: %v", e.Engine, describeExpression(e.Expr), e.Key, e.Err)
}

func (e *SelectionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapSelectorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var selErr *SelectionError
	if errors.As(err, &selErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "i18nkeys:") {
		return err
	}
	return fmt.Errorf("i18nkeys: %s selector: %w", engine, err)
}

func wrapSelectionError(engine, expr, key string, err error) error {
	if err == nil {
		return nil
	}

	var selErr *SelectionError
	if errors.As(err, &selErr) {
		return err
	}
	return &SelectionError{
		Engine: engine,
		Expr:   expr,
		Key:    key,
		Err:    err,
	}
}
