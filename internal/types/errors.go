package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sunholo/tlcheck/internal/ast"
)

// ErrorKind identifies a member of the checker's error taxonomy (spec.md §7).
type ErrorKind string

const (
	UnresolvedSymbol        ErrorKind = "unresolved_symbol"
	TypeMismatch            ErrorKind = "type_mismatch"
	UndefinedType           ErrorKind = "undefined_type"
	ArityMismatch           ErrorKind = "arity_mismatch"
	InvalidOperation        ErrorKind = "invalid_operation"
	NonExhaustiveMatch      ErrorKind = "non_exhaustive_match"
	DuplicateDefinition     ErrorKind = "duplicate_definition"
	InfiniteType            ErrorKind = "infinite_type"
	ConstraintSolvingFailed ErrorKind = "constraint_solving_failed"
)

// TypeCheckError is the checker's single concrete error type. Every
// constructor below fills in only the fields relevant to its Kind; the rest
// stay zero.
type TypeCheckError struct {
	Kind            ErrorKind
	Pos             ast.Pos
	Message         string
	Expected        Type
	Actual          Type
	MissingVariants []string
}

func (e *TypeCheckError) Error() string {
	var b strings.Builder
	if pos := e.Pos.String(); pos != "" {
		b.WriteString(pos)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Expected != nil && e.Actual != nil {
		fmt.Fprintf(&b, "\n  Expected: %s\n  Actual:   %s", e.Expected, e.Actual)
	}
	if len(e.MissingVariants) > 0 {
		sorted := append([]string(nil), e.MissingVariants...)
		sort.Strings(sorted)
		fmt.Fprintf(&b, "\n  Missing variants: %s", strings.Join(sorted, ", "))
	}
	return b.String()
}

// NewUnresolvedSymbolError reports a reference to an unbound identifier.
func NewUnresolvedSymbolError(name string, pos ast.Pos) *TypeCheckError {
	return &TypeCheckError{
		Kind:    UnresolvedSymbol,
		Pos:     pos,
		Message: fmt.Sprintf("unresolved symbol: %s", name),
	}
}

// NewTypeMismatchError reports two types that failed to unify or satisfy a
// subtype constraint. context names the expression or operator that produced
// the failed constraint, same as Constraint.Context.
func NewTypeMismatchError(context string, expected, actual Type, pos ast.Pos) *TypeCheckError {
	return &TypeCheckError{
		Kind:     TypeMismatch,
		Pos:      pos,
		Message:  context,
		Expected: expected,
		Actual:   actual,
	}
}

// NewUndefinedTypeError reports a type annotation naming an undeclared type.
func NewUndefinedTypeError(name string, pos ast.Pos) *TypeCheckError {
	return &TypeCheckError{
		Kind:    UndefinedType,
		Pos:     pos,
		Message: fmt.Sprintf("undefined type: %s", name),
	}
}

// NewArityMismatchError reports a call or constructor application with the
// wrong number of arguments.
func NewArityMismatchError(name string, expected, actual int, pos ast.Pos) *TypeCheckError {
	return &TypeCheckError{
		Kind:    ArityMismatch,
		Pos:     pos,
		Message: fmt.Sprintf("%s expects %d argument(s), but %d provided", name, expected, actual),
	}
}

// NewInvalidOperationError reports an operator or built-in method applied to
// an operand type it does not support.
func NewInvalidOperationError(op string, operand Type, pos ast.Pos) *TypeCheckError {
	return &TypeCheckError{
		Kind:    InvalidOperation,
		Pos:     pos,
		Message: fmt.Sprintf("operation %q is not defined for type %s", op, operand),
		Actual:  operand,
	}
}

// NewNonExhaustiveMatchError reports a match expression missing one or more
// variants of the scrutinee's union type.
func NewNonExhaustiveMatchError(missing []string, pos ast.Pos) *TypeCheckError {
	return &TypeCheckError{
		Kind:            NonExhaustiveMatch,
		Pos:             pos,
		Message:         "non-exhaustive match",
		MissingVariants: missing,
	}
}

// NewDuplicateDefinitionError reports a name declared more than once in the
// same scope.
func NewDuplicateDefinitionError(name string, pos ast.Pos) *TypeCheckError {
	return &TypeCheckError{
		Kind:    DuplicateDefinition,
		Pos:     pos,
		Message: fmt.Sprintf("duplicate definition: %s", name),
	}
}

// NewInfiniteTypeError reports an occurs-check failure.
func NewInfiniteTypeError(varName string, in Type, pos ast.Pos) *TypeCheckError {
	return &TypeCheckError{
		Kind:    InfiniteType,
		Pos:     pos,
		Message: fmt.Sprintf("infinite type: %s occurs in %s", varName, in),
	}
}

// NewConstraintSolvingFailedError wraps a solver failure that could not be
// attributed to a more specific taxonomy member.
func NewConstraintSolvingFailedError(reason string, pos ast.Pos) *TypeCheckError {
	return &TypeCheckError{
		Kind:    ConstraintSolvingFailed,
		Pos:     pos,
		Message: fmt.Sprintf("constraint solving failed: %s", reason),
	}
}

// MultipleErrors aggregates every error produced while checking a program.
// The checker façade returns every type error in this type at the program
// boundary, even when it holds a single error (spec.md §7). The one other
// error CheckProgram returns is a plain error from WithExtraBuiltins, for an
// ExtraBuiltins entry it cannot register, before any statement is checked.
type MultipleErrors []*TypeCheckError

func (e MultipleErrors) Error() string {
	if len(e) == 0 {
		return "no errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d type errors:", len(e))
	for i, err := range e {
		fmt.Fprintf(&b, "\n[%d] %s", i+1, err.Error())
	}
	return b.String()
}
