package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/tlcheck/internal/ast"
)

func TestCheckValDeclGeneralizesLambda(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()

	// val identity = (x) => x — a syntactic value, generalized so it can be
	// applied at more than one type.
	decl := &ast.ValDecl{
		Name: "identity",
		Init: &ast.LambdaExpr{Params: []*ast.Param{{Name: "x"}}, Body: &ast.Identifier{Name: "x"}},
	}
	_, next := c.checkStatement(ctx, decl)

	binding, ok := next.LookupVar("identity")
	require.True(t, ok)
	assert.NotEmpty(t, binding.Scheme.Vars, "a lambda bound via val should be generalized")
	assert.False(t, binding.Mutable)
}

func TestCheckVarDeclNeverGeneralized(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()

	decl := &ast.VarDecl{
		Name: "identity",
		Init: &ast.LambdaExpr{Params: []*ast.Param{{Name: "x"}}, Body: &ast.Identifier{Name: "x"}},
	}
	_, next := c.checkStatement(ctx, decl)

	binding, ok := next.LookupVar("identity")
	require.True(t, ok)
	assert.Empty(t, binding.Scheme.Vars, "var bindings are never generalized")
	assert.True(t, binding.Mutable)
}

func TestCheckAssignmentToImmutableFails(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext().ExtendVar("x", &Scheme{Type: Int}, false)

	c.checkAssignment(ctx, &ast.Assignment{Name: "x", Value: litInt(2)})
	require.Len(t, c.Errors(), 1)
	assert.Equal(t, InvalidOperation, c.Errors()[0].Kind)
}

func TestCheckAssignmentToMutableSucceeds(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext().ExtendVar("x", &Scheme{Type: Int}, true)

	c.checkAssignment(ctx, &ast.Assignment{Name: "x", Value: litInt(2)})
	c.Solve()
	assert.Empty(t, c.Errors())
}

func TestCheckAssignmentUnresolvedName(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()

	c.checkAssignment(ctx, &ast.Assignment{Name: "missing", Value: litInt(2)})
	require.Len(t, c.Errors(), 1)
	assert.Equal(t, UnresolvedSymbol, c.Errors()[0].Kind)
}

func TestCheckReturnAgainstEnclosingFunction(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()

	c.pushReturnType(Int)
	c.checkReturn(ctx, &ast.ReturnStatement{Value: litFloat(1.0)})
	c.popReturnType()
	c.Solve()

	assert.NotEmpty(t, c.Errors(), "returning Double where Int is expected should fail under strict Eq")
}

func TestCheckReturnBareDefaultsToUnit(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()

	c.pushReturnType(Unit)
	typ, _ := c.checkReturn(ctx, &ast.ReturnStatement{})
	c.popReturnType()
	c.Solve()

	assert.Equal(t, "Unit", typ.String())
	assert.Empty(t, c.Errors())
}

func TestIsValueExprClassification(t *testing.T) {
	assert.True(t, isValueExpr(litInt(1)))
	assert.True(t, isValueExpr(&ast.Identifier{Name: "x"}))
	assert.True(t, isValueExpr(&ast.LambdaExpr{}))
	assert.True(t, isValueExpr(&ast.TupleExpr{}))
	assert.False(t, isValueExpr(&ast.FunctionCall{}))
}
