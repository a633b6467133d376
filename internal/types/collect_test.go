package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/tlcheck/internal/ast"
)

func litInt(v int64) *ast.Literal      { return &ast.Literal{Kind: ast.IntLit, Value: v} }
func litFloat(v float64) *ast.Literal  { return &ast.Literal{Kind: ast.FloatLit, Value: v} }
func litStr(v string) *ast.Literal     { return &ast.Literal{Kind: ast.StringLit, Value: v} }
func litBool(v bool) *ast.Literal      { return &ast.Literal{Kind: ast.BoolLit, Value: v} }

func newCollector(strategy Strategy) *Collector {
	return NewCollector(strategy, 0)
}

func TestInferLiteralKinds(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()

	assert.Equal(t, "Int", c.Infer(ctx, litInt(1)).String())
	assert.Equal(t, "Double", c.Infer(ctx, litFloat(1.5)).String())
	assert.Equal(t, "String", c.Infer(ctx, litStr("x")).String())
	assert.Equal(t, "Bool", c.Infer(ctx, litBool(true)).String())
}

func TestArithmeticBothConcreteWidensDirectly(t *testing.T) {
	for _, strat := range []Strategy{Algorithmic, ConstraintBased} {
		c := newCollector(strat)
		ctx := NewContext()
		expr := &ast.BinaryOp{Left: litInt(1), Op: "+", Right: litFloat(2.0)}

		typ := c.Infer(ctx, expr)
		c.Solve()
		require.Empty(t, c.Errors())
		assert.Equal(t, "Double", c.Substitution().Apply(typ).String())
	}
}

func TestUnifyOccursCheckFailureReportsInfiniteType(t *testing.T) {
	c := newCollector(Algorithmic)
	v := &Var{Name: "t1"}
	list := &Named{Name: "List", Args: []Type{v}}

	c.unify(v, list, "recursive binding", ast.Pos{})
	require.Len(t, c.Errors(), 1)
	assert.Equal(t, InfiniteType, c.Errors()[0].Kind)
}

func TestSubtypeOccursCheckFailureReportsInfiniteType(t *testing.T) {
	c := newCollector(Algorithmic)
	v := &Var{Name: "t1"}
	list := &Named{Name: "List", Args: []Type{v}}

	c.subtype(list, v, "recursive binding", ast.Pos{})
	require.Len(t, c.Errors(), 1)
	assert.Equal(t, InfiniteType, c.Errors()[0].Kind)
}

func TestSolveOccursCheckFailureReportsInfiniteType(t *testing.T) {
	c := newCollector(ConstraintBased)
	v := &Var{Name: "t1"}
	list := &Named{Name: "List", Args: []Type{v}}

	c.unify(v, list, "recursive binding", ast.Pos{})
	c.Solve()
	require.Len(t, c.Errors(), 1)
	assert.Equal(t, InfiniteType, c.Errors()[0].Kind)
}

func TestStringConcatenation(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()
	expr := &ast.BinaryOp{Left: litStr("a"), Op: "+", Right: litStr("b")}

	typ := c.Infer(ctx, expr)
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "String", c.Substitution().Apply(typ).String())
}

func TestComparisonReturnsBool(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()
	expr := &ast.BinaryOp{Left: litInt(1), Op: "<", Right: litFloat(2.0)}

	typ := c.Infer(ctx, expr)
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "Bool", typ.String())
}

func TestUnaryMinusPreservesOperandType(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()
	expr := &ast.UnaryOp{Op: "-", Operand: litInt(5)}

	typ := c.Infer(ctx, expr)
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "Int", c.Substitution().Apply(typ).String())
}

func TestUnaryNotRequiresBool(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()
	expr := &ast.UnaryOp{Op: "!", Operand: litBool(false)}

	typ := c.Infer(ctx, expr)
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "Bool", typ.String())
}

func TestIfWithoutElseIsNullable(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()
	expr := &ast.IfExpr{Condition: litBool(true), Then: litInt(1)}

	typ := c.Infer(ctx, expr)
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "Int?", c.Substitution().Apply(typ).String())
}

func TestIfElseAlgorithmicRequiresExactMatch(t *testing.T) {
	c := newCollector(Algorithmic)
	ctx := NewContext()
	expr := &ast.IfExpr{Condition: litBool(true), Then: litInt(1), Else: litFloat(2.0)}

	c.Infer(ctx, expr)
	c.Solve()
	assert.NotEmpty(t, c.Errors(), "algorithmic mode must reject mixed-numeric if/else branches")
}

func TestIfElseConstraintBasedWidens(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()
	expr := &ast.IfExpr{Condition: litBool(true), Then: litInt(1), Else: litFloat(2.0)}

	typ := c.Infer(ctx, expr)
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "Double", c.Substitution().Apply(typ).String())
}

func TestFunctionCallArgumentDirectedSubtyping(t *testing.T) {
	c := newCollector(ConstraintBased)
	fn := &Function{Params: []Type{Double}, Return: Bool}
	ctx := NewContext().ExtendFunc("isPositive", &Scheme{Type: fn})

	call := &ast.FunctionCall{Callee: &ast.Identifier{Name: "isPositive"}, Args: []ast.Expr{litInt(1)}}
	typ := c.Infer(ctx, call)
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "Bool", typ.String())
}

func TestFunctionCallArityMismatch(t *testing.T) {
	c := newCollector(ConstraintBased)
	fn := &Function{Params: []Type{Int, Int}, Return: Int}
	ctx := NewContext().ExtendFunc("add", &Scheme{Type: fn})

	call := &ast.FunctionCall{Callee: &ast.Identifier{Name: "add"}, Args: []ast.Expr{litInt(1)}}
	c.Infer(ctx, call)
	c.Solve()

	require.Len(t, c.Errors(), 1)
	assert.Equal(t, ArityMismatch, c.Errors()[0].Kind)
}

func TestConstructorCallFieldSubtyping(t *testing.T) {
	c := newCollector(ConstraintBased)
	union := &UnionInfo{Name: "Box", Variants: []*VariantInfo{
		{Name: "Box", Fields: []Type{Double}, Owner: "Box"},
	}}
	ctx := NewContext().ExtendUnion(union)

	call := &ast.ConstructorCall{Name: "Box", Args: []ast.Expr{litInt(1)}}
	typ := c.Infer(ctx, call)
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "Box", typ.String())
}

func TestConstructorCallInstantiatesTypeParamsFreshPerCall(t *testing.T) {
	c := newCollector(ConstraintBased)
	union := &UnionInfo{
		Name:       "Option",
		TypeParams: []string{"T"},
		Variants: []*VariantInfo{
			{Name: "Some", Fields: []Type{&Var{Name: "T"}}, Owner: "Option"},
		},
	}
	ctx := NewContext().ExtendUnion(union)

	callInt := &ast.ConstructorCall{Name: "Some", Args: []ast.Expr{litInt(1)}}
	callStr := &ast.ConstructorCall{Name: "Some", Args: []ast.Expr{litStr("x")}}

	t1 := c.Infer(ctx, callInt)
	t2 := c.Infer(ctx, callStr)
	c.Solve()
	require.Empty(t, c.Errors())

	sub := c.Substitution()
	assert.Equal(t, "Option[Int]", sub.Apply(t1).String())
	assert.Equal(t, "Option[String]", sub.Apply(t2).String())
}

func TestUnresolvedIdentifierReportsError(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()

	c.Infer(ctx, &ast.Identifier{Name: "nope"})
	require.Len(t, c.Errors(), 1)
	assert.Equal(t, UnresolvedSymbol, c.Errors()[0].Kind)
}

func TestTupleExprInfersElementwise(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()

	typ := c.Infer(ctx, &ast.TupleExpr{Elements: []ast.Expr{litInt(1), litStr("x")}})
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "(Int, String)", typ.String())
}

func TestWhileExprReturnsUnit(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()

	typ := c.Infer(ctx, &ast.WhileExpr{Condition: litBool(true), Body: litInt(1)})
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "Unit", typ.String())
}

func TestForExprBindsElementType(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext().ExtendVar("items", &Scheme{Type: &Named{Name: "List", Args: []Type{Int}}}, false)

	forExpr := &ast.ForExpr{
		Var:      "x",
		Iterable: &ast.Identifier{Name: "items"},
		Body:     &ast.BinaryOp{Left: &ast.Identifier{Name: "x"}, Op: "+", Right: litInt(1)},
	}
	c.Infer(ctx, forExpr)
	c.Solve()
	assert.Empty(t, c.Errors())
}

func TestBlockReturnsLastStatementType(t *testing.T) {
	c := newCollector(ConstraintBased)
	ctx := NewContext()

	block := &ast.BlockExpr{Statements: []ast.Stmt{
		&ast.ValDecl{Name: "x", Init: litInt(1)},
		&ast.ExprStmt{Expr: &ast.Identifier{Name: "x"}},
	}}

	typ := c.Infer(ctx, block)
	c.Solve()
	require.Empty(t, c.Errors())
	assert.Equal(t, "Int", c.Substitution().Apply(typ).String())
}
