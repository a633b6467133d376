package types

import (
	"github.com/sunholo/tlcheck/internal/ast"
)

// checkStatement type-checks one statement inside a block, returning its
// contribution to the block's result type (Unit for every statement kind
// except a trailing ExprStmt) and the context extended with whatever
// binding the statement introduces.
func (c *Collector) checkStatement(ctx *Context, stmt ast.Stmt) (Type, *Context) {
	switch s := stmt.(type) {
	case *ast.ValDecl:
		return c.checkValDecl(ctx, s)

	case *ast.VarDecl:
		return c.checkVarDecl(ctx, s)

	case *ast.Assignment:
		return c.checkAssignment(ctx, s)

	case *ast.ReturnStatement:
		return c.checkReturn(ctx, s)

	case *ast.ExprStmt:
		return c.Infer(ctx, s.Expr), ctx

	case *ast.FuncDecl:
		return c.checkNestedFuncDecl(ctx, s)

	case *ast.TypeDecl:
		return Unit, c.declareUnion(ctx, s)

	default:
		c.fail(&TypeCheckError{Kind: InvalidOperation, Pos: stmt.Position(), Message: "unrecognized statement"})
		return Unit, ctx
	}
}

func (c *Collector) checkValDecl(ctx *Context, v *ast.ValDecl) (Type, *Context) {
	initType := c.Infer(ctx, v.Init)
	if v.Type != nil {
		annotated := c.resolveAnnotation(ctx, v.Type)
		c.unify(annotated, initType, "val "+v.Name+" initializer", v.Pos)
		initType = annotated
	}
	return Unit, ctx.ExtendVar(v.Name, c.generalize(ctx, initType, isValueExpr(v.Init)), false)
}

func (c *Collector) checkVarDecl(ctx *Context, v *ast.VarDecl) (Type, *Context) {
	initType := c.Infer(ctx, v.Init)
	if v.Type != nil {
		annotated := c.resolveAnnotation(ctx, v.Type)
		c.unify(annotated, initType, "var "+v.Name+" initializer", v.Pos)
		initType = annotated
	}
	// var bindings are never generalized: the value-restriction concern
	// that motivates generalization doesn't apply to a binding that can be
	// reassigned to a different-shaped value later (spec.md §9).
	return Unit, ctx.ExtendVar(v.Name, &Scheme{Type: initType}, true)
}

func (c *Collector) checkAssignment(ctx *Context, a *ast.Assignment) (Type, *Context) {
	binding, ok := ctx.LookupVar(a.Name)
	if !ok {
		c.fail(NewUnresolvedSymbolError(a.Name, a.Pos))
		return Unit, ctx
	}
	if !binding.Mutable {
		c.fail(&TypeCheckError{Kind: InvalidOperation, Pos: a.Pos, Message: "cannot assign to immutable binding " + a.Name})
		return Unit, ctx
	}
	valueType := c.Infer(ctx, a.Value)
	c.unify(binding.Scheme.Type, valueType, "assignment to "+a.Name, a.Pos)
	return Unit, ctx
}

func (c *Collector) checkReturn(ctx *Context, r *ast.ReturnStatement) (Type, *Context) {
	var valueType Type = Unit
	if r.Value != nil {
		valueType = c.Infer(ctx, r.Value)
	}
	if expected := c.currentReturnType(); expected != nil {
		c.unify(expected, valueType, "return value", r.Pos)
	}
	return Unit, ctx
}

func (c *Collector) checkNestedFuncDecl(ctx *Context, f *ast.FuncDecl) (Type, *Context) {
	fnType, scheme := c.checkFuncDeclBody(ctx, f)
	_ = fnType
	return Unit, ctx.ExtendFunc(f.Name, scheme)
}

// currentReturnType peeks the innermost enclosing function's declared or
// inferred return type, used to check `return` statements against it.
func (c *Collector) currentReturnType() Type {
	if len(c.returnStack) == 0 {
		return nil
	}
	return c.returnStack[len(c.returnStack)-1]
}

func (c *Collector) pushReturnType(t Type) { c.returnStack = append(c.returnStack, t) }
func (c *Collector) popReturnType()        { c.returnStack = c.returnStack[:len(c.returnStack)-1] }

// isValueExpr reports whether expr is a syntactic value — the condition
// spec.md §9 requires before generalizing a val binding's type (the value
// restriction: only syntactic values are safe to generalize in the
// presence of mutation elsewhere in the language).
func isValueExpr(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.Literal, *ast.Identifier, *ast.LambdaExpr, *ast.TupleExpr:
		return true
	default:
		return false
	}
}

// generalize quantifies t over the type variables free in t but not free in
// the enclosing context, provided isValue holds; otherwise it returns a
// monomorphic (unquantified) scheme (spec.md §9 let-generalization).
func (c *Collector) generalize(ctx *Context, t Type, isValue bool) *Scheme {
	t = c.sub.Apply(t)
	if !isValue {
		return &Scheme{Type: t}
	}
	envFree := ctx.FreeVars()
	tFree := FreeVars(t)
	var vars []string
	for v := range tFree {
		if !envFree[v] {
			vars = append(vars, v)
		}
	}
	return &Scheme{Vars: vars, Type: t}
}
