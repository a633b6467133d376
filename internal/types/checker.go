package types

import (
	"github.com/sunholo/tlcheck/internal/ast"
)

// TypedProgram is the checker's success output: the original program paired
// with every expression's inferred type, fully resolved against the final
// substitution (spec.md §6).
type TypedProgram struct {
	Program *ast.Program
	Types   map[ast.Expr]Type
}

// TypeOf returns the inferred type recorded for expr, if any.
func (tp *TypedProgram) TypeOf(expr ast.Expr) (Type, bool) {
	t, ok := tp.Types[expr]
	return t, ok
}

// CheckOptions configures one CheckProgram call.
type CheckOptions struct {
	// Strategy selects Algorithmic or ConstraintBased (spec.md §4.G).
	Strategy Strategy
	// MaxErrors stops collecting after this many errors; 0 means unlimited.
	MaxErrors int
	// DisableBuiltins omits the fixed built-in function table (spec.md §6),
	// for embedding the checker in a host that supplies its own prelude.
	DisableBuiltins bool
	// ExtraBuiltins layers additional function signatures on top of the
	// fixed table (or, with DisableBuiltins set, forms the entire prelude),
	// for a host embedding the checker in a larger tool.
	ExtraBuiltins []ExtraBuiltin
}

// DefaultOptions returns the checker's default configuration:
// constraint-based strategy, unlimited error collection, built-ins enabled.
func DefaultOptions() CheckOptions {
	return CheckOptions{Strategy: ConstraintBased, MaxErrors: 0}
}

// CheckProgram is the checker façade's entry point: a two-pass walk over
// prog (spec.md §4.G). The declarations pass registers every TypeDecl and
// FuncDecl so that forward references and recursion resolve; the statements
// pass then walks left to right, threading a context that accumulates
// top-level val/var bindings and checking every function body against its
// already-registered signature.
func CheckProgram(prog *ast.Program, opts CheckOptions) (*TypedProgram, error) {
	c := NewCollector(opts.Strategy, opts.MaxErrors)
	c.types = make(map[ast.Expr]Type)

	ctx := NewContext()
	if !opts.DisableBuiltins {
		ctx = WithBuiltins(ctx)
	}
	if len(opts.ExtraBuiltins) > 0 {
		var err error
		ctx, err = WithExtraBuiltins(ctx, opts.ExtraBuiltins)
		if err != nil {
			return nil, err
		}
	}
	ctx = c.declarePass(ctx, prog.Statements)

	for _, stmt := range prog.Statements {
		if _, ok := stmt.(*ast.TypeDecl); ok {
			// Already registered by declarePass; declaring it again here
			// would report it as a duplicate of itself.
			continue
		}
		_, ctx = c.checkStatement(ctx, stmt)
	}

	c.Solve()

	if len(c.errs) > 0 {
		return nil, MultipleErrors(c.errs)
	}

	resolved := make(map[ast.Expr]Type, len(c.types))
	for e, t := range c.types {
		resolved[e] = c.sub.Apply(t)
	}
	return &TypedProgram{Program: prog, Types: resolved}, nil
}

// declarePass folds TypeDecl and FuncDecl statements into ctx before any
// statement body is checked, so mutual recursion between top-level
// functions (and forward references to a union declared later in the file)
// resolve correctly (spec.md §4.G declarations pass).
func (c *Collector) declarePass(ctx *Context, statements []ast.Stmt) *Context {
	for _, stmt := range statements {
		switch s := stmt.(type) {
		case *ast.TypeDecl:
			ctx = c.declareUnion(ctx, s)
		case *ast.FuncDecl:
			ctx = c.declareFuncSignature(ctx, s)
		}
	}
	return ctx
}

// declareUnion registers a TypeDecl's union type and every variant
// constructor, without checking any expression (spec.md §4.G step 1).
func (c *Collector) declareUnion(ctx *Context, decl *ast.TypeDecl) *Context {
	if _, exists := ctx.LookupUnion(decl.Name); exists {
		c.fail(NewDuplicateDefinitionError(decl.Name, decl.Pos))
	}

	union := &UnionInfo{Name: decl.Name, TypeParams: decl.TypeParams}
	seen := make(map[string]bool, len(decl.Variants))
	for _, v := range decl.Variants {
		if seen[v.Name] {
			c.fail(NewDuplicateDefinitionError(v.Name, v.Pos))
			continue
		}
		seen[v.Name] = true

		fields := make([]Type, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = c.resolveAnnotation(ctx, f)
		}
		union.Variants = append(union.Variants, &VariantInfo{Name: v.Name, Fields: fields, Owner: decl.Name})
	}
	return ctx.ExtendUnion(union)
}

// declareFuncSignature resolves a FuncDecl's parameter and return type
// annotations into a Function type, quantified over its declared type
// parameters, and binds it in the function namespace — without checking the
// body (spec.md §4.G step 1). checkFuncDeclBody looks up the signature
// recorded here when the statements pass reaches this declaration, so the
// body sees exactly this signature (including for recursive calls to
// itself).
func (c *Collector) declareFuncSignature(ctx *Context, f *ast.FuncDecl) *Context {
	if _, exists := ctx.LookupFunc(f.Name); exists {
		c.fail(NewDuplicateDefinitionError(f.Name, f.Pos))
	}
	sigType := c.resolveFuncSignature(ctx, f)
	return ctx.ExtendFunc(f.Name, &Scheme{Vars: f.TypeParams, Type: sigType})
}

func (c *Collector) resolveFuncSignature(ctx *Context, f *ast.FuncDecl) *Function {
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		if p.Type != nil {
			params[i] = c.resolveAnnotation(ctx, p.Type)
		} else {
			params[i] = NewVar()
		}
	}
	var ret Type
	if f.ReturnType != nil {
		ret = c.resolveAnnotation(ctx, f.ReturnType)
	} else {
		ret = NewVar()
	}
	return &Function{Params: params, Return: ret}
}

// checkFuncDeclBody type-checks f's body against its own (already declared)
// signature, binding parameters in a fresh scope and tracking the return
// type for any nested `return` statements. It looks up the signature
// declarePass already registered for f.Name rather than re-resolving f's
// annotations: an unannotated parameter or return type resolves to a fresh
// Var each time resolveFuncSignature runs, so re-resolving here would bind
// the body's params/return to different variables than a recursive call to
// f within its own body sees, making self-recursion on an unannotated
// signature never unify. Reusing the declared scheme's *Function value
// directly keeps both sides pointing at the same variables.
func (c *Collector) checkFuncDeclBody(ctx *Context, f *ast.FuncDecl) (Type, *Scheme) {
	declared, ok := ctx.LookupFunc(f.Name)
	if !ok {
		// Nested function declarations (spec.md §4.G) aren't registered by
		// declarePass, which only walks top-level statements: resolve fresh
		// here, since there is no earlier declaration to stay consistent
		// with.
		return c.checkFuncDeclBodyFresh(ctx, f)
	}
	fnType, ok := declared.Type.(*Function)
	if !ok {
		return c.checkFuncDeclBodyFresh(ctx, f)
	}

	bodyCtx := ctx
	for i, p := range f.Params {
		bodyCtx = bodyCtx.ExtendVar(p.Name, &Scheme{Type: fnType.Params[i]}, false)
	}

	c.pushReturnType(fnType.Return)
	bodyType := c.Infer(bodyCtx, f.Body)
	c.popReturnType()

	if f.ReturnType != nil {
		c.subtype(bodyType, fnType.Return, "function "+f.Name+" body", f.Body.Position())
	} else {
		c.unify(fnType.Return, bodyType, "function "+f.Name+" body", f.Body.Position())
	}

	return fnType, &Scheme{Vars: f.TypeParams, Type: fnType}
}

// checkFuncDeclBodyFresh resolves f's signature from scratch and checks its
// body against it; used for nested function declarations, which have no
// prior declarePass entry to stay consistent with.
func (c *Collector) checkFuncDeclBodyFresh(ctx *Context, f *ast.FuncDecl) (Type, *Scheme) {
	fnType := c.resolveFuncSignature(ctx, f)

	bodyCtx := ctx
	for i, p := range f.Params {
		bodyCtx = bodyCtx.ExtendVar(p.Name, &Scheme{Type: fnType.Params[i]}, false)
	}

	c.pushReturnType(fnType.Return)
	bodyType := c.Infer(bodyCtx, f.Body)
	c.popReturnType()

	if f.ReturnType != nil {
		c.subtype(bodyType, fnType.Return, "function "+f.Name+" body", f.Body.Position())
	} else {
		c.unify(fnType.Return, bodyType, "function "+f.Name+" body", f.Body.Position())
	}

	return fnType, &Scheme{Vars: f.TypeParams, Type: fnType}
}
