package types

import (
	"errors"
	"fmt"

	"github.com/sunholo/tlcheck/internal/ast"
)

// Strategy selects between the two ways of driving typeCheckExpression:
// algorithmic unifies eagerly as it walks the tree; constraint collects a
// batch of Constraint values and solves them together at the end (spec.md
// §9 Design Notes). Both strategies call the exact same recursive function
// below — they differ in whether a given call unifies immediately or
// appends to a pending constraint set, and in how inferIf types an if/else
// (strict branch equality for Algorithmic, a widened result variable for
// ConstraintBased).
type Strategy int

const (
	Algorithmic Strategy = iota
	ConstraintBased
)

// Collector drives type inference over a single expression tree, either
// unifying immediately (Algorithmic) or deferring to a batch Solve
// (ConstraintBased).
type Collector struct {
	strategy    Strategy
	sub         Substitution
	constraints []Constraint
	unifier     *Unifier
	maxErrors   int
	errs        []*TypeCheckError
	returnStack []Type
	// types records every expression's synthesized type as Infer visits it,
	// for TypedProgram's per-expression annotations (spec.md §6). Only
	// CheckProgram populates this; a Collector used directly (e.g. in unit
	// tests) may leave it nil, and Infer skips recording when so.
	types map[ast.Expr]Type
}

// NewCollector creates a Collector. CheckProgram creates one per program
// and uses it for every declaration and statement, so constraints and the
// substitution are shared across the program's top-level declarations.
func NewCollector(strategy Strategy, maxErrors int) *Collector {
	return &Collector{
		strategy:  strategy,
		sub:       Substitution{},
		unifier:   NewUnifier(),
		maxErrors: maxErrors,
	}
}

func (c *Collector) tooManyErrors() bool {
	return c.maxErrors > 0 && len(c.errs) >= c.maxErrors
}

// Errors returns every error collected so far, in the order encountered.
func (c *Collector) Errors() []*TypeCheckError { return c.errs }

// Substitution returns the Collector's current best-known substitution,
// useful for resolving a previously-inferred type after checking finishes.
func (c *Collector) Substitution() Substitution { return c.sub }

func (c *Collector) fail(err *TypeCheckError) {
	if c.tooManyErrors() {
		return
	}
	c.errs = append(c.errs, err)
}

// unify resolves two types immediately (Algorithmic), extending c.sub or
// recording an error, or records a pending Eq constraint (ConstraintBased).
// It returns nothing; callers resolve types through c.sub afterwards.
func (c *Collector) unify(expected, actual Type, context string, pos ast.Pos) {
	if c.strategy == ConstraintBased {
		c.constraints = append(c.constraints, Constraint{Kind: Eq, Left: expected, Right: actual, Context: context})
		return
	}
	sub, err := c.unifier.Unify(expected, actual, c.sub)
	if err != nil {
		c.failUnifyError(err, expected, actual, context, pos)
		return
	}
	c.sub = sub
}

// failUnifyError reports a Unify/subtypeUnify failure under the taxonomy
// member it actually is: an occurs-check failure becomes InfiniteType, and
// anything else falls back to the generic TypeMismatch.
func (c *Collector) failUnifyError(err error, expected, actual Type, context string, pos ast.Pos) {
	var inf *infiniteTypeError
	if errors.As(err, &inf) {
		c.fail(NewInfiniteTypeError(inf.varName, inf.in, pos))
		return
	}
	c.fail(NewTypeMismatchError(context, c.sub.Apply(expected), c.sub.Apply(actual), pos))
}

// subtype resolves a Subtype constraint: actual must widen to expected.
// wide is passed to subtypeUnify without pre-resolving it through c.sub so
// a variable shared across multiple subtype calls (e.g. a polymorphic
// built-in's single type parameter applied to two numeric arguments) keeps
// its identity and can be re-widened rather than conflict.
func (c *Collector) subtype(narrow, wide Type, context string, pos ast.Pos) {
	if c.strategy == ConstraintBased {
		c.constraints = append(c.constraints, Constraint{Kind: Subtype, Left: narrow, Right: wide, Context: context})
		return
	}
	rNarrow := c.sub.Apply(narrow)
	sub, err := subtypeUnify(c.unifier, rNarrow, wide, c.sub)
	if err != nil {
		c.failUnifyError(err, wide, rNarrow, context, pos)
		return
	}
	c.sub = sub
}

// Solve finalizes a ConstraintBased run, applying Solve to whatever
// constraints were collected; a no-op for Algorithmic, which has already
// unified as it went.
func (c *Collector) Solve() {
	if c.strategy != ConstraintBased || len(c.constraints) == 0 {
		return
	}
	sub, err := Solve(c.constraints, c.sub)
	if err != nil {
		var inf *infiniteTypeError
		if errors.As(err, &inf) {
			c.fail(NewInfiniteTypeError(inf.varName, inf.in, ast.Pos{}))
			return
		}
		c.fail(NewConstraintSolvingFailedError(err.Error(), ast.Pos{}))
		return
	}
	c.sub = sub
	c.constraints = nil
}

// Infer is the single abstract operation both strategies route every
// expression kind through (spec.md §9: "Model the two strategies behind a
// single abstract operation typeCheckExpression(ctx, expr, expected?)").
// Every case resolves operand types by recursing into Infer, then either
// unifies immediately or defers, depending on c.strategy — the two
// strategies diverge inside unify/subtype above and, for if/else, in
// inferIf; the traversal shape itself is the same.
func (c *Collector) Infer(ctx *Context, expr ast.Expr) Type {
	t := c.inferDispatch(ctx, expr)
	if c.types != nil {
		c.types[expr] = t
	}
	return t
}

func (c *Collector) inferDispatch(ctx *Context, expr ast.Expr) Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return c.inferLiteral(e)

	case *ast.Identifier:
		return c.inferIdentifier(ctx, e)

	case *ast.TupleExpr:
		elems := make([]Type, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = c.Infer(ctx, el)
		}
		return &Tuple{Elements: elems}

	case *ast.BinaryOp:
		return c.inferBinaryOp(ctx, e)

	case *ast.UnaryOp:
		return c.inferUnaryOp(ctx, e)

	case *ast.LambdaExpr:
		return c.inferLambda(ctx, e)

	case *ast.FunctionCall:
		return c.inferFunctionCall(ctx, e)

	case *ast.ConstructorCall:
		return c.inferConstructorCall(ctx, e)

	case *ast.PropertyAccess:
		return c.inferPropertyAccess(ctx, e)

	case *ast.IndexAccess:
		return c.inferIndexAccess(ctx, e)

	case *ast.IfExpr:
		return c.inferIf(ctx, e)

	case *ast.WhileExpr:
		return c.inferWhile(ctx, e)

	case *ast.ForExpr:
		return c.inferFor(ctx, e)

	case *ast.MatchExpr:
		return c.inferMatch(ctx, e)

	case *ast.BlockExpr:
		return c.inferBlock(ctx, e)

	default:
		c.fail(&TypeCheckError{Kind: InvalidOperation, Pos: expr.Position(), Message: fmt.Sprintf("cannot type check expression of kind %T", expr)})
		return NewVar()
	}
}

func (c *Collector) inferLiteral(lit *ast.Literal) Type {
	switch lit.Kind {
	case ast.IntLit:
		return Int
	case ast.FloatLit:
		return Double
	case ast.StringLit:
		return Str
	case ast.BoolLit:
		return Bool
	case ast.NullLit:
		return &Nullable{Base: NewVar()}
	default:
		return NewVar()
	}
}

func (c *Collector) inferIdentifier(ctx *Context, id *ast.Identifier) Type {
	scheme, ok := ctx.Resolve(id.Name)
	if !ok {
		c.fail(NewUnresolvedSymbolError(id.Name, id.Pos))
		return NewVar()
	}
	return scheme.Instantiate()
}

// arithmeticOps and comparisonOps classify the binary operators; this table
// mirrors the operator-to-behavior split in the teacher's operator dispatch
// (method-per-operator), adapted to TL's plain numeric operators instead of
// a type-class dictionary.
var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}
var comparisonOps = map[string]bool{"<": true, "<=": true, ">": true, ">=": true}
var equalityOps = map[string]bool{"==": true, "!=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}

func (c *Collector) inferBinaryOp(ctx *Context, b *ast.BinaryOp) Type {
	left := c.Infer(ctx, b.Left)
	right := c.Infer(ctx, b.Right)

	switch {
	case b.Op == "+" && (isStringy(c.sub.Apply(left)) || isStringy(c.sub.Apply(right))):
		// String concatenation: + also accepts a String on either side
		// (spec.md §6), unlike the other arithmetic operators.
		c.unify(Str, left, "string concatenation operand", b.Left.Position())
		c.unify(Str, right, "string concatenation operand", b.Right.Position())
		return Str

	case arithmeticOps[b.Op]:
		rl, rr := c.sub.Apply(left), c.sub.Apply(right)
		lp, lok := rl.(*Primitive)
		rp, rok := rr.(*Primitive)
		if lok && rok && lp.IsNumeric() && rp.IsNumeric() {
			// Both operands already concrete numerics: the result is the
			// wider of the two directly, no fresh variable needed.
			return WiderNumericType(lp, rp)
		}
		// At least one operand isn't yet known to be numeric: fall back to
		// the conservative default of Double (spec.md §4.F).
		c.subtype(left, Double, "arithmetic operand", b.Left.Position())
		c.subtype(right, Double, "arithmetic operand", b.Right.Position())
		return Double

	case comparisonOps[b.Op]:
		c.subtype(left, Double, "comparison operand", b.Left.Position())
		c.subtype(right, Double, "comparison operand", b.Right.Position())
		return Bool

	case equalityOps[b.Op]:
		c.unify(left, right, "equality operand", b.Pos)
		return Bool

	case logicalOps[b.Op]:
		c.unify(Bool, left, "logical operand", b.Left.Position())
		c.unify(Bool, right, "logical operand", b.Right.Position())
		return Bool

	default:
		c.fail(&TypeCheckError{Kind: InvalidOperation, Pos: b.Pos, Message: fmt.Sprintf("unknown operator %q", b.Op)})
		return NewVar()
	}
}

func isStringy(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.Name == "String"
}

func (c *Collector) inferUnaryOp(ctx *Context, u *ast.UnaryOp) Type {
	operand := c.Infer(ctx, u.Operand)
	switch u.Op {
	case "-":
		c.subtype(operand, Double, "unary minus operand", u.Pos)
		return operand
	case "!":
		c.unify(Bool, operand, "logical not operand", u.Pos)
		return Bool
	default:
		c.fail(&TypeCheckError{Kind: InvalidOperation, Pos: u.Pos, Message: fmt.Sprintf("unknown unary operator %q", u.Op)})
		return NewVar()
	}
}

func (c *Collector) inferLambda(ctx *Context, l *ast.LambdaExpr) Type {
	params := make([]Type, len(l.Params))
	bodyCtx := ctx
	for i, p := range l.Params {
		var pt Type
		if p.Type != nil {
			pt = c.resolveAnnotation(ctx, p.Type)
		} else {
			pt = NewVar()
		}
		params[i] = pt
		bodyCtx = bodyCtx.ExtendVar(p.Name, &Scheme{Type: pt}, false)
	}
	ret := c.Infer(bodyCtx, l.Body)
	return &Function{Params: params, Return: ret}
}

func (c *Collector) inferFunctionCall(ctx *Context, call *ast.FunctionCall) Type {
	calleeType := c.sub.Apply(c.Infer(ctx, call.Callee))
	argTypes := make([]Type, len(call.Args))
	for i, a := range call.Args {
		argTypes[i] = c.Infer(ctx, a)
	}

	if fn, ok := calleeType.(*Function); ok {
		if len(fn.Params) != len(argTypes) {
			c.fail(NewArityMismatchError(calleeName(call.Callee), len(fn.Params), len(argTypes), call.Pos))
		}
		n := len(fn.Params)
		if len(argTypes) < n {
			n = len(argTypes)
		}
		for i := 0; i < n; i++ {
			c.subtype(argTypes[i], fn.Params[i], fmt.Sprintf("argument %d", i+1), call.Args[i].Position())
		}
		return fn.Return
	}

	// The callee's shape isn't known yet (still a type variable): tie it to
	// a fresh function type with equality, as the spec requires for
	// "unknown callers" (spec.md §4.F).
	result := NewVar()
	expected := &Function{Params: argTypes, Return: result}
	c.unify(calleeType, expected, "function call", call.Pos)
	return result
}

func calleeName(e ast.Expr) string {
	if id, ok := e.(*ast.Identifier); ok {
		return id.Name
	}
	return "function"
}

func (c *Collector) inferConstructorCall(ctx *Context, call *ast.ConstructorCall) Type {
	variant, ok := ctx.LookupVariant(call.Name)
	if !ok {
		c.fail(NewUnresolvedSymbolError(call.Name, call.Pos))
		return NewVar()
	}
	if len(variant.Fields) != len(call.Args) {
		c.fail(NewArityMismatchError(call.Name, len(variant.Fields), len(call.Args), call.Pos))
	}
	union, _ := ctx.LookupUnion(variant.Owner)

	// Instantiate the union's type parameters fresh for this call so that
	// e.g. Some(1) and Some("x") don't interfere with each other.
	fresh := Substitution{}
	for _, tp := range union.TypeParams {
		fresh[tp] = NewVar()
	}
	n := len(call.Args)
	if len(variant.Fields) < n {
		n = len(variant.Fields)
	}
	for i := 0; i < n; i++ {
		fieldType := fresh.Apply(variant.Fields[i])
		argType := c.Infer(ctx, call.Args[i])
		c.subtype(argType, fieldType, fmt.Sprintf("%s argument %d", call.Name, i+1), call.Args[i].Position())
	}

	args := make([]Type, len(union.TypeParams))
	for i, tp := range union.TypeParams {
		args[i] = fresh[tp]
	}
	return &Named{Name: union.Name, Args: args}
}

func (c *Collector) inferPropertyAccess(ctx *Context, p *ast.PropertyAccess) Type {
	recvType := c.Infer(ctx, p.Receiver)
	if p.Args != nil {
		argTypes := make([]Type, len(*p.Args))
		for i, a := range *p.Args {
			argTypes[i] = c.Infer(ctx, a)
		}
		return c.inferBuiltinMethod(recvType, p.Property, argTypes, p.Pos)
	}
	// Only called built-in methods are supported (no record types, and no
	// tuple field access); report bare field access as an invalid operation
	// rather than guessing a fresh variable, since silently inventing a
	// field type would hide a real program error.
	c.fail(NewInvalidOperationError("."+p.Property, c.sub.Apply(recvType), p.Pos))
	return NewVar()
}

func (c *Collector) inferIndexAccess(ctx *Context, x *ast.IndexAccess) Type {
	recvType := c.sub.Apply(c.Infer(ctx, x.Receiver))
	idxType := c.Infer(ctx, x.Index)
	c.unify(Int, idxType, "index expression", x.Index.Position())

	if named, ok := recvType.(*Named); ok && named.Name == "List" && len(named.Args) == 1 {
		return named.Args[0]
	}
	if tup, ok := recvType.(*Tuple); ok {
		if len(tup.Elements) > 0 {
			return tup.Elements[0]
		}
	}
	elem := NewVar()
	c.unify(&Named{Name: "List", Args: []Type{elem}}, recvType, "index receiver", x.Receiver.Position())
	return elem
}

func (c *Collector) inferIf(ctx *Context, i *ast.IfExpr) Type {
	cond := c.Infer(ctx, i.Condition)
	c.unify(Bool, cond, "if condition", i.Condition.Position())

	thenType := c.Infer(ctx, i.Then)
	if i.Else == nil {
		// A missing else branch can produce null (the condition false
		// case), so the result widens to nullable (spec.md §4.F).
		return &Nullable{Base: thenType}
	}
	elseType := c.Infer(ctx, i.Else)

	if c.strategy == Algorithmic {
		// Algorithmic strategy requires strict equality between branches,
		// an intentional divergence from constraint-based to prevent
		// silent mixed-numeric results (spec.md §4.F).
		c.unify(thenType, elseType, "if/else branches must have the same type", i.Pos)
		return thenType
	}

	result := NewVar()
	c.subtype(thenType, result, "if branch", i.Then.Position())
	c.subtype(elseType, result, "else branch", i.Else.Position())
	return result
}

func (c *Collector) inferWhile(ctx *Context, w *ast.WhileExpr) Type {
	cond := c.Infer(ctx, w.Condition)
	c.unify(Bool, cond, "while condition", w.Condition.Position())
	c.Infer(ctx, w.Body)
	return Unit
}

func (c *Collector) inferFor(ctx *Context, f *ast.ForExpr) Type {
	iterType := c.sub.Apply(c.Infer(ctx, f.Iterable))
	elem := NewVar()
	c.unify(&Named{Name: "List", Args: []Type{elem}}, iterType, "for loop iterable", f.Iterable.Position())

	bodyCtx := ctx.ExtendVar(f.Var, &Scheme{Type: elem}, false)
	c.Infer(bodyCtx, f.Body)
	return Unit
}

func (c *Collector) inferBlock(ctx *Context, b *ast.BlockExpr) Type {
	bodyCtx := ctx
	var last Type = Unit
	for _, stmt := range b.Statements {
		t, next := c.checkStatement(bodyCtx, stmt)
		bodyCtx = next
		last = t
	}
	return last
}

// resolveAnnotation converts a source-level type annotation into the
// checker's internal Type, reporting an error for a reference to an
// undeclared type name (spec.md §7 UndefinedType).
func (c *Collector) resolveAnnotation(ctx *Context, t ast.Type) Type {
	switch n := t.(type) {
	case *ast.NamedType:
		if p, ok := LookupPrimitive(n.Name); ok {
			return p
		}
		if _, ok := ctx.LookupUnion(n.Name); ok {
			return &Named{Name: n.Name}
		}
		if isTypeVarName(n.Name) {
			return &Var{Name: n.Name}
		}
		c.fail(NewUndefinedTypeError(n.Name, n.Pos))
		return NewVar()

	case *ast.GenericType:
		if _, ok := ctx.LookupUnion(n.Name); !ok {
			c.fail(NewUndefinedTypeError(n.Name, n.Pos))
		}
		args := make([]Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = c.resolveAnnotation(ctx, a)
		}
		return &Named{Name: n.Name, Args: args}

	case *ast.NullableType:
		return &Nullable{Base: c.resolveAnnotation(ctx, n.Base)}

	case *ast.TupleType:
		elems := make([]Type, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = c.resolveAnnotation(ctx, e)
		}
		return &Tuple{Elements: elems}

	case *ast.FunctionType:
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = c.resolveAnnotation(ctx, p)
		}
		return &Function{Params: params, Return: c.resolveAnnotation(ctx, n.Return)}

	default:
		c.fail(&TypeCheckError{Kind: UndefinedType, Pos: t.Position(), Message: fmt.Sprintf("unrecognized type annotation %T", t)})
		return NewVar()
	}
}

// isTypeVarName follows spec.md §3/§9's convention: a single uppercase
// letter, or "T" followed by digits, names a type parameter rather than a
// declared type.
func isTypeVarName(name string) bool {
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return true
	}
	if len(name) > 1 && name[0] == 'T' {
		for _, r := range name[1:] {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}
