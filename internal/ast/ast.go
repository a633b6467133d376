// Package ast defines the AST consumed by the TL type checker.
//
// The parser that produces these nodes is an external collaborator (see
// spec.md §1); this package only fixes the shape the checker walks. Source
// locations are optional metadata attached to nodes — never significant
// for type equality or unification (see internal/types).
package ast

import (
	"fmt"
	"strings"
)

// Pos represents a position in the source code.
type Pos struct {
	Line   int
	Column int
	File   string
}

func (p Pos) String() string {
	if p.File == "" && p.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is the base interface for all AST nodes.
type Node interface {
	String() string
	Position() Pos
}

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any top-level or block statement.
type Stmt interface {
	Node
	stmtNode()
}

// Type is a type annotation as written in source (distinct from the
// checker's internal types.Type, which is the inferred/solved form).
type Type interface {
	Node
	typeNode()
}

// Pattern is a match-arm pattern.
type Pattern interface {
	Node
	patternNode()
}

// Program is the entire input to the checker.
type Program struct {
	Statements []Stmt
}

func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}

// ---- Type annotations ----

// NamedType is a bare name reference: a primitive, a user-declared type, or
// (by the convention in spec.md §3/§9) a type variable, when Name matches
// a single uppercase letter or "T" followed by digits.
type NamedType struct {
	Name string
	Pos  Pos
}

func (t *NamedType) String() string { return t.Name }
func (t *NamedType) Position() Pos  { return t.Pos }
func (t *NamedType) typeNode()      {}

// GenericType is a parameterized reference, e.g. List[T].
type GenericType struct {
	Name string
	Args []Type
	Pos  Pos
}

func (t *GenericType) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Name, strings.Join(args, ", "))
}
func (t *GenericType) Position() Pos { return t.Pos }
func (t *GenericType) typeNode()     {}

// NullableType extends a base type with a null inhabitant: T?
type NullableType struct {
	Base Type
	Pos  Pos
}

func (t *NullableType) String() string { return t.Base.String() + "?" }
func (t *NullableType) Position() Pos  { return t.Pos }
func (t *NullableType) typeNode()      {}

// TupleType is a fixed-arity product type.
type TupleType struct {
	Elements []Type
	Pos      Pos
}

func (t *TupleType) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}
func (t *TupleType) Position() Pos { return t.Pos }
func (t *TupleType) typeNode()     {}

// FunctionType is a function type annotation.
type FunctionType struct {
	Params []Type
	Return Type
	Pos    Pos
}

func (t *FunctionType) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return.String())
}
func (t *FunctionType) Position() Pos { return t.Pos }
func (t *FunctionType) typeNode()     {}

// ---- Expressions ----

// LiteralKind distinguishes literal expression kinds.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
	NullLit
)

// Literal is an int/float/string/bool/null literal.
type Literal struct {
	Kind  LiteralKind
	Value interface{}
	Pos   Pos
}

func (l *Literal) String() string {
	if l.Kind == NullLit {
		return "null"
	}
	return fmt.Sprintf("%v", l.Value)
}
func (l *Literal) Position() Pos { return l.Pos }
func (l *Literal) exprNode()     {}
func (l *Literal) patternNode()  {} // literal patterns reuse literal expressions

// Identifier is a variable, function, or nullary-constructor reference.
type Identifier struct {
	Name string
	Pos  Pos
}

func (i *Identifier) String() string { return i.Name }
func (i *Identifier) Position() Pos  { return i.Pos }
func (i *Identifier) exprNode()      {}
func (i *Identifier) patternNode()   {} // binder patterns reuse identifier expressions

// TupleExpr is a tuple literal.
type TupleExpr struct {
	Elements []Expr
	Pos      Pos
}

func (t *TupleExpr) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}
func (t *TupleExpr) Position() Pos { return t.Pos }
func (t *TupleExpr) exprNode()     {}

// BinaryOp is a binary operator application.
type BinaryOp struct {
	Left  Expr
	Op    string
	Right Expr
	Pos   Pos
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}
func (b *BinaryOp) Position() Pos { return b.Pos }
func (b *BinaryOp) exprNode()     {}

// UnaryOp is a unary operator application (-, !).
type UnaryOp struct {
	Op      string
	Operand Expr
	Pos     Pos
}

func (u *UnaryOp) String() string { return fmt.Sprintf("(%s%s)", u.Op, u.Operand) }
func (u *UnaryOp) Position() Pos  { return u.Pos }
func (u *UnaryOp) exprNode()      {}

// Param is a function/lambda parameter, with an optional type annotation.
type Param struct {
	Name string
	Type Type // nil if inferred
	Pos  Pos
}

// LambdaExpr is an anonymous function.
type LambdaExpr struct {
	Params []*Param
	Body   Expr
	Pos    Pos
}

func (l *LambdaExpr) String() string {
	names := make([]string, len(l.Params))
	for i, p := range l.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(names, ", "), l.Body)
}
func (l *LambdaExpr) Position() Pos { return l.Pos }
func (l *LambdaExpr) exprNode()     {}

// FunctionCall applies a callee expression to arguments.
type FunctionCall struct {
	Callee Expr
	Args   []Expr
	Pos    Pos
}

func (f *FunctionCall) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Callee, strings.Join(args, ", "))
}
func (f *FunctionCall) Position() Pos { return f.Pos }
func (f *FunctionCall) exprNode()     {}

// ConstructorCall invokes a union-variant constructor by name.
type ConstructorCall struct {
	Name string
	Args []Expr
	Pos  Pos
}

func (c *ConstructorCall) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}
func (c *ConstructorCall) Position() Pos { return c.Pos }
func (c *ConstructorCall) exprNode()     {}

// PropertyAccess is `receiver.property`, including built-in method calls.
type PropertyAccess struct {
	Receiver Expr
	Property string
	// Args is non-nil when this property access is immediately called,
	// e.g. x.toString() — the collector treats it as a built-in method
	// dispatch rather than a field read.
	Args *[]Expr
	Pos  Pos
}

func (p *PropertyAccess) String() string {
	if p.Args != nil {
		args := make([]string, len(*p.Args))
		for i, a := range *p.Args {
			args[i] = a.String()
		}
		return fmt.Sprintf("%s.%s(%s)", p.Receiver, p.Property, strings.Join(args, ", "))
	}
	return fmt.Sprintf("%s.%s", p.Receiver, p.Property)
}
func (p *PropertyAccess) Position() Pos { return p.Pos }
func (p *PropertyAccess) exprNode()     {}

// IndexAccess is `receiver[index]`.
type IndexAccess struct {
	Receiver Expr
	Index    Expr
	Pos      Pos
}

func (x *IndexAccess) String() string { return fmt.Sprintf("%s[%s]", x.Receiver, x.Index) }
func (x *IndexAccess) Position() Pos  { return x.Pos }
func (x *IndexAccess) exprNode()      {}

// IfExpr is a conditional expression; Else is nil for an else-less if.
type IfExpr struct {
	Condition Expr
	Then      Expr
	Else      Expr
	Pos       Pos
}

func (i *IfExpr) String() string {
	if i.Else == nil {
		return fmt.Sprintf("(if %s then %s)", i.Condition, i.Then)
	}
	return fmt.Sprintf("(if %s then %s else %s)", i.Condition, i.Then, i.Else)
}
func (i *IfExpr) Position() Pos { return i.Pos }
func (i *IfExpr) exprNode()     {}

// WhileExpr is a while-loop, typed Unit.
type WhileExpr struct {
	Condition Expr
	Body      Expr
	Pos       Pos
}

func (w *WhileExpr) String() string { return fmt.Sprintf("(while %s %s)", w.Condition, w.Body) }
func (w *WhileExpr) Position() Pos  { return w.Pos }
func (w *WhileExpr) exprNode()      {}

// ForExpr iterates Iterable, binding Var in Body.
type ForExpr struct {
	Var      string
	Iterable Expr
	Body     Expr
	Pos      Pos
}

func (f *ForExpr) String() string {
	return fmt.Sprintf("(for %s in %s %s)", f.Var, f.Iterable, f.Body)
}
func (f *ForExpr) Position() Pos { return f.Pos }
func (f *ForExpr) exprNode()     {}

// MatchCase is one arm of a MatchExpr.
type MatchCase struct {
	Pattern Pattern
	Body    Expr
	Pos     Pos
}

// MatchExpr is a pattern match over a scrutinee.
type MatchExpr struct {
	Scrutinee Expr
	Cases     []*MatchCase
	Pos       Pos
}

func (m *MatchExpr) String() string {
	cases := make([]string, len(m.Cases))
	for i, c := range m.Cases {
		cases[i] = fmt.Sprintf("%s => %s", c.Pattern, c.Body)
	}
	return fmt.Sprintf("(match %s { %s })", m.Scrutinee, strings.Join(cases, " | "))
}
func (m *MatchExpr) Position() Pos { return m.Pos }
func (m *MatchExpr) exprNode()     {}

// BlockExpr is a sequence of statements; the last expression statement (if
// any) is the block's result, otherwise the block has type Unit.
type BlockExpr struct {
	Statements []Stmt
	Pos        Pos
}

func (b *BlockExpr) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return fmt.Sprintf("{ %s }", strings.Join(parts, "; "))
}
func (b *BlockExpr) Position() Pos { return b.Pos }
func (b *BlockExpr) exprNode()     {}

// ---- Statements ----

// ValDecl is an immutable local binding.
type ValDecl struct {
	Name string
	Type Type // optional annotation
	Init Expr
	Pos  Pos
}

func (v *ValDecl) String() string { return fmt.Sprintf("val %s = %s", v.Name, v.Init) }
func (v *ValDecl) Position() Pos  { return v.Pos }
func (v *ValDecl) stmtNode()      {}

// VarDecl is a mutable local binding.
type VarDecl struct {
	Name string
	Type Type // optional annotation
	Init Expr
	Pos  Pos
}

func (v *VarDecl) String() string { return fmt.Sprintf("var %s = %s", v.Name, v.Init) }
func (v *VarDecl) Position() Pos  { return v.Pos }
func (v *VarDecl) stmtNode()      {}

// Assignment reassigns an existing mutable binding.
type Assignment struct {
	Name  string
	Value Expr
	Pos   Pos
}

func (a *Assignment) String() string { return fmt.Sprintf("%s = %s", a.Name, a.Value) }
func (a *Assignment) Position() Pos  { return a.Pos }
func (a *Assignment) stmtNode()      {}

// ReturnStatement is an early-exit return from a function body.
type ReturnStatement struct {
	Value Expr // nil for a bare `return`
	Pos   Pos
}

func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", r.Value)
}
func (r *ReturnStatement) Position() Pos { return r.Pos }
func (r *ReturnStatement) stmtNode()     {}

// ExprStmt wraps a bare expression used as a statement.
type ExprStmt struct {
	Expr Expr
	Pos  Pos
}

func (e *ExprStmt) String() string { return e.Expr.String() }
func (e *ExprStmt) Position() Pos  { return e.Pos }
func (e *ExprStmt) stmtNode()      {}

// FuncDecl is a top-level (or nested) function declaration.
type FuncDecl struct {
	Name       string
	TypeParams []string
	Params     []*Param
	ReturnType Type // optional annotation
	Body       Expr
	Pos        Pos
}

func (f *FuncDecl) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("func %s(%s) = %s", f.Name, strings.Join(names, ", "), f.Body)
}
func (f *FuncDecl) Position() Pos { return f.Pos }
func (f *FuncDecl) stmtNode()     {}

// VariantDef is one variant of a union type; named fields are flattened to
// positional order by the parser (spec.md §3).
type VariantDef struct {
	Name   string
	Fields []Type
	Pos    Pos
}

// TypeDecl declares a union (sum) type.
type TypeDecl struct {
	Name       string
	TypeParams []string
	Variants   []*VariantDef
	Pos        Pos
}

func (t *TypeDecl) String() string { return fmt.Sprintf("type %s", t.Name) }
func (t *TypeDecl) Position() Pos  { return t.Pos }
func (t *TypeDecl) stmtNode()      {}

// ---- Patterns ----

// WildcardPattern matches anything, binding nothing.
type WildcardPattern struct {
	Pos Pos
}

func (w *WildcardPattern) String() string { return "_" }
func (w *WildcardPattern) Position() Pos  { return w.Pos }
func (w *WildcardPattern) patternNode()   {}

// ConstructorPattern matches a union variant, recursively matching its fields.
type ConstructorPattern struct {
	Name        string
	SubPatterns []Pattern
	Pos         Pos
}

func (c *ConstructorPattern) String() string {
	if len(c.SubPatterns) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.SubPatterns))
	for i, p := range c.SubPatterns {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}
func (c *ConstructorPattern) Position() Pos { return c.Pos }
func (c *ConstructorPattern) patternNode()  {}

// GuardPattern wraps an inner pattern with a boolean guard expression; the
// arm only fires if the inner pattern matches AND the guard evaluates true.
// A guard does not reduce the inner pattern's exhaustiveness contribution
// (spec.md §4.G) — a guarded variant still counts as covered.
type GuardPattern struct {
	Inner Pattern
	Guard Expr
	Pos   Pos
}

func (g *GuardPattern) String() string { return fmt.Sprintf("%s if %s", g.Inner, g.Guard) }
func (g *GuardPattern) Position() Pos  { return g.Pos }
func (g *GuardPattern) patternNode()   {}
