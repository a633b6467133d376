// Package types implements the TL type checker: the type model, the
// unifier, the constraint collector, and the checker façade that ties them
// together (see SPEC_FULL.md for the full component list).
package types

import (
	"fmt"
	"strings"
)

// Type is any TL type: a primitive, a type variable, a named reference to a
// declared type (possibly applied to arguments), a nullable wrapper, a
// tuple, or a function type. Equality and substitution never consult source
// positions — only the AST layer carries those.
type Type interface {
	String() string
	Equals(Type) bool
	Substitute(Substitution) Type
}

// Primitive is one of TL's built-in scalar types. Numeric primitives widen
// according to a fixed subtyping lattice: Int ⊆ Long ⊆ Double and
// Float ⊆ Double (see IsSubtype).
type Primitive struct {
	Name string
}

func (t *Primitive) String() string { return t.Name }

func (t *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && t.Name == o.Name
}

func (t *Primitive) Substitute(Substitution) Type { return t }

// Predefined primitive types.
var (
	Int    = &Primitive{Name: "Int"}
	Long   = &Primitive{Name: "Long"}
	Float  = &Primitive{Name: "Float"}
	Double = &Primitive{Name: "Double"}
	Bool   = &Primitive{Name: "Bool"}
	Str    = &Primitive{Name: "String"}
	Unit   = &Primitive{Name: "Unit"}
)

// primitivesByName backs lookups from AST NamedType nodes.
var primitivesByName = map[string]*Primitive{
	"Int": Int, "Long": Long, "Float": Float, "Double": Double,
	"Bool": Bool, "String": Str, "Unit": Unit,
}

// LookupPrimitive returns the primitive type for a built-in type name, or
// (nil, false) if name is not one of TL's primitives.
func LookupPrimitive(name string) (*Primitive, bool) {
	p, ok := primitivesByName[name]
	return p, ok
}

// numericRank orders the numeric widening lattice; higher ranks are wider.
// Float and Double sit on a separate branch from Int/Long: Float widens only
// to Double, Int widens to Long and then to Double (spec.md §3).
var numericRank = map[string]int{
	"Int": 0, "Long": 1, "Float": 0, "Double": 2,
}

// IsNumeric reports whether p is one of the numeric primitives.
func (t *Primitive) IsNumeric() bool {
	_, ok := numericRank[t.Name]
	return ok
}

// WiderNumericType returns whichever of a, b sits higher on the numeric
// widening lattice (spec.md §4.F arithmetic: "if both are numeric but
// different, result is getWiderNumericType"). Float and Int/Long are
// incomparable on the lattice, so either pairing yields Double. Callers must
// check IsNumeric on both operands first.
func WiderNumericType(a, b *Primitive) *Primitive {
	if IsSubtype(a, b) {
		return b
	}
	if IsSubtype(b, a) {
		return a
	}
	return Double
}

// Var is an inference type variable, introduced fresh during collection and
// bound by the unifier's substitution.
type Var struct {
	Name string
}

func (t *Var) String() string { return t.Name }

func (t *Var) Equals(other Type) bool {
	o, ok := other.(*Var)
	return ok && t.Name == o.Name
}

// Substitute follows t's binding transitively: when sub binds t to another
// still-unresolved Var (e.g. a return type aliased to its parameter via
// Eq(T_ret, T_x) before T_x itself is pinned down to a concrete type), a
// single lookup would stop at that intermediate Var and leave it dangling
// once the chain's end is later rebound. Chasing until a non-Var (or an
// unbound Var) is reached keeps every alias resolved regardless of the
// order in which its links were bound.
func (t *Var) Substitute(sub Substitution) Type {
	seen := map[string]bool{t.Name: true}
	cur := Type(t)
	for {
		v, ok := cur.(*Var)
		if !ok {
			return cur
		}
		bound, ok := sub[v.Name]
		if !ok {
			return cur
		}
		if next, ok := bound.(*Var); ok && seen[next.Name] {
			return cur
		}
		if next, ok := bound.(*Var); ok {
			seen[next.Name] = true
		}
		cur = bound
	}
}

// varCounter is the process-wide monotonic fresh-variable counter
// (spec.md §3/§8: determinism across runs requires this to never reset
// mid-program).
var varCounter int

// NewVar returns a fresh, never-before-issued type variable.
func NewVar() *Var {
	varCounter++
	return &Var{Name: fmt.Sprintf("t%d", varCounter)}
}

// ResetVarCounter rewinds the fresh-variable counter. Exists only for tests
// that need reproducible variable names across independent checker runs;
// production code never calls it mid-program.
func ResetVarCounter() { varCounter = 0 }

// Named references a declared type by name, optionally applied to type
// arguments (e.g. a bare `Option` or `Option[Int]`). Nullary references to
// a union type and fully-applied generic instantiations are both Named
// values; Args is empty for non-generic types.
type Named struct {
	Name string
	Args []Type
}

func (t *Named) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Name, strings.Join(args, ", "))
}

func (t *Named) Equals(other Type) bool {
	o, ok := other.(*Named)
	if !ok || t.Name != o.Name || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

func (t *Named) Substitute(sub Substitution) Type {
	if len(t.Args) == 0 {
		return t
	}
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Substitute(sub)
	}
	return &Named{Name: t.Name, Args: args}
}

// Nullable wraps a base type with a null inhabitant: T?. Nullable(T) and
// Nullable(Nullable(T)) are deliberately distinct types — TL does not
// collapse nested nullability (spec.md §3 invariant).
type Nullable struct {
	Base Type
}

func (t *Nullable) String() string { return t.Base.String() + "?" }

func (t *Nullable) Equals(other Type) bool {
	o, ok := other.(*Nullable)
	return ok && t.Base.Equals(o.Base)
}

func (t *Nullable) Substitute(sub Substitution) Type {
	return &Nullable{Base: t.Base.Substitute(sub)}
}

// Tuple is a fixed-arity, heterogeneous product type.
type Tuple struct {
	Elements []Type
}

func (t *Tuple) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}

func (t *Tuple) Equals(other Type) bool {
	o, ok := other.(*Tuple)
	if !ok || len(t.Elements) != len(o.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equals(o.Elements[i]) {
			return false
		}
	}
	return true
}

func (t *Tuple) Substitute(sub Substitution) Type {
	elems := make([]Type, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.Substitute(sub)
	}
	return &Tuple{Elements: elems}
}

// Function is a function type: fixed parameter types and a return type.
// TL has no variadic functions and no effect tracking (out of scope).
type Function struct {
	Params []Type
	Return Type
}

func (t *Function) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return.String())
}

func (t *Function) Equals(other Type) bool {
	o, ok := other.(*Function)
	if !ok || len(t.Params) != len(o.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	return t.Return.Equals(o.Return)
}

func (t *Function) Substitute(sub Substitution) Type {
	params := make([]Type, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Substitute(sub)
	}
	return &Function{Params: params, Return: t.Return.Substitute(sub)}
}

// Scheme is a polymorphic type scheme: a type generalized over a set of
// quantified type variables (spec.md §4.B / §9 let-generalization).
type Scheme struct {
	Vars []string
	Type Type
}

func (s *Scheme) String() string {
	if len(s.Vars) == 0 {
		return s.Type.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(s.Vars, " "), s.Type.String())
}

// Instantiate produces a fresh copy of the scheme's type, replacing every
// quantified variable with a newly-minted one. Free variables not in
// s.Vars are left untouched.
func (s *Scheme) Instantiate() Type {
	sub := make(Substitution, len(s.Vars))
	for _, v := range s.Vars {
		sub[v] = NewVar()
	}
	return s.Type.Substitute(sub)
}

// FreeVars returns the names of type variables free in t.
func FreeVars(t Type) map[string]bool {
	free := make(map[string]bool)
	collectFreeVars(t, free)
	return free
}

func collectFreeVars(t Type, out map[string]bool) {
	switch v := t.(type) {
	case *Var:
		out[v.Name] = true
	case *Named:
		for _, a := range v.Args {
			collectFreeVars(a, out)
		}
	case *Nullable:
		collectFreeVars(v.Base, out)
	case *Tuple:
		for _, e := range v.Elements {
			collectFreeVars(e, out)
		}
	case *Function:
		for _, p := range v.Params {
			collectFreeVars(p, out)
		}
		collectFreeVars(v.Return, out)
	}
}

// SchemeFreeVars returns the free variables of a scheme: the type's free
// variables minus those it quantifies over.
func SchemeFreeVars(s *Scheme) map[string]bool {
	free := FreeVars(s.Type)
	for _, v := range s.Vars {
		delete(free, v)
	}
	return free
}
