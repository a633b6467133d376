package types

import "fmt"

// ConstraintKind distinguishes the two constraint shapes the collector
// emits (spec.md §4.F).
type ConstraintKind int

const (
	// Eq requires the two types to unify exactly.
	Eq ConstraintKind = iota
	// Subtype requires Left to be assignable to Right: structurally equal,
	// Left a narrower numeric primitive than Right on the widening lattice,
	// or a nullable-base widening (see IsSubtype).
	Subtype
)

// Constraint is one unit of work for the solver.
type Constraint struct {
	Kind  ConstraintKind
	Left  Type
	Right Type
	// Context names the expression or operator that produced the
	// constraint, folded into the error message on failure.
	Context string
}

// Unifier performs Robinson-style unification over Substitution, with an
// occurs check and TL's numeric-widening subtyping rule.
type Unifier struct{}

// NewUnifier returns a ready-to-use Unifier. It carries no state; a value
// receiver would do equally well, but the teacher's constructor-per-service
// convention is kept for symmetry with the rest of the package.
func NewUnifier() *Unifier { return &Unifier{} }

// Unify attempts to make t1 and t2 equal under sub, returning an extended
// substitution or an error. sub is never mutated in place.
func (u *Unifier) Unify(t1, t2 Type, sub Substitution) (Substitution, error) {
	t1 = sub.Apply(t1)
	t2 = sub.Apply(t2)

	if t1.Equals(t2) {
		return sub, nil
	}

	switch a := t1.(type) {
	case *Var:
		return u.bind(a.Name, t2, sub)
	}
	switch b := t2.(type) {
	case *Var:
		return u.bind(b.Name, t1, sub)
	}

	switch a := t1.(type) {
	case *Primitive:
		if _, ok := t2.(*Primitive); ok {
			return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
		}
		return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)

	case *Named:
		b, ok := t2.(*Named)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
		}
		var err error
		for i := range a.Args {
			sub, err = u.Unify(a.Args[i], b.Args[i], sub)
			if err != nil {
				return nil, err
			}
		}
		return sub, nil

	case *Nullable:
		b, ok := t2.(*Nullable)
		if !ok {
			return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
		}
		return u.Unify(a.Base, b.Base, sub)

	case *Tuple:
		b, ok := t2.(*Tuple)
		if !ok || len(a.Elements) != len(b.Elements) {
			return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
		}
		var err error
		for i := range a.Elements {
			sub, err = u.Unify(a.Elements[i], b.Elements[i], sub)
			if err != nil {
				return nil, err
			}
		}
		return sub, nil

	case *Function:
		b, ok := t2.(*Function)
		if !ok || len(a.Params) != len(b.Params) {
			return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
		}
		var err error
		for i := range a.Params {
			sub, err = u.Unify(a.Params[i], b.Params[i], sub)
			if err != nil {
				return nil, err
			}
		}
		return u.Unify(a.Return, b.Return, sub)
	}

	return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
}

// bind binds variable name to t, after an occurs check, and composes the
// single-variable substitution with sub.
func (u *Unifier) bind(name string, t Type, sub Substitution) (Substitution, error) {
	if v, ok := t.(*Var); ok && v.Name == name {
		return sub, nil
	}
	if u.occurs(name, t) {
		return nil, &infiniteTypeError{varName: name, in: t}
	}
	single := Substitution{name: t}
	return single.Compose(sub), nil
}

// infiniteTypeError marks an occurs-check failure so callers can route it to
// NewInfiniteTypeError instead of the generic type-mismatch taxonomy member
// (spec.md §7). Kept unexported: callers inspect it with errors.As rather
// than constructing it themselves.
type infiniteTypeError struct {
	varName string
	in      Type
}

func (e *infiniteTypeError) Error() string {
	return fmt.Sprintf("infinite type: %s occurs in %s", e.varName, e.in)
}

func (u *Unifier) occurs(name string, t Type) bool {
	switch v := t.(type) {
	case *Var:
		return v.Name == name
	case *Named:
		for _, a := range v.Args {
			if u.occurs(name, a) {
				return true
			}
		}
		return false
	case *Nullable:
		return u.occurs(name, v.Base)
	case *Tuple:
		for _, e := range v.Elements {
			if u.occurs(name, e) {
				return true
			}
		}
		return false
	case *Function:
		for _, p := range v.Params {
			if u.occurs(name, p) {
				return true
			}
		}
		return u.occurs(name, v.Return)
	}
	return false
}

// IsSubtype reports whether narrow widens to wide on TL's only two subtyping
// relations (spec.md §3): the numeric lattice Int ⊆ Long ⊆ Double and
// Float ⊆ Double, and nullable-base widening (any T is a subtype of T?, and
// T? is a subtype of U? whenever T <: U). Any type is trivially a subtype of
// itself.
func IsSubtype(narrow, wide Type) bool {
	if narrow.Equals(wide) {
		return true
	}
	if wn, ok := wide.(*Nullable); ok {
		if nn, ok := narrow.(*Nullable); ok {
			return IsSubtype(nn.Base, wn.Base)
		}
		return IsSubtype(narrow, wn.Base)
	}
	np, ok1 := narrow.(*Primitive)
	wp, ok2 := wide.(*Primitive)
	if !ok1 || !ok2 || !np.IsNumeric() || !wp.IsNumeric() {
		return false
	}
	switch np.Name {
	case "Int":
		return wp.Name == "Long" || wp.Name == "Double"
	case "Long":
		return wp.Name == "Double"
	case "Float":
		return wp.Name == "Double"
	}
	return false
}

// subtypeUnify resolves one Subtype(narrow, wide) constraint. When wide is
// (or resolves through the substitution to) a still-flexible type variable
// shared by more than one Subtype constraint — e.g. two differently-typed
// arguments both bound to a polymorphic built-in's single type parameter —
// repeated calls widen that variable's binding rather than conflict, so
// `listOf2(1, 2.0)` settles on `List[Double]` regardless of constraint
// order. Non-variable, non-widening pairs fall back to ordinary equality
// rather than being reported as a separate subtype error.
func subtypeUnify(u *Unifier, narrow, wide Type, sub Substitution) (Substitution, error) {
	v, isVar := wide.(*Var)
	if !isVar {
		wide = sub.Apply(wide)
	}
	target := wide
	if isVar {
		if existing, bound := sub[v.Name]; bound {
			target = existing
		}
	}
	if IsSubtype(narrow, target) {
		return sub, nil
	}
	if isVar {
		if np, ok := narrow.(*Primitive); ok && np.IsNumeric() {
			if tp, ok := target.(*Primitive); ok && tp.IsNumeric() {
				wider := WiderNumericType(np, tp)
				if wider.Equals(target) {
					return sub, nil
				}
				return rebind(sub, v.Name, wider), nil
			}
			if _, stillVar := target.(*Var); stillVar {
				return rebind(sub, v.Name, narrow), nil
			}
		}
	}
	return u.Unify(narrow, wide, sub)
}

// rebind returns a copy of sub with name's binding replaced by t — used to
// re-widen a type variable already bound to a narrower numeric primitive.
// Earlier this pushed the new binding eagerly into every other entry
// (mirroring Compose), but that flattens any alias of name (e.g. a return
// type bound to Var{name} via an earlier Eq) into name's *current* value
// immediately: a later call widening name again (a second, wider argument to
// the same polymorphic parameter) would then leave that already-flattened
// alias stuck at the stale value, since it no longer mentions name at all.
// A plain overwrite keeps aliases as live references to name, and
// Var.Substitute now chases such chains transitively, so every alias still
// resolves correctly however many times name itself gets rebound afterward.
func rebind(sub Substitution, name string, t Type) Substitution {
	next := make(Substitution, len(sub)+1)
	for k, v := range sub {
		next[k] = v
	}
	next[name] = t
	return next
}

// Solve resolves a batch of constraints against an initial substitution,
// applying each in turn and composing its result into the running
// substitution — the entry point for the constraint-based strategy
// (spec.md §4.F/§9). The algorithmic strategy instead calls Unify directly
// as it walks the tree; both strategies bottom out in the same Unifier.
func Solve(constraints []Constraint, sub Substitution) (Substitution, error) {
	u := NewUnifier()
	if sub == nil {
		sub = Substitution{}
	}
	for _, c := range constraints {
		left := sub.Apply(c.Left)

		var err error
		if c.Kind == Subtype {
			// c.Right is passed without resolving through sub first: if it
			// names a variable, subtypeUnify needs that identity intact to
			// look up (and possibly re-widen) its current binding itself.
			sub, err = subtypeUnify(u, left, c.Right, sub)
		} else {
			sub, err = u.Unify(left, sub.Apply(c.Right), sub)
		}
		if err != nil {
			if c.Context != "" {
				return nil, fmt.Errorf("%s: %w", c.Context, err)
			}
			return nil, err
		}
	}
	return sub, nil
}
