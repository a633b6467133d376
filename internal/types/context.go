package types

// VarBinding records a variable's scheme and whether it was introduced with
// var (mutable) or val (immutable); Assignment checking (spec.md §4.G)
// rejects reassignment of an immutable binding.
type VarBinding struct {
	Scheme  *Scheme
	Mutable bool
}

// VariantInfo describes one constructor of a declared union type.
type VariantInfo struct {
	Name   string
	Fields []Type
	// Owner is the union type's name, needed to look up all sibling
	// variants during exhaustiveness checking.
	Owner string
}

// UnionInfo describes a declared union (sum) type.
type UnionInfo struct {
	Name       string
	TypeParams []string
	Variants   []*VariantInfo
}

// Context is the lexical type-checking scope: three independently-scoped
// namespaces (variables, functions, declared types), chained to a parent
// scope. Every Extend* method returns a new Context rather than mutating
// the receiver — scopes are immutable values, matching the teacher's
// TypeEnv.Extend pattern (spec.md §4.D invariant).
type Context struct {
	variables map[string]*VarBinding
	functions map[string]*Scheme
	unions    map[string]*UnionInfo
	variants  map[string]*VariantInfo // constructor name -> owning variant
	parent    *Context
}

// NewContext returns an empty root context.
func NewContext() *Context {
	return &Context{
		variables: map[string]*VarBinding{},
		functions: map[string]*Scheme{},
		unions:    map[string]*UnionInfo{},
		variants:  map[string]*VariantInfo{},
	}
}

// child creates an empty scope chained to ctx.
func (ctx *Context) child() *Context {
	return &Context{
		variables: map[string]*VarBinding{},
		functions: map[string]*Scheme{},
		unions:    map[string]*UnionInfo{},
		variants:  map[string]*VariantInfo{},
		parent:    ctx,
	}
}

// ExtendVar returns a new context with name bound to scheme in the variable
// namespace.
func (ctx *Context) ExtendVar(name string, scheme *Scheme, mutable bool) *Context {
	next := ctx.child()
	next.variables[name] = &VarBinding{Scheme: scheme, Mutable: mutable}
	return next
}

// ExtendFunc returns a new context with name bound in the function
// namespace, which is checked before the variable namespace on lookup so
// that a local val cannot shadow a recursive function's own name within
// its body (spec.md §4.G two-pass declaration order).
func (ctx *Context) ExtendFunc(name string, scheme *Scheme) *Context {
	next := ctx.child()
	next.functions[name] = scheme
	return next
}

// ExtendUnion registers a declared union type and its variant constructors.
func (ctx *Context) ExtendUnion(info *UnionInfo) *Context {
	next := ctx.child()
	next.unions[info.Name] = info
	for _, v := range info.Variants {
		next.variants[v.Name] = v
	}
	return next
}

// LookupVar resolves a variable binding, searching enclosing scopes.
func (ctx *Context) LookupVar(name string) (*VarBinding, bool) {
	for c := ctx; c != nil; c = c.parent {
		if b, ok := c.variables[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupFunc resolves a function binding, searching enclosing scopes.
func (ctx *Context) LookupFunc(name string) (*Scheme, bool) {
	for c := ctx; c != nil; c = c.parent {
		if s, ok := c.functions[name]; ok {
			return s, true
		}
	}
	return nil, false
}

// LookupUnion resolves a declared union type by name.
func (ctx *Context) LookupUnion(name string) (*UnionInfo, bool) {
	for c := ctx; c != nil; c = c.parent {
		if u, ok := c.unions[name]; ok {
			return u, true
		}
	}
	return nil, false
}

// LookupVariant resolves a constructor name to the variant it builds.
func (ctx *Context) LookupVariant(name string) (*VariantInfo, bool) {
	for c := ctx; c != nil; c = c.parent {
		if v, ok := c.variants[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Resolve looks up an identifier across both the function and variable
// namespaces, preferring a function binding — this is the single entry
// point the collector uses for bare identifier references (spec.md §4.F).
func (ctx *Context) Resolve(name string) (*Scheme, bool) {
	if s, ok := ctx.LookupFunc(name); ok {
		return s, true
	}
	if b, ok := ctx.LookupVar(name); ok {
		return b.Scheme, true
	}
	return nil, false
}

// ApplySubstitution returns a context with the substitution applied to
// every bound scheme's type, used after solving to report final inferred
// types without mutating any ancestor scope in place.
func (ctx *Context) ApplySubstitution(sub Substitution) *Context {
	if ctx == nil {
		return nil
	}
	next := &Context{
		variables: make(map[string]*VarBinding, len(ctx.variables)),
		functions: make(map[string]*Scheme, len(ctx.functions)),
		unions:    ctx.unions,
		variants:  ctx.variants,
		parent:    ctx.parent.ApplySubstitution(sub),
	}
	for name, b := range ctx.variables {
		next.variables[name] = &VarBinding{
			Scheme:  &Scheme{Vars: b.Scheme.Vars, Type: sub.Apply(b.Scheme.Type)},
			Mutable: b.Mutable,
		}
	}
	for name, s := range ctx.functions {
		next.functions[name] = &Scheme{Vars: s.Vars, Type: sub.Apply(s.Type)}
	}
	return next
}

// FreeVars returns the type variables free across every binding reachable
// from ctx, used by generalize to avoid quantifying over variables still
// constrained by an enclosing scope.
func (ctx *Context) FreeVars() map[string]bool {
	free := make(map[string]bool)
	for c := ctx; c != nil; c = c.parent {
		for _, b := range c.variables {
			for v := range SchemeFreeVars(b.Scheme) {
				free[v] = true
			}
		}
		for _, s := range c.functions {
			for v := range SchemeFreeVars(s) {
				free[v] = true
			}
		}
	}
	return free
}
