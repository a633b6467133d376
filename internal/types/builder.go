package types

// Builder provides a fluent API for constructing type signatures, used by
// the built-in table (builtins.go) and by tests, eliminating verbose nested
// struct literals.
//
// Example usage:
//
//	T := NewBuilder()
//	listLen := T.Func(T.Generic("List", T.Var("a"))).Returns(T.Int())
type Builder struct{}

// NewBuilder creates a new type builder.
func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Int() Type    { return Int }
func (b *Builder) Long() Type   { return Long }
func (b *Builder) Float() Type  { return Float }
func (b *Builder) Double() Type { return Double }
func (b *Builder) Bool() Type   { return Bool }
func (b *Builder) String() Type { return Str }
func (b *Builder) Unit() Type   { return Unit }

// Var creates a type variable reference, e.g. for a polymorphic built-in's
// signature: forall a. a -> a.
func (b *Builder) Var(name string) Type { return &Var{Name: name} }

// Named creates a bare (non-generic) reference to a declared type.
func (b *Builder) Named(name string) Type { return &Named{Name: name} }

// Generic creates an applied reference to a parametric declared type, e.g.
// List[a] or Option[Int].
func (b *Builder) Generic(name string, args ...Type) Type {
	if len(args) == 0 {
		return &Named{Name: name}
	}
	return &Named{Name: name, Args: args}
}

// Nullable wraps base in an optional-null type: T?.
func (b *Builder) Nullable(base Type) Type { return &Nullable{Base: base} }

// Tuple creates a fixed-arity product type.
func (b *Builder) Tuple(elements ...Type) Type { return &Tuple{Elements: elements} }

// FuncBuilder provides a fluent interface for building function types.
type FuncBuilder struct {
	params []Type
	ret    Type
}

// Func starts building a function type from its parameter types.
func (b *Builder) Func(params ...Type) *FuncBuilder {
	return &FuncBuilder{params: params}
}

// Returns sets the return type and yields the finished function type.
func (fb *FuncBuilder) Returns(ret Type) Type {
	fb.ret = ret
	return &Function{Params: fb.params, Return: fb.ret}
}

// Scheme quantifies t over the given type variable names.
func (b *Builder) Scheme(vars []string, t Type) *Scheme {
	return &Scheme{Vars: vars, Type: t}
}
