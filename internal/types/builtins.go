package types

import (
	"fmt"
	"strings"

	"github.com/sunholo/tlcheck/internal/ast"
)

// WithBuiltins returns ctx extended with the fixed polymorphic function
// table (spec.md §6). Every signature is quantified over a single type
// variable T so each call site instantiates its own fresh T.
func WithBuiltins(ctx *Context) *Context {
	b := NewBuilder()
	listOfT := func(n int) *Scheme {
		params := make([]Type, n)
		for i := range params {
			params[i] = b.Var("T")
		}
		return &Scheme{Vars: []string{"T"}, Type: &Function{Params: params, Return: b.Generic("List", b.Var("T"))}}
	}

	ctx = ctx.ExtendFunc("println", &Scheme{Vars: []string{"T"}, Type: &Function{Params: []Type{b.Var("T")}, Return: Unit}})
	ctx = ctx.ExtendFunc("emptyList", listOfT(0))
	ctx = ctx.ExtendFunc("singletonList", listOfT(1))
	ctx = ctx.ExtendFunc("listOf", listOfT(1))
	ctx = ctx.ExtendFunc("listOf2", listOfT(2))
	ctx = ctx.ExtendFunc("listOf3", listOfT(3))
	ctx = ctx.ExtendFunc("listOf4", listOfT(4))
	return ctx
}

// ExtraBuiltin describes one additional built-in function signature,
// layered on top of the fixed table in WithBuiltins for a host embedding the
// checker in a larger tool (spec.md Configuration). Parameter and return
// types name a primitive, with an optional trailing "?" for nullable — e.g.
// "Int", "String?" — rather than the full annotation grammar resolveAnnotation
// handles, since a config file has no access to a program's own union
// declarations.
type ExtraBuiltin struct {
	Name   string
	Params []string
	Return string
}

// WithExtraBuiltins extends ctx with each of extra's signatures as a
// monomorphic Function binding. It reports an error rather than silently
// dropping a signature it cannot resolve, or one that collides with an
// existing binding (the fixed table, or an earlier extra builtin).
func WithExtraBuiltins(ctx *Context, extra []ExtraBuiltin) (*Context, error) {
	for _, sig := range extra {
		if _, exists := ctx.LookupFunc(sig.Name); exists {
			return nil, fmt.Errorf("extra builtin %q collides with an existing function", sig.Name)
		}
		params := make([]Type, len(sig.Params))
		for i, p := range sig.Params {
			t, err := parsePrimitiveTypeName(p)
			if err != nil {
				return nil, fmt.Errorf("extra builtin %q parameter %d: %w", sig.Name, i+1, err)
			}
			params[i] = t
		}
		ret, err := parsePrimitiveTypeName(sig.Return)
		if err != nil {
			return nil, fmt.Errorf("extra builtin %q return type: %w", sig.Name, err)
		}
		ctx = ctx.ExtendFunc(sig.Name, &Scheme{Type: &Function{Params: params, Return: ret}})
	}
	return ctx, nil
}

func parsePrimitiveTypeName(name string) (Type, error) {
	base := strings.TrimSuffix(name, "?")
	var t Type
	switch base {
	case "Int":
		t = Int
	case "Long":
		t = Long
	case "Float":
		t = Float
	case "Double":
		t = Double
	case "Bool":
		t = Bool
	case "String":
		t = Str
	case "Unit":
		t = Unit
	default:
		return nil, fmt.Errorf("unknown type %q", name)
	}
	if strings.HasSuffix(name, "?") {
		t = &Nullable{Base: t}
	}
	return t, nil
}

// inferBuiltinMethod type-checks a call of the form receiver.method(args)
// against the fixed dispatch table (spec.md §6): toString on anything,
// toDouble on Int, toInt on Double, length on String.
func (c *Collector) inferBuiltinMethod(recvType Type, method string, argTypes []Type, pos ast.Pos) Type {
	resolved := c.sub.Apply(recvType)

	if len(argTypes) != 0 {
		c.fail(NewArityMismatchError(method, 0, len(argTypes), pos))
	}

	switch method {
	case "toString":
		return Str

	case "toDouble":
		c.unify(Int, resolved, "toDouble receiver", pos)
		return Double

	case "toInt":
		c.unify(Double, resolved, "toInt receiver", pos)
		return Int

	case "length":
		c.unify(Str, resolved, "length receiver", pos)
		return Int

	default:
		c.fail(NewInvalidOperationError("."+method+"()", resolved, pos))
		return NewVar()
	}
}
