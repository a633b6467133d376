package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextExtendVarShadowing(t *testing.T) {
	root := NewContext()
	outer := root.ExtendVar("x", &Scheme{Type: Int}, false)
	inner := outer.ExtendVar("x", &Scheme{Type: Str}, false)

	binding, ok := inner.LookupVar("x")
	require.True(t, ok)
	assert.Equal(t, "String", binding.Scheme.Type.String())

	outerBinding, ok := outer.LookupVar("x")
	require.True(t, ok)
	assert.Equal(t, "Int", outerBinding.Scheme.Type.String())
}

func TestContextExtendIsImmutable(t *testing.T) {
	root := NewContext()
	_ = root.ExtendVar("x", &Scheme{Type: Int}, false)

	_, ok := root.LookupVar("x")
	assert.False(t, ok, "extending a context must not mutate the receiver")
}

func TestContextResolvePrefersFunctionOverVariable(t *testing.T) {
	ctx := NewContext().
		ExtendVar("f", &Scheme{Type: Str}, false).
		ExtendFunc("f", &Scheme{Type: Int})

	scheme, ok := ctx.Resolve("f")
	require.True(t, ok)
	assert.Equal(t, "Int", scheme.Type.String())
}

func TestContextLookupUnionAndVariant(t *testing.T) {
	union := &UnionInfo{
		Name:       "Shape",
		TypeParams: nil,
		Variants: []*VariantInfo{
			{Name: "Circle", Fields: []Type{Int}, Owner: "Shape"},
			{Name: "Square", Fields: []Type{Int}, Owner: "Shape"},
		},
	}
	ctx := NewContext().ExtendUnion(union)

	got, ok := ctx.LookupUnion("Shape")
	require.True(t, ok)
	assert.Equal(t, union, got)

	variant, ok := ctx.LookupVariant("Circle")
	require.True(t, ok)
	assert.Equal(t, "Shape", variant.Owner)

	_, ok = ctx.LookupVariant("Triangle")
	assert.False(t, ok)
}

func TestContextMutableFlagCarried(t *testing.T) {
	ctx := NewContext().ExtendVar("count", &Scheme{Type: Int}, true)
	binding, ok := ctx.LookupVar("count")
	require.True(t, ok)
	assert.True(t, binding.Mutable)
}

func TestContextFreeVarsAcrossScopes(t *testing.T) {
	ctx := NewContext().
		ExtendVar("x", &Scheme{Type: &Var{Name: "t1"}}, false).
		ExtendFunc("f", &Scheme{Vars: []string{"t2"}, Type: &Var{Name: "t2"}})

	free := ctx.FreeVars()
	assert.True(t, free["t1"])
	assert.False(t, free["t2"], "a scheme's own quantified variables aren't free")
}

func TestContextApplySubstitutionResolvesBindings(t *testing.T) {
	ctx := NewContext().ExtendVar("x", &Scheme{Type: &Var{Name: "t1"}}, false)
	resolved := ctx.ApplySubstitution(Substitution{"t1": Int})

	binding, ok := resolved.LookupVar("x")
	require.True(t, ok)
	assert.Equal(t, "Int", binding.Scheme.Type.String())
}
