package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveTypes(t *testing.T) {
	b := NewBuilder()

	tests := []struct {
		name     string
		builder  func() Type
		expected string
	}{
		{"Int", b.Int, "Int"},
		{"Long", b.Long, "Long"},
		{"Float", b.Float, "Float"},
		{"Double", b.Double, "Double"},
		{"Bool", b.Bool, "Bool"},
		{"String", b.String, "String"},
		{"Unit", b.Unit, "Unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.builder().String())
		})
	}
}

func TestVar(t *testing.T) {
	b := NewBuilder()

	a := b.Var("a")
	assert.IsType(t, &Var{}, a)
	assert.Equal(t, "a", a.(*Var).Name)
}

func TestNamedAndGeneric(t *testing.T) {
	b := NewBuilder()

	bare := b.Named("Option")
	assert.IsType(t, &Named{}, bare)
	assert.Equal(t, "Option", bare.String())

	applied := b.Generic("Option", b.Int())
	named := applied.(*Named)
	assert.Equal(t, "Option", named.Name)
	require.Len(t, named.Args, 1)
	assert.Equal(t, "Int", named.Args[0].String())
	assert.Equal(t, "Option[Int]", applied.String())
}

func TestGenericZeroArgs(t *testing.T) {
	b := NewBuilder()

	typ := b.Generic("Option")
	named, ok := typ.(*Named)
	require.True(t, ok)
	assert.Equal(t, "Option", named.Name)
	assert.Empty(t, named.Args)
}

func TestNullable(t *testing.T) {
	b := NewBuilder()

	opt := b.Nullable(b.Int())
	assert.Equal(t, "Int?", opt.String())
}

func TestTupleBuilder(t *testing.T) {
	b := NewBuilder()

	tup := b.Tuple(b.Int(), b.String())
	assert.Equal(t, "(Int, String)", tup.String())
}

func TestFuncBasic(t *testing.T) {
	b := NewBuilder()

	funcType := b.Func(b.String(), b.Int()).Returns(b.Bool())

	fn, ok := funcType.(*Function)
	require.True(t, ok)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "String", fn.Params[0].String())
	assert.Equal(t, "Int", fn.Params[1].String())
	assert.Equal(t, "Bool", fn.Return.String())
}

func TestSchemeInstantiate(t *testing.T) {
	b := NewBuilder()

	identity := b.Scheme([]string{"a"}, b.Func(b.Var("a")).Returns(b.Var("a")))

	inst1 := identity.Instantiate().(*Function)
	inst2 := identity.Instantiate().(*Function)

	// Each instantiation mints fresh variables distinct from one another.
	assert.NotEqual(t, inst1.Params[0].String(), inst2.Params[0].String())
	// But within one instantiation, the quantified variable is consistent.
	assert.Equal(t, inst1.Params[0].String(), inst1.Return.String())
}

func TestComplexType(t *testing.T) {
	b := NewBuilder()

	// (String, List[Int]) -> Option[Int]
	fn := b.Func(b.String(), b.Generic("List", b.Int())).Returns(b.Generic("Option", b.Int()))

	funcType := fn.(*Function)
	require.Len(t, funcType.Params, 2)
	assert.Equal(t, "List[Int]", funcType.Params[1].String())
	assert.Equal(t, "Option[Int]", funcType.Return.String())
}

func TestBuilderReuse(t *testing.T) {
	b := NewBuilder()

	t1 := b.String()
	t2 := b.Int()
	t3 := b.Generic("List", b.Bool())

	assert.Equal(t, "String", t1.String())
	assert.Equal(t, "Int", t2.String())
	assert.IsType(t, &Named{}, t3)
}

func TestCompareWithManualConstruction(t *testing.T) {
	b := NewBuilder()

	manual := &Function{Params: []Type{Str}, Return: Int}
	built := b.Func(b.String()).Returns(b.Int())

	assert.Equal(t, manual.String(), built.String())
}
