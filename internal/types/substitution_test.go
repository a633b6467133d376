package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitutionApplyEmpty(t *testing.T) {
	var sub Substitution
	assert.True(t, sub.Empty())
	assert.Equal(t, Int, sub.Apply(Int))
}

func TestSubstitutionApplyVar(t *testing.T) {
	sub := Substitution{"a": Int}
	v := &Var{Name: "a"}
	assert.Equal(t, Int, sub.Apply(v))
}

func TestSubstitutionApplyNested(t *testing.T) {
	sub := Substitution{"a": Int}
	typ := &Nullable{Base: &Var{Name: "a"}}
	assert.Equal(t, "Int?", sub.Apply(typ).String())
}

func TestSubstitutionComposeOrder(t *testing.T) {
	// s.Compose(other).Apply(t) == s.Apply(other.Apply(t))
	other := Substitution{"a": &Var{Name: "b"}}
	s := Substitution{"b": Int}

	composed := s.Compose(other)
	typ := &Var{Name: "a"}

	direct := s.Apply(other.Apply(typ))
	viaComposed := composed.Apply(typ)

	assert.Equal(t, direct.String(), viaComposed.String())
}

func TestSubstitutionComposePrefersOtherOnConflict(t *testing.T) {
	s := Substitution{"a": Long}
	other := Substitution{"a": Int}

	composed := s.Compose(other)
	assert.Equal(t, "Int", composed.Apply(&Var{Name: "a"}).String())
}
