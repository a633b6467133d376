package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarSubstituteChasesChainTransitively(t *testing.T) {
	sub := Substitution{
		"a": &Var{Name: "b"},
		"b": &Var{Name: "c"},
		"c": Double,
	}
	assert.Equal(t, "Double", (&Var{Name: "a"}).Substitute(sub).String())
	assert.Equal(t, "Double", (&Var{Name: "b"}).Substitute(sub).String())
}

func TestVarSubstituteStopsAtUnboundVar(t *testing.T) {
	sub := Substitution{"a": &Var{Name: "b"}}
	assert.Equal(t, "b", (&Var{Name: "a"}).Substitute(sub).String())
}

func TestVarSubstituteGuardsAgainstCycle(t *testing.T) {
	// Not reachable through normal bind/rebind (the occurs check prevents a
	// variable from binding to a type containing itself), but Substitute
	// must not loop forever if a cycle is ever constructed directly.
	sub := Substitution{"a": &Var{Name: "b"}, "b": &Var{Name: "a"}}
	assert.NotPanics(t, func() {
		(&Var{Name: "a"}).Substitute(sub)
	})
}
