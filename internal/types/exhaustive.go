package types

import (
	"github.com/sunholo/tlcheck/internal/ast"
)

// coveredArm records enough about one match arm to decide exhaustiveness:
// which constructor (if any) its top-level pattern matches and whether it's
// a catch-all. Guards do not reduce coverage (spec.md §4.G): whatever
// coverage an arm's inner pattern contributes, a wrapping guard leaves
// unchanged.
type coveredArm struct {
	pattern ast.Pattern
}

// isCatchAll reports whether arm's pattern matches every value of its type
// regardless of variant — a Wildcard or a bare binder, possibly guarded,
// never a literal or constructor pattern.
func (a coveredArm) isCatchAll() bool {
	p := a.pattern
	if g, ok := p.(*ast.GuardPattern); ok {
		p = g.Inner
	}
	switch p.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.Identifier:
		return true
	default:
		return false
	}
}

// constructorName returns the variant name a ConstructorPattern matches, or
// "" if the arm's pattern isn't a (possibly guarded) constructor pattern.
func (a coveredArm) constructorName() string {
	p := a.pattern
	if g, ok := p.(*ast.GuardPattern); ok {
		p = g.Inner
	}
	if cp, ok := p.(*ast.ConstructorPattern); ok {
		return cp.Name
	}
	return ""
}

// checkExhaustiveness reports a NonExhaustiveMatch error when scrutinee is a
// declared union type and the arms' combined coverage misses a variant.
// Guards do not reduce coverage (spec.md §4.G): a guarded arm contributes
// the same coverage its inner pattern would contribute unguarded.
func (c *Collector) checkExhaustiveness(ctx *Context, scrutinee Type, arms []coveredArm, pos ast.Pos) {
	named, ok := scrutinee.(*Named)
	if !ok {
		return
	}
	union, ok := ctx.LookupUnion(named.Name)
	if !ok {
		return
	}

	for _, arm := range arms {
		if arm.isCatchAll() {
			return
		}
	}

	covered := make(map[string]bool)
	for _, arm := range arms {
		if name := arm.constructorName(); name != "" {
			covered[name] = true
		}
	}

	var missing []string
	for _, v := range union.Variants {
		if !covered[v.Name] {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		c.fail(NewNonExhaustiveMatchError(missing, pos))
	}
}
