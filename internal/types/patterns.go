package types

import (
	"fmt"

	"github.com/sunholo/tlcheck/internal/ast"
)

// checkPattern matches pat against scrutinee, extending ctx with whatever
// bindings the pattern introduces, and collecting any guard expressions
// found (spec.md §4.G: Wildcard, Identifier, Literal, Constructor, Guard).
// Guard expressions are returned rather than checked here so the caller can
// type-check them against the fully-extended context (a guard may refer to
// names the pattern itself just bound).
func (c *Collector) checkPattern(ctx *Context, pat ast.Pattern, scrutinee Type) (*Context, []ast.Expr) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return ctx, nil

	case *ast.Identifier:
		return ctx.ExtendVar(p.Name, &Scheme{Type: scrutinee}, false), nil

	case *ast.Literal:
		litType := c.inferLiteral(p)
		c.unify(scrutinee, litType, "literal pattern", p.Pos)
		return ctx, nil

	case *ast.ConstructorPattern:
		return c.checkConstructorPattern(ctx, p, scrutinee)

	case *ast.GuardPattern:
		nextCtx, innerGuards := c.checkPattern(ctx, p.Inner, scrutinee)
		return nextCtx, append(innerGuards, p.Guard)

	default:
		c.fail(&TypeCheckError{Kind: InvalidOperation, Pos: pat.Position(), Message: fmt.Sprintf("unrecognized pattern %T", pat)})
		return ctx, nil
	}
}

func (c *Collector) checkConstructorPattern(ctx *Context, p *ast.ConstructorPattern, scrutinee Type) (*Context, []ast.Expr) {
	variant, ok := ctx.LookupVariant(p.Name)
	if !ok {
		c.fail(NewUnresolvedSymbolError(p.Name, p.Pos))
		return ctx, nil
	}
	if len(variant.Fields) != len(p.SubPatterns) {
		c.fail(NewArityMismatchError(p.Name, len(variant.Fields), len(p.SubPatterns), p.Pos))
	}

	union, _ := ctx.LookupUnion(variant.Owner)
	resolved := c.sub.Apply(scrutinee)
	fresh := Substitution{}
	if named, ok := resolved.(*Named); ok && named.Name == union.Name {
		for i, tp := range union.TypeParams {
			if i < len(named.Args) {
				fresh[tp] = named.Args[i]
			}
		}
	} else {
		for _, tp := range union.TypeParams {
			fresh[tp] = NewVar()
		}
		args := make([]Type, len(union.TypeParams))
		for i, tp := range union.TypeParams {
			args[i] = fresh[tp]
		}
		c.unify(scrutinee, &Named{Name: union.Name, Args: args}, fmt.Sprintf("%s pattern", p.Name), p.Pos)
	}

	nextCtx := ctx
	var guards []ast.Expr
	n := len(p.SubPatterns)
	if len(variant.Fields) < n {
		n = len(variant.Fields)
	}
	for i := 0; i < n; i++ {
		fieldType := fresh.Apply(variant.Fields[i])
		var subGuards []ast.Expr
		nextCtx, subGuards = c.checkPattern(nextCtx, p.SubPatterns[i], fieldType)
		guards = append(guards, subGuards...)
	}
	return nextCtx, guards
}

// inferMatch type-checks a match expression: every arm's pattern is matched
// against the scrutinee's type, every arm's body must produce the same
// result type, and (outside of an always-present Wildcard/Identifier arm)
// every variant of the scrutinee's union type must be covered by at least
// one arm, guarded or not — a guard does not reduce a pattern's coverage
// contribution (spec.md §4.G exhaustiveness).
func (c *Collector) inferMatch(ctx *Context, m *ast.MatchExpr) Type {
	scrutinee := c.Infer(ctx, m.Scrutinee)
	result := NewVar()

	var coverage []coveredArm
	for _, arm := range m.Cases {
		armCtx, guards := c.checkPattern(ctx, arm.Pattern, scrutinee)
		for _, g := range guards {
			guardType := c.Infer(armCtx, g)
			c.unify(Bool, guardType, "match guard", g.Position())
		}
		bodyType := c.Infer(armCtx, arm.Body)
		c.unify(result, bodyType, "match arms must have the same type", arm.Body.Position())

		coverage = append(coverage, coveredArm{pattern: arm.Pattern})
	}

	c.checkExhaustiveness(ctx, c.sub.Apply(scrutinee), coverage, m.Pos)
	return result
}
