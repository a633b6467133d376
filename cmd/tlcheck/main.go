package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/sunholo/tlcheck/internal/ast"
	"github.com/sunholo/tlcheck/internal/config"
	"github.com/sunholo/tlcheck/internal/types"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file (defaults to built-in defaults)")
		strategy   = flag.String("strategy", "", "override the configured strategy: algorithmic or constraint")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *strategy != "" {
		cfg.Strategy = *strategy
	}

	opts := types.DefaultOptions()
	if cfg.Strategy == "algorithmic" {
		opts.Strategy = types.Algorithmic
	}
	opts.MaxErrors = cfg.MaxErrors
	opts.DisableBuiltins = cfg.DisableBuiltins
	for _, b := range cfg.Builtins {
		opts.ExtraBuiltins = append(opts.ExtraBuiltins, types.ExtraBuiltin{Name: b.Name, Params: b.Params, Return: b.Return})
	}

	fmt.Println(bold("tlcheck scenario demo"))
	fmt.Println()

	for _, sc := range scenarios() {
		runScenario(sc, opts)
	}
}

type scenario struct {
	name    string
	program *ast.Program
	// bothStrategies runs the scenario under both strategies instead of
	// just the configured one, to show where they intentionally diverge
	// (the if/else branch-type scenario).
	bothStrategies bool
}

func runScenario(sc scenario, opts types.CheckOptions) {
	fmt.Println(bold(sc.name))

	strategies := []types.Strategy{opts.Strategy}
	if sc.bothStrategies {
		strategies = []types.Strategy{types.Algorithmic, types.ConstraintBased}
	}

	for _, strat := range strategies {
		scenarioOpts := opts
		scenarioOpts.Strategy = strat
		report(strat, sc.program, scenarioOpts)
	}
	fmt.Println()
}

func report(strat types.Strategy, prog *ast.Program, opts types.CheckOptions) {
	label := "constraint-based"
	if strat == types.Algorithmic {
		label = "algorithmic"
	}

	typed, err := types.CheckProgram(prog, opts)
	if err != nil {
		fmt.Printf("  [%s] %s\n", label, red(err.Error()))
		return
	}

	result := "Unit"
	if last := lastExprType(typed, prog); last != nil {
		result = last.String()
	}
	fmt.Printf("  [%s] %s\n", label, green("ok: "+result))
}

// lastExprType returns the inferred type of the last top-level expression
// statement, if the program ends in one.
func lastExprType(typed *types.TypedProgram, prog *ast.Program) types.Type {
	if len(prog.Statements) == 0 {
		return nil
	}
	last := prog.Statements[len(prog.Statements)-1]
	stmt, ok := last.(*ast.ExprStmt)
	if !ok {
		return nil
	}
	t, _ := typed.TypeOf(stmt.Expr)
	return t
}

func intLit(v int64) *ast.Literal       { return &ast.Literal{Kind: ast.IntLit, Value: v} }
func floatLit(v float64) *ast.Literal   { return &ast.Literal{Kind: ast.FloatLit, Value: v} }
func strLit(v string) *ast.Literal      { return &ast.Literal{Kind: ast.StringLit, Value: v} }
func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func exprStmt(e ast.Expr) ast.Stmt { return &ast.ExprStmt{Expr: e} }

// scenarios mirrors a handful of the checker's documented end-to-end
// behaviors: numeric widening, string concatenation, polymorphic list
// construction, non-exhaustive match, and the algorithmic/constraint-based
// if-branch divergence.
func scenarios() []scenario {
	return []scenario{
		{
			name: "numeric widening: val x = 1 + 2.0",
			program: &ast.Program{Statements: []ast.Stmt{
				&ast.ValDecl{Name: "x", Init: &ast.BinaryOp{Left: intLit(1), Op: "+", Right: floatLit(2.0)}},
				exprStmt(ident("x")),
			}},
		},
		{
			name: `string concatenation: val s = "a" + "b"`,
			program: &ast.Program{Statements: []ast.Stmt{
				&ast.ValDecl{Name: "s", Init: &ast.BinaryOp{Left: strLit("a"), Op: "+", Right: strLit("b")}},
				exprStmt(ident("s")),
			}},
		},
		{
			name: "polymorphic list: val l = listOf(42)",
			program: &ast.Program{Statements: []ast.Stmt{
				&ast.ValDecl{Name: "l", Init: &ast.FunctionCall{Callee: ident("listOf"), Args: []ast.Expr{intLit(42)}}},
				exprStmt(ident("l")),
			}},
		},
		{
			name:           "non-exhaustive match over Shape = Circle(Int) | Square(Int)",
			bothStrategies: false,
			program: &ast.Program{Statements: []ast.Stmt{
				&ast.TypeDecl{Name: "Shape", Variants: []*ast.VariantDef{
					{Name: "Circle", Fields: []ast.Type{&ast.NamedType{Name: "Int"}}},
					{Name: "Square", Fields: []ast.Type{&ast.NamedType{Name: "Int"}}},
				}},
				&ast.ValDecl{Name: "s", Init: &ast.ConstructorCall{Name: "Circle", Args: []ast.Expr{intLit(3)}}},
				exprStmt(&ast.MatchExpr{
					Scrutinee: ident("s"),
					Cases: []*ast.MatchCase{
						{Pattern: &ast.ConstructorPattern{Name: "Circle", SubPatterns: []ast.Pattern{ident("r")}}, Body: ident("r")},
					},
				}),
			}},
		},
		{
			name: "if/else branch divergence: if (true) 1 else 2.0",
			bothStrategies: true,
			program: &ast.Program{Statements: []ast.Stmt{
				exprStmt(&ast.IfExpr{
					Condition: &ast.Literal{Kind: ast.BoolLit, Value: true},
					Then:      intLit(1),
					Else:      floatLit(2.0),
				}),
			}},
		},
	}
}
