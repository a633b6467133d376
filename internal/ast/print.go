package ast

import (
	"encoding/json"
	"fmt"
)

// PrintProgram produces a deterministic JSON representation of a Program.
func PrintProgram(prog *Program) string {
	if prog == nil {
		return "null"
	}
	m := map[string]interface{}{"type": "Program"}
	if len(prog.Statements) > 0 {
		m["statements"] = simplifyStmtSlice(prog.Statements)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// Print produces a deterministic JSON representation of an AST node, used
// for golden snapshot testing. Omits source positions so fixtures don't
// drift when a test program is reformatted.
func Print(node Node) string {
	if node == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// Compact returns a compact single-line JSON representation.
func Compact(node Node) string {
	data, err := json.Marshal(simplify(node))
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplify(node interface{}) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		m := map[string]interface{}{"type": "Program"}
		if len(n.Statements) > 0 {
			m["statements"] = simplifyStmtSlice(n.Statements)
		}
		return m

	case *Identifier:
		return map[string]interface{}{"type": "Identifier", "name": n.Name}

	case *Literal:
		m := map[string]interface{}{"type": "Literal", "kind": literalKindString(n.Kind)}
		if n.Value != nil {
			m["value"] = n.Value
		}
		return m

	case *TupleExpr:
		m := map[string]interface{}{"type": "TupleExpr"}
		if len(n.Elements) > 0 {
			m["elements"] = simplifyExprSlice(n.Elements)
		}
		return m

	case *BinaryOp:
		return map[string]interface{}{
			"type": "BinaryOp", "op": n.Op,
			"left": simplify(n.Left), "right": simplify(n.Right),
		}

	case *UnaryOp:
		return map[string]interface{}{"type": "UnaryOp", "op": n.Op, "operand": simplify(n.Operand)}

	case *LambdaExpr:
		m := map[string]interface{}{"type": "LambdaExpr", "body": simplify(n.Body)}
		if len(n.Params) > 0 {
			m["params"] = simplifyParamSlice(n.Params)
		}
		return m

	case *FunctionCall:
		m := map[string]interface{}{"type": "FunctionCall", "callee": simplify(n.Callee)}
		if len(n.Args) > 0 {
			m["args"] = simplifyExprSlice(n.Args)
		}
		return m

	case *ConstructorCall:
		m := map[string]interface{}{"type": "ConstructorCall", "name": n.Name}
		if len(n.Args) > 0 {
			m["args"] = simplifyExprSlice(n.Args)
		}
		return m

	case *PropertyAccess:
		m := map[string]interface{}{
			"type": "PropertyAccess", "receiver": simplify(n.Receiver), "property": n.Property,
		}
		if n.Args != nil {
			m["args"] = simplifyExprSlice(*n.Args)
		}
		return m

	case *IndexAccess:
		return map[string]interface{}{
			"type": "IndexAccess", "receiver": simplify(n.Receiver), "index": simplify(n.Index),
		}

	case *IfExpr:
		m := map[string]interface{}{
			"type": "IfExpr", "condition": simplify(n.Condition), "then": simplify(n.Then),
		}
		if n.Else != nil {
			m["else"] = simplify(n.Else)
		}
		return m

	case *WhileExpr:
		return map[string]interface{}{
			"type": "WhileExpr", "condition": simplify(n.Condition), "body": simplify(n.Body),
		}

	case *ForExpr:
		return map[string]interface{}{
			"type": "ForExpr", "var": n.Var, "iterable": simplify(n.Iterable), "body": simplify(n.Body),
		}

	case *MatchExpr:
		m := map[string]interface{}{"type": "MatchExpr", "scrutinee": simplify(n.Scrutinee)}
		if len(n.Cases) > 0 {
			cases := make([]interface{}, len(n.Cases))
			for i, c := range n.Cases {
				cases[i] = map[string]interface{}{
					"pattern": simplify(c.Pattern), "body": simplify(c.Body),
				}
			}
			m["cases"] = cases
		}
		return m

	case *BlockExpr:
		m := map[string]interface{}{"type": "BlockExpr"}
		if len(n.Statements) > 0 {
			m["statements"] = simplifyStmtSlice(n.Statements)
		}
		return m

	case *ValDecl:
		m := map[string]interface{}{"type": "ValDecl", "name": n.Name, "init": simplify(n.Init)}
		if n.Type != nil {
			m["typeAnnotation"] = simplify(n.Type)
		}
		return m

	case *VarDecl:
		m := map[string]interface{}{"type": "VarDecl", "name": n.Name, "init": simplify(n.Init)}
		if n.Type != nil {
			m["typeAnnotation"] = simplify(n.Type)
		}
		return m

	case *Assignment:
		return map[string]interface{}{"type": "Assignment", "name": n.Name, "value": simplify(n.Value)}

	case *ReturnStatement:
		m := map[string]interface{}{"type": "ReturnStatement"}
		if n.Value != nil {
			m["value"] = simplify(n.Value)
		}
		return m

	case *ExprStmt:
		return map[string]interface{}{"type": "ExprStmt", "expr": simplify(n.Expr)}

	case *FuncDecl:
		m := map[string]interface{}{"type": "FuncDecl", "name": n.Name, "body": simplify(n.Body)}
		if len(n.Params) > 0 {
			m["params"] = simplifyParamSlice(n.Params)
		}
		if len(n.TypeParams) > 0 {
			m["typeParams"] = n.TypeParams
		}
		if n.ReturnType != nil {
			m["returnType"] = simplify(n.ReturnType)
		}
		return m

	case *TypeDecl:
		m := map[string]interface{}{"type": "TypeDecl", "name": n.Name}
		if len(n.TypeParams) > 0 {
			m["typeParams"] = n.TypeParams
		}
		if len(n.Variants) > 0 {
			variants := make([]interface{}, len(n.Variants))
			for i, v := range n.Variants {
				vm := map[string]interface{}{"name": v.Name}
				if len(v.Fields) > 0 {
					vm["fields"] = simplifyTypeSlice(v.Fields)
				}
				variants[i] = vm
			}
			m["variants"] = variants
		}
		return m

	// Patterns
	case *WildcardPattern:
		return map[string]interface{}{"type": "WildcardPattern"}

	case *ConstructorPattern:
		m := map[string]interface{}{"type": "ConstructorPattern", "name": n.Name}
		if len(n.SubPatterns) > 0 {
			m["subPatterns"] = simplifyPatternSlice(n.SubPatterns)
		}
		return m

	case *GuardPattern:
		return map[string]interface{}{
			"type": "GuardPattern", "inner": simplify(n.Inner), "guard": simplify(n.Guard),
		}

	// Types
	case *NamedType:
		return map[string]interface{}{"type": "NamedType", "name": n.Name}

	case *GenericType:
		m := map[string]interface{}{"type": "GenericType", "name": n.Name}
		if len(n.Args) > 0 {
			m["args"] = simplifyTypeSlice(n.Args)
		}
		return m

	case *NullableType:
		return map[string]interface{}{"type": "NullableType", "base": simplify(n.Base)}

	case *TupleType:
		m := map[string]interface{}{"type": "TupleType"}
		if len(n.Elements) > 0 {
			m["elements"] = simplifyTypeSlice(n.Elements)
		}
		return m

	case *FunctionType:
		m := map[string]interface{}{"type": "FunctionType", "return": simplify(n.Return)}
		if len(n.Params) > 0 {
			m["params"] = simplifyTypeSlice(n.Params)
		}
		return m

	case *Param:
		m := map[string]interface{}{"type": "Param", "name": n.Name}
		if n.Type != nil {
			m["typeAnnotation"] = simplify(n.Type)
		}
		return m

	default:
		return map[string]interface{}{
			"type":  fmt.Sprintf("%T", node),
			"_note": "not yet handled by printer",
		}
	}
}

func simplifyStmtSlice(stmts []Stmt) []interface{} {
	result := make([]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = simplify(s)
	}
	return result
}

func simplifyExprSlice(exprs []Expr) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = simplify(e)
	}
	return result
}

func simplifyTypeSlice(types []Type) []interface{} {
	result := make([]interface{}, len(types))
	for i, t := range types {
		result[i] = simplify(t)
	}
	return result
}

func simplifyPatternSlice(patterns []Pattern) []interface{} {
	result := make([]interface{}, len(patterns))
	for i, p := range patterns {
		result[i] = simplify(p)
	}
	return result
}

func simplifyParamSlice(params []*Param) []interface{} {
	result := make([]interface{}, len(params))
	for i, p := range params {
		result[i] = simplify(p)
	}
	return result
}

func literalKindString(kind LiteralKind) string {
	switch kind {
	case IntLit:
		return "Int"
	case FloatLit:
		return "Float"
	case StringLit:
		return "String"
	case BoolLit:
		return "Bool"
	case NullLit:
		return "Null"
	default:
		return "Unknown"
	}
}
