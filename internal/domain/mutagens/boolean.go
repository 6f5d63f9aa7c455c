package mutagens

import (
	"go/ast"
	"slices"

	m "gooze.dev/pkg/gomutest/internal/model"
)

const (
	trueStr  = "true"
	falseStr = "false"
)

var booleanRule = Rule{
	Kind:     m.KindIdent,
	Category: m.CategoryBoolean,
	Ops:      []string{trueStr, falseStr},
}

// isBooleanConstant reports whether id refers to the predeclared constant.
// The parser leaves Obj nil for universe identifiers, so a locally declared
// true or false is not a site. Obj is also nil on names that never resolve
// in expression scope, which are ruled out by their position under parent.
func isBooleanConstant(parent ast.Node, id *ast.Ident) bool {
	//nolint:staticcheck // Obj is the only resolution information available without type checking.
	return isBooleanLiteral(id.Name) && id.Obj == nil && !isNamePosition(parent, id)
}

// isNamePosition reports whether id names a field, method or label rather
// than a value. Composite literal keys are treated as field names since a
// struct key cannot be told apart from a map key without type information.
func isNamePosition(parent ast.Node, id *ast.Ident) bool {
	switch p := parent.(type) {
	case *ast.SelectorExpr:
		return p.Sel == id
	case *ast.KeyValueExpr:
		return p.Key == id
	case *ast.FuncDecl:
		return p.Name == id
	case *ast.Field:
		return slices.Contains(p.Names, id)
	case *ast.LabeledStmt:
		return p.Label == id
	case *ast.BranchStmt:
		return p.Label == id
	default:
		return false
	}
}

// isBooleanLiteral checks if a string is a boolean literal.
func isBooleanLiteral(name string) bool {
	return name == trueStr || name == falseStr
}
