package mutagens

import (
	"fmt"
	"go/ast"
	"go/token"

	m "gooze.dev/pkg/gomutest/internal/model"
)

// accessor reads and rewrites the operator of one node kind.
type accessor struct {
	read  func(parent, n ast.Node) (op string, pos token.Pos, ok bool)
	write func(n ast.Node, op string) error
}

var accessors = map[m.NodeKind]accessor{
	m.KindBinaryExpr: {
		read: func(_, n ast.Node) (string, token.Pos, bool) {
			e, ok := n.(*ast.BinaryExpr)
			if !ok {
				return "", token.NoPos, false
			}

			return e.Op.String(), e.OpPos, true
		},
		write: func(n ast.Node, op string) error {
			tok, err := operatorToken(op)
			if err != nil {
				return err
			}

			n.(*ast.BinaryExpr).Op = tok

			return nil
		},
	},
	m.KindAssignStmt: {
		read: func(_, n ast.Node) (string, token.Pos, bool) {
			s, ok := n.(*ast.AssignStmt)
			if !ok {
				return "", token.NoPos, false
			}

			return s.Tok.String(), s.TokPos, true
		},
		write: func(n ast.Node, op string) error {
			tok, err := operatorToken(op)
			if err != nil {
				return err
			}

			n.(*ast.AssignStmt).Tok = tok

			return nil
		},
	},
	m.KindIncDecStmt: {
		read: func(_, n ast.Node) (string, token.Pos, bool) {
			s, ok := n.(*ast.IncDecStmt)
			if !ok {
				return "", token.NoPos, false
			}

			return s.Tok.String(), s.TokPos, true
		},
		write: func(n ast.Node, op string) error {
			tok, err := operatorToken(op)
			if err != nil {
				return err
			}

			n.(*ast.IncDecStmt).Tok = tok

			return nil
		},
	},
	m.KindUnaryExpr: {
		read: func(_, n ast.Node) (string, token.Pos, bool) {
			e, ok := n.(*ast.UnaryExpr)
			if !ok {
				return "", token.NoPos, false
			}

			return e.Op.String(), e.OpPos, true
		},
		write: func(n ast.Node, op string) error {
			tok, err := operatorToken(op)
			if err != nil {
				return err
			}

			n.(*ast.UnaryExpr).Op = tok

			return nil
		},
	},
	m.KindIdent: {
		read: func(parent, n ast.Node) (string, token.Pos, bool) {
			id, ok := n.(*ast.Ident)
			if !ok || !isBooleanConstant(parent, id) {
				return "", token.NoPos, false
			}

			return id.Name, id.NamePos, true
		},
		write: func(n ast.Node, op string) error {
			if !isBooleanLiteral(op) {
				return fmt.Errorf("%q is not a boolean constant", op)
			}

			n.(*ast.Ident).Name = op

			return nil
		},
	},
}

// operators maps operator text to its token.
var operators = func() map[string]token.Token {
	ops := make(map[string]token.Token)
	for tok := token.ADD; tok <= token.COLON; tok++ {
		ops[tok.String()] = tok
	}

	return ops
}()

func operatorToken(op string) (token.Token, error) {
	tok, ok := operators[op]
	if !ok {
		return token.ILLEGAL, fmt.Errorf("unknown operator %q", op)
	}

	return tok, nil
}

// SiteOf derives the mutation site of n if the catalog covers it. parent is
// the node directly enclosing n, or nil at the root.
func (c *Catalog) SiteOf(fset *token.FileSet, parent, n ast.Node) (m.Site, bool) {
	for _, kind := range c.kinds {
		op, pos, ok := accessors[kind].read(parent, n)
		if !ok {
			continue
		}

		if _, ok := c.Lookup(kind, op); !ok {
			return m.Site{}, false
		}

		p := fset.Position(pos)

		return m.Site{Kind: kind, Line: p.Line, Column: p.Column, Op: op}, true
	}

	return m.Site{}, false
}

// Rewrite replaces the operator of n, which must be of the given kind.
func Rewrite(kind m.NodeKind, n ast.Node, op string) error {
	acc, ok := accessors[kind]
	if !ok {
		return fmt.Errorf("unsupported node kind %q", kind)
	}

	return acc.write(n, op)
}
