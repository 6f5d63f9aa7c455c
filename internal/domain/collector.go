// Package domain contains the mutation engine: site collection, the genome,
// coverage filtering, mutant building and trial classification.
package domain

import (
	"fmt"
	"go/ast"

	"gooze.dev/pkg/gomutest/internal/domain/mutagens"
	m "gooze.dev/pkg/gomutest/internal/model"
)

// Collector walks a tree in a fixed pre-order and either records every
// catalog site (collect mode) or rewrites a single one (mutate mode).
// It keeps no state between calls.
type Collector struct {
	catalog *mutagens.Catalog
}

// NewCollector returns a collector over catalog. A nil catalog means mutagens.Default().
func NewCollector(catalog *mutagens.Catalog) *Collector {
	if catalog == nil {
		catalog = mutagens.Default()
	}

	return &Collector{catalog: catalog}
}

// Catalog returns the catalog consulted by the collector.
func (c *Collector) Catalog() *mutagens.Catalog {
	return c.catalog
}

// Collect returns every candidate site in tree. The tree is not modified.
func (c *Collector) Collect(tree *m.Tree) m.SiteSet {
	v := &visitor{catalog: c.catalog, tree: tree, sites: make(m.SiteSet)}
	v.walk()

	return v.sites
}

// Mutate rewrites, in place, the node whose site equals target so that it
// uses replacement. A target absent from tree is an error, never a no-op.
func (c *Collector) Mutate(tree *m.Tree, target m.Site, replacement string) error {
	if !c.catalog.Allowed(target.Kind, target.Op, replacement) {
		return fmt.Errorf("%w: %q for %s", m.ErrInvalidReplacement, replacement, target)
	}

	v := &visitor{catalog: c.catalog, tree: tree, target: &target, replacement: replacement}
	v.walk()

	if v.err != nil {
		return v.err
	}

	if !v.applied {
		return fmt.Errorf("%w: %s in %s", m.ErrSiteNotFound, target, tree.Path)
	}

	return nil
}

type visitor struct {
	catalog *mutagens.Catalog
	tree    *m.Tree

	// collect mode
	sites m.SiteSet

	// mutate mode
	target      *m.Site
	replacement string
	applied     bool
	err         error
}

func (v *visitor) walk() {
	var stack []ast.Node

	ast.Inspect(v.tree.File, func(n ast.Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return false
		}

		if v.applied || v.err != nil {
			return false
		}

		parent := parentOf(stack)

		site, ok := v.catalog.SiteOf(v.tree.Fset, parent, n)
		if ok {
			if v.target == nil {
				v.sites.Add(site)
			} else if site == *v.target {
				v.apply(parent, n)
				return false
			}
		}

		stack = append(stack, n)

		return true
	})
}

func (v *visitor) apply(parent, n ast.Node) {
	if err := mutagens.Rewrite(v.target.Kind, n, v.replacement); err != nil {
		v.err = fmt.Errorf("rewrite %s: %w", v.target, err)
		return
	}

	parenthesize(parent, n)

	v.applied = true
}

func parentOf(stack []ast.Node) ast.Node {
	if len(stack) == 0 {
		return nil
	}

	return stack[len(stack)-1]
}

// parenthesize keeps the tree's shape when a new binary operator binds less
// tightly than its operands or its parent, so that printing and re-parsing
// yields the same expression tree.
func parenthesize(parent, n ast.Node) {
	expr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return
	}

	prec := expr.Op.Precedence()

	if x, ok := expr.X.(*ast.BinaryExpr); ok && x.Op.Precedence() < prec {
		expr.X = &ast.ParenExpr{X: x}
	}

	if y, ok := expr.Y.(*ast.BinaryExpr); ok && y.Op.Precedence() <= prec {
		expr.Y = &ast.ParenExpr{X: y}
	}

	p, ok := parent.(*ast.BinaryExpr)
	if !ok {
		return
	}

	pp := p.Op.Precedence()

	switch {
	case p.X == n && prec < pp:
		p.X = &ast.ParenExpr{X: expr}
	case p.Y == n && prec <= pp:
		p.Y = &ast.ParenExpr{X: expr}
	}
}
