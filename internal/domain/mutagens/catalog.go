// Package mutagens holds the mutation catalog: which operators are
// interchangeable for each node kind, and how to read and rewrite them.
package mutagens

import (
	"errors"
	"fmt"
	"slices"

	m "gooze.dev/pkg/gomutest/internal/model"
)

// ErrDuplicateOperator is returned when a rule claims a (kind, op) pair that
// another rule already owns.
var ErrDuplicateOperator = errors.New("operator already registered")

// Rule declares a group of interchangeable operators for one node kind.
type Rule struct {
	Kind     m.NodeKind
	Category m.Category
	Ops      []string
}

type ruleKey struct {
	kind m.NodeKind
	op   string
}

// Catalog is the registration table consulted by the collector and mutator.
// The zero value is an empty, usable catalog.
type Catalog struct {
	rules []Rule
	kinds []m.NodeKind
	index map[ruleKey]int
}

// NewCatalog builds a catalog from rules, in order.
func NewCatalog(rules ...Rule) (*Catalog, error) {
	c := &Catalog{}
	for _, rule := range rules {
		if err := c.Register(rule); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Default returns a catalog holding every built-in rule.
func Default() *Catalog {
	c, err := NewCatalog(builtinRules()...)
	if err != nil {
		panic(err)
	}

	return c
}

func builtinRules() []Rule {
	return []Rule{
		arithmeticRule,
		comparisonRule,
		logicalRule,
		bitwiseRule,
		shiftRule,
		assignmentRule,
		incDecRule,
		unaryRule,
		booleanRule,
	}
}

// Register appends a rule. A (kind, op) pair may belong to one rule only.
func (c *Catalog) Register(rule Rule) error {
	if c.index == nil {
		c.index = make(map[ruleKey]int)
	}

	if _, ok := accessors[rule.Kind]; !ok {
		return fmt.Errorf("register %s rule: unsupported node kind %q", rule.Category, rule.Kind)
	}

	for _, op := range rule.Ops {
		if _, ok := c.index[ruleKey{rule.Kind, op}]; ok {
			return fmt.Errorf("%w: %s %q", ErrDuplicateOperator, rule.Kind, op)
		}
	}

	idx := len(c.rules)
	c.rules = append(c.rules, rule)

	for _, op := range rule.Ops {
		c.index[ruleKey{rule.Kind, op}] = idx
	}

	if !slices.Contains(c.kinds, rule.Kind) {
		c.kinds = append(c.kinds, rule.Kind)
	}

	return nil
}

// Lookup returns the rule owning op for kind.
func (c *Catalog) Lookup(kind m.NodeKind, op string) (Rule, bool) {
	idx, ok := c.index[ruleKey{kind, op}]
	if !ok {
		return Rule{}, false
	}

	return c.rules[idx], true
}

// Alternatives lists the operators op may be replaced with, in registration order.
func (c *Catalog) Alternatives(kind m.NodeKind, op string) []string {
	rule, ok := c.Lookup(kind, op)
	if !ok {
		return nil
	}

	alternatives := make([]string, 0, len(rule.Ops)-1)

	for _, candidate := range rule.Ops {
		if candidate != op {
			alternatives = append(alternatives, candidate)
		}
	}

	return alternatives
}

// Allowed reports whether replacement is interchangeable with op.
func (c *Catalog) Allowed(kind m.NodeKind, op, replacement string) bool {
	if op == replacement {
		return false
	}

	return slices.Contains(c.Alternatives(kind, op), replacement)
}

// Categories returns the registered categories in registration order.
func (c *Catalog) Categories() []m.Category {
	categories := make([]m.Category, 0, len(c.rules))

	for _, rule := range c.rules {
		if !slices.Contains(categories, rule.Category) {
			categories = append(categories, rule.Category)
		}
	}

	return categories
}

// Kinds returns the node kinds that have at least one rule.
func (c *Catalog) Kinds() []m.NodeKind {
	return slices.Clone(c.kinds)
}

// Only returns a new catalog restricted to the given categories.
// An empty list keeps everything.
func (c *Catalog) Only(categories ...m.Category) (*Catalog, error) {
	if len(categories) == 0 {
		return NewCatalog(c.rules...)
	}

	known := c.Categories()

	var rules []Rule

	for _, category := range categories {
		if !slices.Contains(known, category) {
			return nil, fmt.Errorf("unsupported mutation category: %s", category)
		}
	}

	for _, rule := range c.rules {
		if slices.Contains(categories, rule.Category) {
			rules = append(rules, rule)
		}
	}

	return NewCatalog(rules...)
}
