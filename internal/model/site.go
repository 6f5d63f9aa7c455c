// Package model defines the data structures for mutation testing.
package model

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// NodeKind tags the syntax node category a mutation site belongs to.
type NodeKind string

// Node kinds participating in the mutation catalog.
const (
	KindBinaryExpr NodeKind = "BinaryExpr"
	KindAssignStmt NodeKind = "AssignStmt"
	KindIncDecStmt NodeKind = "IncDecStmt"
	KindUnaryExpr  NodeKind = "UnaryExpr"
	KindIdent      NodeKind = "Ident"
)

// Site identifies exactly one candidate mutation location within a tree.
// Line and Column are those of the operator token itself, so nested
// expressions such as a + b + c yield distinct sites.
type Site struct {
	Kind   NodeKind
	Line   int
	Column int
	Op     string
}

// NewSite validates and builds a Site. All four fields are required.
func NewSite(kind NodeKind, line, column int, op string) (Site, error) {
	switch {
	case kind == "":
		return Site{}, fmt.Errorf("%w: empty node kind", ErrInvalidSite)
	case line < 1:
		return Site{}, fmt.Errorf("%w: line %d", ErrInvalidSite, line)
	case column < 0:
		return Site{}, fmt.Errorf("%w: column %d", ErrInvalidSite, column)
	case op == "":
		return Site{}, fmt.Errorf("%w: empty operator", ErrInvalidSite)
	}

	return Site{Kind: kind, Line: line, Column: column, Op: op}, nil
}

// String renders the site as Kind@line:col(op).
func (s Site) String() string {
	return fmt.Sprintf("%s@%d:%d(%s)", s.Kind, s.Line, s.Column, s.Op)
}

// ParseSite is the inverse of Site.String.
func ParseSite(value string) (Site, error) {
	kind, rest, ok := strings.Cut(strings.TrimSpace(value), "@")
	if !ok {
		return Site{}, fmt.Errorf("%w: %q missing '@'", ErrInvalidSite, value)
	}

	open := strings.Index(rest, "(")
	if open < 0 || !strings.HasSuffix(rest, ")") {
		return Site{}, fmt.Errorf("%w: %q missing operator", ErrInvalidSite, value)
	}

	lineStr, colStr, ok := strings.Cut(rest[:open], ":")
	if !ok {
		return Site{}, fmt.Errorf("%w: %q missing column", ErrInvalidSite, value)
	}

	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return Site{}, fmt.Errorf("%w: line %q", ErrInvalidSite, lineStr)
	}

	col, err := strconv.Atoi(colStr)
	if err != nil {
		return Site{}, fmt.Errorf("%w: column %q", ErrInvalidSite, colStr)
	}

	return NewSite(NodeKind(kind), line, col, rest[open+1:len(rest)-1])
}

// Compare orders sites lexicographically over kind, line, column and operator.
func Compare(a, b Site) int {
	return cmp.Or(
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
		cmp.Compare(a.Op, b.Op),
	)
}

// SortSites sorts sites in place using Compare.
func SortSites(sites []Site) {
	slices.SortFunc(sites, Compare)
}

// SiteSet is an unordered set of sites.
type SiteSet map[Site]struct{}

// NewSiteSet builds a set from the given sites.
func NewSiteSet(sites ...Site) SiteSet {
	set := make(SiteSet, len(sites))
	for _, s := range sites {
		set.Add(s)
	}

	return set
}

// Add inserts a site.
func (s SiteSet) Add(site Site) {
	s[site] = struct{}{}
}

// Contains reports whether the site is a member.
func (s SiteSet) Contains(site Site) bool {
	_, ok := s[site]
	return ok
}

// Len returns the number of sites.
func (s SiteSet) Len() int {
	return len(s)
}

// Sorted returns the members in Compare order.
func (s SiteSet) Sorted() []Site {
	sites := make([]Site, 0, len(s))
	for site := range s {
		sites = append(sites, site)
	}

	SortSites(sites)

	return sites
}

// IsSubsetOf reports whether every member of s is in other.
func (s SiteSet) IsSubsetOf(other SiteSet) bool {
	for site := range s {
		if !other.Contains(site) {
			return false
		}
	}

	return true
}
