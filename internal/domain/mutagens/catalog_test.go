package mutagens

import (
	"errors"
	"slices"
	"testing"

	m "gooze.dev/pkg/gomutest/internal/model"
)

func TestCatalog_Alternatives(t *testing.T) {
	c := Default()

	tests := []struct {
		name     string
		kind     m.NodeKind
		op       string
		expected []string
	}{
		{"add", m.KindBinaryExpr, "+", []string{"-", "*", "/", "%"}},
		{"sub", m.KindBinaryExpr, "-", []string{"+", "*", "/", "%"}},
		{"less", m.KindBinaryExpr, "<", []string{"<=", ">", ">=", "==", "!="}},
		{"and", m.KindBinaryExpr, "&&", []string{"||"}},
		{"and not", m.KindBinaryExpr, "&^", []string{"&", "|", "^"}},
		{"shift", m.KindBinaryExpr, "<<", []string{">>"}},
		{"add assign", m.KindAssignStmt, "+=", []string{"-=", "*=", "/=", "%="}},
		{"plain assign", m.KindAssignStmt, "=", nil},
		{"inc", m.KindIncDecStmt, "++", []string{"--"}},
		{"negate", m.KindUnaryExpr, "-", []string{"+"}},
		{"not", m.KindUnaryExpr, "!", nil},
		{"true", m.KindIdent, "true", []string{"false"}},
		{"unknown kind", m.NodeKind("CallExpr"), "+", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Alternatives(tt.kind, tt.op)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("Alternatives(%s, %q) = %v, expected %v", tt.kind, tt.op, got, tt.expected)
			}
		})
	}
}

func TestCatalog_Allowed(t *testing.T) {
	c := Default()

	tests := []struct {
		op, replacement string
		expected        bool
	}{
		{"+", "*", true},
		{"+", "+", false},
		{"+", "<", false},
		{"==", "!=", true},
		{"&&", "&", false},
	}

	for _, tt := range tests {
		t.Run(tt.op+"->"+tt.replacement, func(t *testing.T) {
			if got := c.Allowed(m.KindBinaryExpr, tt.op, tt.replacement); got != tt.expected {
				t.Errorf("Allowed(%q, %q) = %v, expected %v", tt.op, tt.replacement, got, tt.expected)
			}
		})
	}
}

func TestCatalog_Register(t *testing.T) {
	t.Run("rejects an operator owned by another rule", func(t *testing.T) {
		c := Default()

		err := c.Register(Rule{Kind: m.KindBinaryExpr, Category: "custom", Ops: []string{"+", "&&"}})
		if !errors.Is(err, ErrDuplicateOperator) {
			t.Fatalf("expected ErrDuplicateOperator, got %v", err)
		}

		rule, ok := c.Lookup(m.KindBinaryExpr, "&&")
		if !ok || rule.Category != m.CategoryLogical {
			t.Fatalf("failed registration must not alter the table, got %+v", rule)
		}
	})

	t.Run("rejects unsupported node kinds", func(t *testing.T) {
		var c Catalog
		if err := c.Register(Rule{Kind: "CallExpr", Category: "custom", Ops: []string{"f", "g"}}); err == nil {
			t.Fatal("expected error for unsupported node kind")
		}
	})

	t.Run("new categories are additive", func(t *testing.T) {
		c, err := NewCatalog(arithmeticRule)
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}

		if err := c.Register(shiftRule); err != nil {
			t.Fatalf("Register: %v", err)
		}

		expected := []m.Category{m.CategoryArithmetic, m.CategoryShift}
		if got := c.Categories(); !slices.Equal(got, expected) {
			t.Errorf("Categories() = %v, expected %v", got, expected)
		}
	})
}

func TestCatalog_Only(t *testing.T) {
	c := Default()

	t.Run("restricts to requested categories", func(t *testing.T) {
		only, err := c.Only(m.CategoryBoolean, m.CategoryComparison)
		if err != nil {
			t.Fatalf("Only: %v", err)
		}

		if _, ok := only.Lookup(m.KindBinaryExpr, "+"); ok {
			t.Error("arithmetic rule should be excluded")
		}

		if _, ok := only.Lookup(m.KindIdent, "true"); !ok {
			t.Error("boolean rule should be kept")
		}

		expected := []m.NodeKind{m.KindBinaryExpr, m.KindIdent}
		if got := only.Kinds(); !slices.Equal(got, expected) {
			t.Errorf("Kinds() = %v, expected %v", got, expected)
		}
	})

	t.Run("empty list keeps everything", func(t *testing.T) {
		only, err := c.Only()
		if err != nil {
			t.Fatalf("Only: %v", err)
		}

		if !slices.Equal(only.Categories(), c.Categories()) {
			t.Errorf("expected %v, got %v", c.Categories(), only.Categories())
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		if _, err := c.Only("loops"); err == nil {
			t.Fatal("expected error for unknown category")
		}
	})
}
