package domain

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	m "gooze.dev/pkg/gomutest/internal/model"
)

const calcSrc = `package calc

// Add returns the sum of a and b.
func Add(a, b int) int {
	return a + b
}

// Sub returns the difference of a and b.
func Sub(a, b int) int {
	return a - b
}

func Mix(a, b, c int) int {
	return a + b*c
}

func Enabled() bool {
	return true
}
`

var (
	addSite = m.Site{Kind: m.KindBinaryExpr, Line: 5, Column: 11, Op: "+"}
	subSite = m.Site{Kind: m.KindBinaryExpr, Line: 10, Column: 11, Op: "-"}
	mixAdd  = m.Site{Kind: m.KindBinaryExpr, Line: 14, Column: 11, Op: "+"}
	mixMul  = m.Site{Kind: m.KindBinaryExpr, Line: 14, Column: 14, Op: "*"}
	trueLit = m.Site{Kind: m.KindIdent, Line: 18, Column: 9, Op: "true"}
)

func parseTree(t *testing.T, path, src string) *m.Tree {
	t.Helper()

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}

	return &m.Tree{Fset: fset, File: file, Path: m.Path(path), Src: []byte(src)}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeModule lays out a one-file module: go.mod plus calc/calc.go.
func writeModule(t *testing.T) (root string, source m.Path) {
	t.Helper()

	root = t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/calc\n\ngo 1.25\n")

	path := filepath.Join(root, "calc", "calc.go")
	writeFile(t, path, calcSrc)

	return root, m.Path(path)
}
