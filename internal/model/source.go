package model

import (
	"go/ast"
	"go/token"
)

// Path represents a file system path.
type Path string

// Category groups interchangeable operators.
type Category string

// Supported mutation categories.
const (
	CategoryArithmetic Category = "arithmetic"
	CategoryComparison Category = "comparison"
	CategoryLogical    Category = "logical"
	CategoryBitwise    Category = "bitwise"
	CategoryShift      Category = "shift"
	CategoryAssignment Category = "assignment"
	CategoryIncDec     Category = "incdec"
	CategoryUnary      Category = "unary"
	CategoryBoolean    Category = "boolean"
)

// Tree is one parsed source file together with the bytes it came from.
// Src lets callers obtain an independent working copy by re-parsing.
type Tree struct {
	Fset *token.FileSet
	File *ast.File
	Path Path
	Src  []byte
}

// CoverageRecord maps a coverage file key to its executed line numbers.
type CoverageRecord map[string]map[int]struct{}

// Lines returns the executed lines recorded for key.
func (r CoverageRecord) Lines(key string) (map[int]struct{}, bool) {
	lines, ok := r[key]
	return lines, ok
}
