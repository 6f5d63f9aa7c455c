package mutagens

import m "gooze.dev/pkg/gomutest/internal/model"

var arithmeticRule = Rule{
	Kind:     m.KindBinaryExpr,
	Category: m.CategoryArithmetic,
	Ops:      []string{"+", "-", "*", "/", "%"},
}

var assignmentRule = Rule{
	Kind:     m.KindAssignStmt,
	Category: m.CategoryAssignment,
	Ops:      []string{"+=", "-=", "*=", "/=", "%="},
}

var incDecRule = Rule{
	Kind:     m.KindIncDecStmt,
	Category: m.CategoryIncDec,
	Ops:      []string{"++", "--"},
}

var unaryRule = Rule{
	Kind:     m.KindUnaryExpr,
	Category: m.CategoryUnary,
	Ops:      []string{"-", "+"},
}
