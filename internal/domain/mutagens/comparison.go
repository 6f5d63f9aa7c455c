package mutagens

import m "gooze.dev/pkg/gomutest/internal/model"

var comparisonRule = Rule{
	Kind:     m.KindBinaryExpr,
	Category: m.CategoryComparison,
	Ops:      []string{"<", "<=", ">", ">=", "==", "!="},
}

var logicalRule = Rule{
	Kind:     m.KindBinaryExpr,
	Category: m.CategoryLogical,
	Ops:      []string{"&&", "||"},
}

var bitwiseRule = Rule{
	Kind:     m.KindBinaryExpr,
	Category: m.CategoryBitwise,
	Ops:      []string{"&", "|", "^", "&^"},
}

var shiftRule = Rule{
	Kind:     m.KindBinaryExpr,
	Category: m.CategoryShift,
	Ops:      []string{"<<", ">>"},
}
