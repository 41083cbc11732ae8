package formula

import "github.com/byronwasti/termsheets/position"

// Expr is a node of a parsed formula's expression tree. The model mirrors a
// conventional compiler AST: a small closed set of node kinds, each tagged
// with a marker method.
type Expr interface {
	isExpr()
}

// CallExpr is an operator application: "(add 1 2)" or, at the top level of a
// formula, the un-parenthesized "add 1 2". Op is the raw keyword text as
// lexed; whether it is actually one of add/sub/mul/div is an evaluator
// concern (OpError), not a parse concern.
type CallExpr struct {
	Op   string
	Args []Expr
}

// CellExpr references another cell by position.
type CellExpr struct {
	Pos position.CellPos
}

// IntExpr is an integer literal. Value is kept as int64 so that overflow of
// the target int32 range can be detected and reported as CellError rather
// than silently wrapping during parsing.
type IntExpr struct {
	Value int64
}

func (CallExpr) isExpr() {}
func (CellExpr) isExpr() {}
func (IntExpr) isExpr()  {}

// References walks expr and returns every CellExpr position referenced, in
// left-to-right traversal order. Duplicates are not removed here; the DAG
// collapses them on insert.
func References(expr Expr) []position.CellPos {
	var refs []position.CellPos
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case CallExpr:
			for _, a := range n.Args {
				walk(a)
			}
		case CellExpr:
			refs = append(refs, n.Pos)
		case IntExpr:
		}
	}
	walk(expr)
	return refs
}
