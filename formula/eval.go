package formula

import (
	"fmt"
	"math"
	"strconv"

	"github.com/byronwasti/termsheets/position"
)

// CellView is the read-only slice of the cell store the evaluator consumes.
// It mirrors what Store.Get exposes: the display string for a cell, or
// false if the cell has never been written.
type CellView interface {
	Get(position.CellPos) (string, bool)
}

// Eval reduces expr against view to a signed 32-bit integer, or one of
// ErrOp/ErrRef/ErrCell. It is a pure function of view's current contents.
func Eval(expr Expr, view CellView) (int32, error) {
	switch n := expr.(type) {
	case IntExpr:
		if n.Value < math.MinInt32 || n.Value > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %d", ErrCell, n.Value)
		}
		return int32(n.Value), nil

	case CellExpr:
		text, ok := view.Get(n.Pos)
		if !ok || text == "" {
			return 0, fmt.Errorf("%w: %s is empty", ErrRef, n.Pos)
		}
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %s does not hold an integer", ErrRef, n.Pos)
		}
		return int32(v), nil

	case CallExpr:
		return evalCall(n, view)

	default:
		return 0, fmt.Errorf("%w: unknown expression node", ErrOp)
	}
}

func evalCall(n CallExpr, view CellView) (int32, error) {
	vals := make([]int32, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(a, view)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}

	switch n.Op {
	case "add":
		var sum int32
		for _, v := range vals {
			sum += v
		}
		return sum, nil
	case "mul":
		prod := int32(1)
		for _, v := range vals {
			prod *= v
		}
		return prod, nil
	case "sub":
		if len(vals) != 2 {
			return 0, fmt.Errorf("%w: sub takes exactly two operands", ErrOp)
		}
		return vals[0] - vals[1], nil
	case "div":
		if len(vals) != 2 {
			return 0, fmt.Errorf("%w: div takes exactly two operands", ErrOp)
		}
		if vals[1] == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrOp)
		}
		return vals[0] / vals[1], nil
	default:
		return 0, fmt.Errorf("%w: unrecognized operator %q", ErrOp, n.Op)
	}
}
