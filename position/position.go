// Package position defines the CellPos coordinate type shared across the
// engine: the grid location a cell occupies, and the value formulas and the
// compositor move around.
package position

import "fmt"

// CellPos is a zero-indexed (column, row) coordinate. x indexes columns
// (0 is column "A"), y indexes rows (row 0 is labelled "0" on screen and in
// cell references such as "A0").
type CellPos struct {
	X, Y int
}

// New builds a CellPos from non-negative column/row indices.
func New(x, y int) CellPos {
	return CellPos{X: x, Y: y}
}

// Add returns the component-wise sum of p and other.
func (p CellPos) Add(other CellPos) CellPos {
	return CellPos{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the component-wise difference, pinning each component at 0
// instead of going negative. Moving left past column 0 (or up past row 0)
// silently pins there; this mirrors the source behavior and is intentional.
func (p CellPos) Sub(other CellPos) CellPos {
	return CellPos{X: saturatingSub(p.X, other.X), Y: saturatingSub(p.Y, other.Y)}
}

func saturatingSub(a, b int) int {
	if a-b < 0 {
		return 0
	}
	return a - b
}

// Less imposes an arbitrary but total order, used only to make test output
// and iteration deterministic; the data model does not require an ordering.
func (p CellPos) Less(other CellPos) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

func (p CellPos) String() string {
	return fmt.Sprintf("%s%d", ColumnLabel(p.X), p.Y)
}

// ColumnLabel renders a zero-indexed column as an alphabetic label using the
// same alphabet the formula parser decodes cell references with: column
// value = sum over letter positions i (left-to-right, 0-indexed) of
// (letterDigit + 26*i), where letterDigit is 0 for 'A' .. 25 for 'Z' (see
// formula.ParseCellRef). That scheme is additive, not positional, so it is
// not a bijection for labels longer than one letter (e.g. "AB" and "BA" both
// decode to the same column) - ColumnLabel only needs to produce *a* label
// that round-trips back to col, not the unique one.
//
// For a label of length n the minimum value is 26*n*(n-1)/2 (all digits
// zero) and the maximum is that plus 25*n (all digits 25); ColumnLabel picks
// the shortest n whose range covers col, then greedily packs the remainder
// into the rightmost letters first, leaving leading letters as 'A'.
func ColumnLabel(col int) string {
	if col < 0 {
		return ""
	}
	n := 1
	for {
		base := 26 * n * (n - 1) / 2
		maxSum := 25 * n
		if col >= base && col <= base+maxSum {
			remaining := col - base
			digits := make([]byte, n)
			for i := n - 1; i >= 0; i-- {
				d := remaining
				if d > 25 {
					d = 25
				}
				digits[i] = byte('A' + d)
				remaining -= d
			}
			return string(digits)
		}
		n++
	}
}
