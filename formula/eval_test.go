package formula

import (
	"errors"
	"testing"

	"github.com/byronwasti/termsheets/position"
)

type mapView map[position.CellPos]string

func (v mapView) Get(pos position.CellPos) (string, bool) {
	s, ok := v[pos]
	return s, ok
}

func TestEvalAddSubMulDiv(t *testing.T) {
	cases := []struct {
		formula string
		want    int32
	}{
		{"=add 1 2 3", 6},
		{"=mul 2 3 4", 24},
		{"=sub 10 3", 7},
		{"=div 10 3", 3},
	}
	for _, c := range cases {
		expr, _, err := Parse(c.formula)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", c.formula, err)
		}
		got, err := Eval(expr, mapView{})
		if err != nil {
			t.Fatalf("Eval(%q) failed: %v", c.formula, err)
		}
		if got != c.want {
			t.Errorf("Eval(%q) = %d, want %d", c.formula, got, c.want)
		}
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	expr, _, err := Parse("=div 4 0")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	_, err = Eval(expr, mapView{})
	if !errors.Is(err, ErrOp) {
		t.Fatalf("expected ErrOp, got %v", err)
	}
}

func TestEvalReferencesOtherCell(t *testing.T) {
	expr, refs, err := Parse("=add A0 1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(refs) != 1 || refs[0] != position.New(0, 0) {
		t.Fatalf("refs = %v, want [A0]", refs)
	}
	view := mapView{position.New(0, 0): "41"}
	got, err := Eval(expr, view)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestEvalMissingReferenceIsRefError(t *testing.T) {
	expr, _, err := Parse("=add A0 1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	_, err = Eval(expr, mapView{})
	if !errors.Is(err, ErrRef) {
		t.Fatalf("expected ErrRef, got %v", err)
	}
}

func TestEvalNonIntegerReferenceIsRefError(t *testing.T) {
	expr, _, err := Parse("=add A0 1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	view := mapView{position.New(0, 0): "hello"}
	_, err = Eval(expr, view)
	if !errors.Is(err, ErrRef) {
		t.Fatalf("expected ErrRef, got %v", err)
	}
}

func TestEvalLiteralOverflowIsCellError(t *testing.T) {
	expr, _, err := Parse("=add 99999999999 1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	_, err = Eval(expr, mapView{})
	if !errors.Is(err, ErrCell) {
		t.Fatalf("expected ErrCell, got %v", err)
	}
}
