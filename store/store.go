// Package store holds the mapping from cell position to raw text and
// computed result, and orchestrates recompute of dependents through the
// dependency graph when a cell changes.
package store

import (
	"errors"
	"strconv"
	"strings"

	"github.com/byronwasti/termsheets/dag"
	"github.com/byronwasti/termsheets/formula"
	"github.com/byronwasti/termsheets/position"
)

// Sentinel display strings written to computed on error. These are the
// values a cell shows and the values other formulas read back through Get.
const (
	SentinelParse = "#PARSE_ERR"
	SentinelOp    = "#OP_ERR"
	SentinelRef   = "#REF_ERR"
	SentinelCell  = "#CELL_ERR"
	SentinelCycle = "#CYCLE_ERR"
)

// Store is the mapping from cell position to raw text and computed display
// value, backed by a dependency graph that drives cascading recompute.
type Store struct {
	raw      map[position.CellPos]string
	computed map[position.CellPos]string
	dag      *dag.Dag
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		raw:      make(map[position.CellPos]string),
		computed: make(map[position.CellPos]string),
		dag:      dag.New(),
	}
}

// Insert sets pos's raw text, evaluates it if it is a formula, and cascades
// recompute to every cell that transitively depends on pos. text starting
// with "=" is parsed and evaluated; anything else is stored as a literal.
// When a formula fails to parse, pos's dependents are not recomputed and keep
// their previous computed values.
func (s *Store) Insert(pos position.CellPos, text string) {
	var order []position.CellPos
	if strings.HasPrefix(text, "=") {
		order = s.insertFormula(pos, text)
	} else {
		s.raw[pos] = text
		delete(s.computed, pos)
		s.dag.Insert(pos, nil)
		full, _ := s.dag.TopoOrderFrom(pos)
		if len(full) > 0 {
			order = full[1:]
		}
	}
	s.recompute(order)
}

// insertFormula parses and evaluates text for pos, wiring pos's dependency
// edges and rolling them back if doing so would close a cycle. It returns
// the cells that need recomputing as a result - pos's dependents, in
// dependency order - or nil when text fails to parse.
func (s *Store) insertFormula(pos position.CellPos, text string) []position.CellPos {
	priorRefs := s.dag.Precedents(pos)

	expr, refs, parseErr := formula.Parse(text)
	if parseErr != nil {
		// A prior, valid formula's precedent edges must not survive an edit
		// that fails to parse - pos no longer actually references them, and
		// leaving the edges in place would let them cause a spurious cycle
		// rejection on some later, unrelated edit.
		s.dag.Insert(pos, nil)
		s.raw[pos] = text
		s.computed[pos] = sentinelFor(parseErr)
		return nil
	}

	s.dag.Insert(pos, refs)
	order, cycleErr := s.dag.TopoOrderFrom(pos)
	if cycleErr != nil {
		s.dag.Insert(pos, priorRefs)
		s.raw[pos] = text
		s.computed[pos] = SentinelCycle
		full, _ := s.dag.TopoOrderFrom(pos)
		if len(full) > 0 {
			return full[1:]
		}
		return nil
	}

	s.raw[pos] = text
	s.setComputed(pos, expr)
	return order[1:]
}

// setComputed evaluates expr against the store's current contents and
// records either the canonical decimal result or an error sentinel.
func (s *Store) setComputed(pos position.CellPos, expr formula.Expr) {
	val, err := formula.Eval(expr, s)
	if err != nil {
		s.computed[pos] = sentinelFor(err)
		return
	}
	s.computed[pos] = strconv.FormatInt(int64(val), 10)
}

// recompute re-parses and re-evaluates each cell in order, which must
// already be every live formula cell downstream of the cell that just
// changed, in dependency order.
func (s *Store) recompute(order []position.CellPos) {
	for _, pos := range order {
		text, ok := s.raw[pos]
		if !ok {
			continue
		}
		expr, _, err := formula.Parse(text)
		if err != nil {
			// A DAG entry implies the stored text was a formula when it
			// was inserted; a parse failure here cannot happen without
			// that text having been overwritten, in which case this
			// position would no longer appear in the DAG walk.
			s.computed[pos] = sentinelFor(err)
			continue
		}
		s.setComputed(pos, expr)
	}
}

// Get returns a cell's display value: its computed result if it has one,
// else its raw text, else false if the cell has never been written.
// Get satisfies formula.CellView.
func (s *Store) Get(pos position.CellPos) (string, bool) {
	if v, ok := s.computed[pos]; ok {
		return v, true
	}
	if v, ok := s.raw[pos]; ok {
		return v, true
	}
	return "", false
}

func sentinelFor(err error) string {
	switch {
	case errors.Is(err, formula.ErrParse):
		return SentinelParse
	case errors.Is(err, formula.ErrOp):
		return SentinelOp
	case errors.Is(err, formula.ErrRef):
		return SentinelRef
	case errors.Is(err, formula.ErrCell):
		return SentinelCell
	default:
		return SentinelOp
	}
}
