// Package dag tracks the dependency relationships between cells as a
// directed graph keyed by position, and exposes the operations the cell
// store needs to detect cycles and recompute dependents in order.
package dag

import (
	"errors"
	"fmt"

	"github.com/byronwasti/termsheets/position"
)

// ErrCycle is returned when inserting an edge would make a cell depend on
// itself, directly or transitively. Sentinel #CYCLE_ERR.
var ErrCycle = errors.New("dag: cycle detected")

type direction int

const (
	incoming direction = iota
	outgoing
)

type neighbor struct {
	dir direction
	pos position.CellPos
}

// Dag is an adjacency-set graph over cell positions. Each vertex's entry
// holds Incoming neighbors (cells it directly depends on) and Outgoing
// neighbors (cells that directly depend on it). The two are always kept in
// lockstep: an Outgoing(a) in b's set exists iff an Incoming(b) in a's set
// exists.
type Dag struct {
	adjacency map[position.CellPos]map[neighbor]struct{}
}

// New returns an empty Dag.
func New() *Dag {
	return &Dag{adjacency: make(map[position.CellPos]map[neighbor]struct{})}
}

// Insert replaces pos's precedent edges with refs: pos is made to depend on
// exactly the cells in refs, same as if pos had never referenced anything
// and is now being given this reference list fresh. It only ever touches
// pos's Incoming side; any cells that already depend on pos (its Outgoing
// side, i.e. its dependents) are left exactly as they were - pos being
// edited must not disconnect the cells that reference it. Insert does not
// check for cycles; the store calls TopoOrderFrom(pos) after inserting and
// rolls back by re-inserting the pre-edit refs if it reports ErrCycle.
func (d *Dag) Insert(pos position.CellPos, refs []position.CellPos) {
	d.clearPrecedents(pos)

	own := d.adjacency[pos]
	if own == nil {
		own = make(map[neighbor]struct{})
		d.adjacency[pos] = own
	}
	for _, r := range refs {
		if d.adjacency[r] == nil {
			d.adjacency[r] = make(map[neighbor]struct{})
		}
		d.adjacency[r][neighbor{dir: outgoing, pos: pos}] = struct{}{}
		own[neighbor{dir: incoming, pos: r}] = struct{}{}
	}
}

// clearPrecedents removes pos's Incoming edges (and their mirrored Outgoing
// entry on the referenced cell) without touching pos's Outgoing edges, i.e.
// without touching cells that depend on pos.
func (d *Dag) clearPrecedents(pos position.CellPos) {
	own := d.adjacency[pos]
	for n := range own {
		if n.dir != incoming {
			continue
		}
		delete(d.adjacency[n.pos], neighbor{dir: outgoing, pos: pos})
		delete(own, n)
	}
}

// Remove detaches pos from the cells it references (same effect as
// Insert(pos, nil)) and, if nothing depends on pos either, drops its vertex
// entirely. A cell that other formulas still reference keeps its (now
// precedent-less) vertex so Dependents keeps working for it.
func (d *Dag) Remove(pos position.CellPos) {
	d.clearPrecedents(pos)
	if len(d.adjacency[pos]) == 0 {
		delete(d.adjacency, pos)
	}
}

// Dependents returns the cells whose formula directly references pos.
func (d *Dag) Dependents(pos position.CellPos) []position.CellPos {
	var out []position.CellPos
	for n := range d.adjacency[pos] {
		if n.dir == outgoing {
			out = append(out, n.pos)
		}
	}
	return out
}

// Precedents returns the cells pos's formula directly references.
func (d *Dag) Precedents(pos position.CellPos) []position.CellPos {
	var out []position.CellPos
	for n := range d.adjacency[pos] {
		if n.dir == incoming {
			out = append(out, n.pos)
		}
	}
	return out
}

// Reaches reports whether to is reachable from from by following Precedents
// edges, i.e. whether from already depends, directly or transitively, on to.
// Inserting pos with a reference to from would close a cycle iff
// Reaches(from, pos); the store does not call this directly since
// TopoOrderFrom's own back-edge detection already catches the same case as
// part of computing the recompute order, but Reaches is kept as the
// cheaper yes/no check for callers that only need the boolean.
func (d *Dag) Reaches(from, to position.CellPos) bool {
	if from == to {
		return true
	}
	visited := map[position.CellPos]bool{from: true}
	stack := []position.CellPos{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range d.Precedents(cur) {
			if p == to {
				return true
			}
			if !visited[p] {
				visited[p] = true
				stack = append(stack, p)
			}
		}
	}
	return false
}

// TopoOrderFrom returns start followed by every cell reachable from it via
// Dependents edges (the cells that need recomputing because they, directly
// or transitively, reference start), ordered so each cell appears after
// every cell it depends on. It uses an iterative two-color DFS rather than
// recursion so the traversal depth is bounded by heap, not goroutine stack.
// A back edge is reported as ErrCycle rather than looping forever; the store
// relies on this to detect and roll back edits that would close a cycle.
func (d *Dag) TopoOrderFrom(start position.CellPos) ([]position.CellPos, error) {
	const (
		white = iota
		gray
		black
	)
	color := make(map[position.CellPos]int)

	type frame struct {
		pos      position.CellPos
		children []position.CellPos
		idx      int
	}

	var order []position.CellPos
	stack := []*frame{{pos: start, children: d.Dependents(start)}}
	color[start] = gray

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.idx < len(top.children) {
			child := top.children[top.idx]
			top.idx++
			switch color[child] {
			case gray:
				return nil, fmt.Errorf("%w: via %s", ErrCycle, child)
			case white:
				color[child] = gray
				stack = append(stack, &frame{pos: child, children: d.Dependents(child)})
			}
		} else {
			color[top.pos] = black
			order = append(order, top.pos)
			stack = stack[:len(stack)-1]
		}
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}
