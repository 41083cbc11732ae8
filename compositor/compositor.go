// Package compositor translates engine state (cursor, mode, buffer) plus a
// cell store and a viewport size into the drawable items and geometry a
// terminal renderer needs, without knowing anything about a terminal.
package compositor

import (
	"strconv"

	"github.com/byronwasti/termsheets/position"
	"github.com/byronwasti/termsheets/state"
	"github.com/byronwasti/termsheets/store"
	"github.com/mattn/go-runewidth"
)

const (
	defaultCellWidth  = 12
	defaultCellHeight = 1
	// headerMargin is the fixed-width gutter reserved for row labels, to the
	// left of the first data column.
	headerMargin = 3
)

// Rect is a rectangle in character cells, (0,0) at its own top-left.
type Rect struct {
	X, Y, W, H int
}

// DrawItem is one piece of text to paint at a grid-relative (col, row)
// cell position within CellsArea.
type DrawItem struct {
	Col, Row int
	Text     string
}

// Frame is everything a Renderer needs to paint one tick: column/row sizes
// and labels, the cell contents (plus cursor overlay) to draw, and the two
// sub-rectangles of the viewport devoted to the grid and to the edit line.
type Frame struct {
	Widths    []int
	Heights   []int
	ColLabels []string
	RowLabels []string
	Drawable  []DrawItem
	CellsArea Rect
	EditArea  Rect
	// StatusText is the single line drawn in EditArea: the active cell's
	// position and, in Insert mode, a mode indicator.
	StatusText string
}

// Compositor owns the scroll offset, the one piece of state that persists
// across ticks independent of the store or the state machine.
type Compositor struct {
	cellWidth, cellHeight int
	scrollOffset          position.CellPos
}

// New returns a Compositor using the given default cell width/height in
// character columns/rows.
func New(cellWidth, cellHeight int) *Compositor {
	if cellWidth <= 0 {
		cellWidth = defaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = defaultCellHeight
	}
	return &Compositor{cellWidth: cellWidth, cellHeight: cellHeight}
}

// Compose builds one Frame for the given viewport size (in character
// cells), reading snap for the cursor/mode/buffer and st for cell contents.
func (c *Compositor) Compose(snap state.Snapshot, st *store.Store, viewportW, viewportH int) Frame {
	cellsArea := Rect{X: headerMargin, Y: 1, W: max(0, viewportW-headerMargin), H: max(0, viewportH-1)}
	editArea := Rect{X: 0, Y: viewportH, W: viewportW, H: 1}

	nWide := cellsArea.W / (c.cellWidth + 1)
	nHigh := cellsArea.H / (c.cellHeight + 1)

	c.scrollToShow(snap.Cursor, nWide, nHigh)

	widths := make([]int, nWide)
	heights := make([]int, nHigh)
	colLabels := make([]string, nWide)
	rowLabels := make([]string, nHigh)
	for i := range widths {
		widths[i] = c.cellWidth
		colLabels[i] = position.ColumnLabel(i + c.scrollOffset.X)
	}
	for i := range heights {
		heights[i] = c.cellHeight
		rowLabels[i] = strconv.Itoa(i + c.scrollOffset.Y)
	}

	var drawable []DrawItem
	cursorDrawn := false
	for x := 0; x < nWide; x++ {
		for y := 0; y < nHigh; y++ {
			cellPos := position.New(x+c.scrollOffset.X, y+c.scrollOffset.Y)
			text, ok := st.Get(cellPos)
			isCursor := cellPos == snap.Cursor
			if isCursor {
				cursorDrawn = true
				if snap.Mode == state.Insert {
					text = snap.Buffer
				}
				text, ok = cursorOverlay(text), true
			}
			if !ok {
				continue
			}
			drawable = append(drawable, DrawItem{Col: x, Row: y, Text: clip(text, c.cellWidth)})
		}
	}
	if !cursorDrawn {
		cx, cy := snap.Cursor.X-c.scrollOffset.X, snap.Cursor.Y-c.scrollOffset.Y
		if cx >= 0 && cx < nWide && cy >= 0 && cy < nHigh {
			text := ""
			if snap.Mode == state.Insert {
				text = snap.Buffer
			}
			drawable = append(drawable, DrawItem{Col: cx, Row: cy, Text: clip(cursorOverlay(text), c.cellWidth)})
		}
	}

	return Frame{
		Widths:     widths,
		Heights:    heights,
		ColLabels:  colLabels,
		RowLabels:  rowLabels,
		Drawable:   drawable,
		CellsArea:  cellsArea,
		EditArea:   editArea,
		StatusText: statusText(snap),
	}
}

func statusText(snap state.Snapshot) string {
	if snap.Mode == state.Insert {
		return "-- INSERT -- " + snap.Cursor.String()
	}
	return snap.Cursor.String()
}

// cursorOverlay prefixes a non-empty cell's display text with "> " to mark
// it as the cursor's current position; an empty cell shows just ">".
func cursorOverlay(text string) string {
	if text == "" {
		return ">"
	}
	return "> " + text
}

// scrollToShow adjusts the scroll offset by the minimum amount needed so
// cursor falls back within the (nWide, nHigh) visible window; it never
// moves the offset further than necessary to bring the cursor back inside.
// The threshold used is nWide-1/nHigh-1, not the raw visible count: the
// invariant is scrollOffset <= cursor < scrollOffset + (nWide-1), matching
// the original's get_n_wide()-1 scroll threshold.
func (c *Compositor) scrollToShow(cursor position.CellPos, nWide, nHigh int) {
	c.scrollOffset.X = clampScroll(c.scrollOffset.X, cursor.X, nWide)
	c.scrollOffset.Y = clampScroll(c.scrollOffset.Y, cursor.Y, nHigh)
}

func clampScroll(offset, cursor, visible int) int {
	if visible <= 0 {
		return offset
	}
	window := visible - 1
	if window < 1 {
		window = 1
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+window {
		return cursor - window + 1
	}
	return offset
}

// clip truncates text to fit width character cells, measuring width with
// go-runewidth so multi-column runes (e.g. wide CJK glyphs) aren't split.
func clip(text string, width int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "")
}

