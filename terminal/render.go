package terminal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/byronwasti/termsheets/compositor"
)

// Box-drawing glyphs for the grid lines, matching the conventional
// single-line box-drawing set.
const (
	glyphVertical      = "│"
	glyphHorizontal    = "─"
	glyphCross         = "┼"
	glyphHorizontalTop = "┬"
	glyphVerticalLeft  = "├"
	glyphTopLeft       = "┌"
)

// cell is one character-cell slot in the renderer's buffer.
type cell struct {
	glyph string
}

// Renderer owns a (col,row)-addressed character-cell buffer and flushes it
// to out as a single diffed write per frame: only cells that changed since
// the previous flush are repositioned and rewritten.
type Renderer struct {
	out    io.Writer
	w, h   int
	buf    [][]cell
	prev   [][]cell
	hasRun bool
}

// NewRenderer returns a Renderer for a w x h character-cell viewport.
func NewRenderer(out io.Writer, w, h int) *Renderer {
	return &Renderer{out: out, w: w, h: h, buf: newGrid(w, h), prev: newGrid(w, h)}
}

func newGrid(w, h int) [][]cell {
	g := make([][]cell, h)
	for y := range g {
		g[y] = make([]cell, w)
		for x := range g[y] {
			g[y][x] = cell{glyph: " "}
		}
	}
	return g
}

// Resize rebuilds the buffer for a new viewport size, forcing a full
// repaint on the next Flush.
func (r *Renderer) Resize(w, h int) {
	r.w, r.h = w, h
	r.buf = newGrid(w, h)
	r.prev = newGrid(w, h)
	r.hasRun = false
}

// Render paints one compositor.Frame into the buffer: grid lines across
// CellsArea, column/row labels, and the frame's drawable cell text.
func (r *Renderer) Render(frame compositor.Frame) {
	r.buf = newGrid(r.w, r.h)
	r.drawGrid(frame)
	r.drawLabels(frame)
	r.drawCells(frame)
	r.writeString(frame.EditArea.X, frame.EditArea.Y, frame.StatusText)
}

func (r *Renderer) drawGrid(frame compositor.Frame) {
	area := frame.CellsArea
	xOffset := 0
	for _, width := range frame.Widths {
		x := area.X + xOffset
		if x >= area.X+area.W {
			break
		}
		xOffset += width + 1
		for y := area.Y; y < area.Y+area.H; y++ {
			r.set(x, y, glyphVertical)
		}
	}

	yOffset := 0
	for _, height := range frame.Heights {
		y := area.Y + yOffset
		if y >= area.Y+area.H {
			break
		}
		yOffset += height + 1
		for x := area.X; x < area.X+area.W; x++ {
			r.set(x, y, glyphHorizontal)
		}
	}

	xOffset = 0
	for _, width := range frame.Widths {
		yOffset = 0
		for _, height := range frame.Heights {
			x, y := area.X+xOffset, area.Y+yOffset
			if x >= area.X+area.W || y >= area.Y+area.H {
				break
			}
			if x == area.X && y == area.Y {
				r.set(x, y, glyphTopLeft)
			} else if y == area.Y {
				r.set(x, y, glyphHorizontalTop)
			} else if x == area.X {
				r.set(x, y, glyphVerticalLeft)
			} else {
				r.set(x, y, glyphCross)
			}
			yOffset += height + 1
		}
		xOffset += width + 1
	}
}

func (r *Renderer) drawLabels(frame compositor.Frame) {
	area := frame.CellsArea
	xOffset := 1
	for i, label := range frame.ColLabels {
		x := area.X + xOffset
		r.writeString(x, area.Y-1, label)
		if i < len(frame.Widths) {
			xOffset += frame.Widths[i] + 1
		}
	}
	yOffset := 1
	for i, label := range frame.RowLabels {
		y := area.Y + yOffset
		r.writeString(0, y, label)
		if i < len(frame.Heights) {
			yOffset += frame.Heights[i] + 1
		}
	}
}

func (r *Renderer) drawCells(frame compositor.Frame) {
	area := frame.CellsArea
	for _, item := range frame.Drawable {
		x := area.X + 1
		for i := 0; i < item.Col && i < len(frame.Widths); i++ {
			x += frame.Widths[i] + 1
		}
		y := area.Y + 1
		for i := 0; i < item.Row && i < len(frame.Heights); i++ {
			y += frame.Heights[i] + 1
		}
		r.writeString(x, y, item.Text)
	}
}

func (r *Renderer) set(x, y int, glyph string) {
	if y < 0 || y >= r.h || x < 0 || x >= r.w {
		return
	}
	r.buf[y][x] = cell{glyph: glyph}
}

func (r *Renderer) writeString(x, y int, s string) {
	for _, ru := range s {
		w := runewidth.RuneWidth(ru)
		if w == 0 {
			w = 1
		}
		r.set(x, y, string(ru))
		x += w
	}
}

// Flush writes only the cells that changed since the previous Flush,
// repositioning the cursor with an ANSI escape before each run of changed
// cells. The first Flush after construction or Resize always does a full
// repaint.
func (r *Renderer) Flush() error {
	var out bytes.Buffer
	full := !r.hasRun
	for y := 0; y < r.h; y++ {
		x := 0
		for x < r.w {
			if !full && r.buf[y][x] == r.prev[y][x] {
				x++
				continue
			}
			fmt.Fprintf(&out, "\x1b[%d;%dH", y+1, x+1)
			for x < r.w && (full || r.buf[y][x] != r.prev[y][x]) {
				out.WriteString(r.buf[y][x].glyph)
				x++
			}
		}
	}
	r.hasRun = true
	r.prev = r.buf
	if out.Len() == 0 {
		return nil
	}
	_, err := r.out.Write(out.Bytes())
	return err
}
