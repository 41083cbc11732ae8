// Package state implements the modal interaction state machine: cursor
// navigation in Normal mode, buffered text entry in Insert mode, and the
// commit queue that feeds edits back into the cell store.
package state

import (
	"github.com/byronwasti/termsheets/position"
	"github.com/byronwasti/termsheets/store"
)

// Mode is the state machine's current mode. It is always one of the three
// named values below, never inferred from a boolean.
type Mode int

const (
	Normal Mode = iota
	Insert
	Exit
)

// commit is a pending write to the store: the cursor position at the
// moment Enter was pressed in Insert mode, and the buffer text committed.
type commit struct {
	pos  position.CellPos
	text string
}

// StateMachine holds the modal UI state: which mode is active, where the
// cursor sits, what text is being typed, and which edits are queued for the
// store but not yet applied.
type StateMachine struct {
	mode         Mode
	cursor       position.CellPos
	buffer       string
	pending      []commit
	history      []Commit
	historyLimit int
}

// Commit is a committed (position, text) edit, retained in recency order
// for diagnostics only - termsheets has no undo/redo, so History is never
// read back into the store.
type Commit struct {
	Pos  position.CellPos
	Text string
}

const defaultHistoryLimit = 100

// New returns a StateMachine in Normal mode with the cursor at A0.
func New() *StateMachine {
	return &StateMachine{mode: Normal, cursor: position.New(0, 0), historyLimit: defaultHistoryLimit}
}

// SetHistoryLimit bounds how many past commits History retains.
func (s *StateMachine) SetHistoryLimit(n int) {
	s.historyLimit = n
	if n > 0 && len(s.history) > n {
		s.history = s.history[len(s.history)-n:]
	}
}

// History returns the most recent commits applied, oldest first, for
// display/diagnostics.
func (s *StateMachine) History() []Commit {
	return s.history
}

// Snapshot is the read-only view of state the Compositor consumes.
type Snapshot struct {
	Cursor position.CellPos
	Mode   Mode
	Buffer string
}

// Snapshot returns the current read-only state.
func (s *StateMachine) Snapshot() Snapshot {
	return Snapshot{Cursor: s.cursor, Mode: s.mode, Buffer: s.buffer}
}

// HandleKey applies one key event per the transition table: 'q' exits;
// h/←, l/→, k/↑, j/↓ move the cursor in Normal mode; 'i' or Enter in Normal
// mode clears the buffer and enters Insert mode; in Insert mode, printable
// runes append to the buffer, Backspace drops its last rune, Esc discards
// the buffer and returns to Normal, and Enter queues the buffer for commit
// against the cursor position captured at this moment and returns to
// Normal. Keys outside the table for the current mode are no-ops.
func (s *StateMachine) HandleKey(k Key) {
	switch s.mode {
	case Normal:
		s.handleNormal(k)
	case Insert:
		s.handleInsert(k)
	}
}

func (s *StateMachine) handleNormal(k Key) {
	switch {
	case k.Rune == 'q':
		s.mode = Exit
	case k.Rune == 'h' || k.Special == ArrowLeft:
		s.moveCursor(-1, 0)
	case k.Rune == 'l' || k.Special == ArrowRight:
		s.moveCursor(1, 0)
	case k.Rune == 'k' || k.Special == ArrowUp:
		s.moveCursor(0, -1)
	case k.Rune == 'j' || k.Special == ArrowDown:
		s.moveCursor(0, 1)
	case k.Rune == 'i' || k.Special == Enter:
		s.buffer = ""
		s.mode = Insert
	}
}

func (s *StateMachine) handleInsert(k Key) {
	switch {
	case k.Special == Enter:
		s.pending = append(s.pending, commit{pos: s.cursor, text: s.buffer})
		s.mode = Normal
	case k.Special == Esc:
		s.mode = Normal
	case k.Special == Backspace:
		if n := len(s.buffer); n > 0 {
			r := []rune(s.buffer)
			s.buffer = string(r[:len(r)-1])
		}
	case k.Rune != 0:
		s.buffer += string(k.Rune)
	}
}

// moveCursor shifts the cursor by (dx, dy), saturating at 0 in either axis
// (CellPos.Add/Sub already pins subtraction at 0; addition of a negative
// delta is modeled as Sub of its magnitude so the same pinning applies).
func (s *StateMachine) moveCursor(dx, dy int) {
	switch {
	case dx < 0:
		s.cursor = s.cursor.Sub(position.New(-dx, 0))
	case dx > 0:
		s.cursor = s.cursor.Add(position.New(dx, 0))
	}
	switch {
	case dy < 0:
		s.cursor = s.cursor.Sub(position.New(0, -dy))
	case dy > 0:
		s.cursor = s.cursor.Add(position.New(0, dy))
	}
}

// ApplyTo drains the pending commit queue in FIFO order, writing each one
// into store. The cursor may have moved on since a commit was queued
// (it never moves mid-Insert, but a later Insert session could have moved
// it); each commit targets the position it captured at Enter time, not the
// cursor's current position.
func (s *StateMachine) ApplyTo(st *store.Store) {
	for _, c := range s.pending {
		st.Insert(c.pos, c.text)
		s.recordHistory(Commit{Pos: c.pos, Text: c.text})
	}
	s.pending = nil
}

func (s *StateMachine) recordHistory(c Commit) {
	s.history = append(s.history, c)
	if s.historyLimit > 0 && len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
}
