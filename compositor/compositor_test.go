package compositor

import (
	"testing"

	"github.com/byronwasti/termsheets/position"
	"github.com/byronwasti/termsheets/state"
	"github.com/byronwasti/termsheets/store"
)

func TestComposeShowsCursorOverlay(t *testing.T) {
	c := New(10, 1)
	st := store.New()
	st.Insert(position.New(0, 0), "41")

	snap := state.Snapshot{Cursor: position.New(0, 0), Mode: state.Normal}
	frame := c.Compose(snap, st, 40, 10)

	found := false
	for _, item := range frame.Drawable {
		if item.Col == 0 && item.Row == 0 {
			found = true
			if item.Text != "> 41" {
				t.Errorf("cursor cell text = %q, want %q", item.Text, "> 41")
			}
		}
	}
	if !found {
		t.Fatal("cursor cell not found in Drawable")
	}
}

func TestComposeShowsBufferDuringInsert(t *testing.T) {
	c := New(10, 1)
	st := store.New()
	snap := state.Snapshot{Cursor: position.New(0, 0), Mode: state.Insert, Buffer: "=add 1 2"}
	frame := c.Compose(snap, st, 40, 10)

	for _, item := range frame.Drawable {
		if item.Col == 0 && item.Row == 0 {
			if item.Text != "> =add 1 2" {
				t.Errorf("cursor cell text = %q, want %q", item.Text, "> =add 1 2")
			}
			return
		}
	}
	t.Fatal("cursor cell not found in Drawable")
}

func TestScrollFollowsCursorMinimally(t *testing.T) {
	c := New(10, 1)
	st := store.New()

	// A 40-wide viewport with 10-wide cells and a 3-wide header margin
	// shows floor((40-3)/11) = 3 columns, but the scroll threshold is
	// nWide-1 = 2 (scrollOffset <= cursor < scrollOffset + (nWide-1)):
	// cursor at column 5 must force scroll just far enough to bring it
	// on-screen, not further.
	snap := state.Snapshot{Cursor: position.New(5, 0), Mode: state.Normal}
	frame := c.Compose(snap, st, 40, 10)

	if c.scrollOffset.X != 4 {
		t.Errorf("scrollOffset.X = %d, want 4 (cursor col 5, 2-wide scroll threshold)", c.scrollOffset.X)
	}
	if len(frame.ColLabels) == 0 || frame.ColLabels[0] != position.ColumnLabel(4) {
		t.Errorf("ColLabels[0] = %v, want column label for 4", frame.ColLabels)
	}
}

func TestScrollScenarioSixStepwise(t *testing.T) {
	c := New(10, 1)
	st := store.New()

	// A 58-wide viewport with 10-wide cells and a 3-wide header margin
	// shows floor((58-3)/11) = 5 columns (nWide = 5, matching the spec's
	// own scroll-window scenario). Stepping the cursor right one column at
	// a time from (0,0) to (6,0) must land scrollOffset.X at 3, with the
	// cursor visible at screen column 3.
	for x := 0; x <= 6; x++ {
		snap := state.Snapshot{Cursor: position.New(x, 0), Mode: state.Normal}
		c.Compose(snap, st, 58, 10)
	}
	if c.scrollOffset.X != 3 {
		t.Errorf("scrollOffset.X = %d, want 3 (cursor col 6, nWide 5)", c.scrollOffset.X)
	}
}

func TestScrollDoesNotMoveWhenCursorAlreadyVisible(t *testing.T) {
	c := New(10, 1)
	st := store.New()
	snap := state.Snapshot{Cursor: position.New(1, 0), Mode: state.Normal}
	c.Compose(snap, st, 40, 10)
	if c.scrollOffset.X != 0 {
		t.Errorf("scrollOffset.X = %d, want 0", c.scrollOffset.X)
	}
}
