package driver

import (
	"context"
	"testing"

	"github.com/byronwasti/termsheets/compositor"
	"github.com/byronwasti/termsheets/state"
)

type fakeInput struct {
	keys []state.Key
	i    int
}

func (f *fakeInput) Next(ctx context.Context) (state.Key, bool) {
	if f.i >= len(f.keys) {
		return state.Key{}, false
	}
	k := f.keys[f.i]
	f.i++
	return k, true
}

type fakeRenderer struct {
	frames []compositor.Frame
}

func (f *fakeRenderer) Render(frame compositor.Frame) {
	f.frames = append(f.frames, frame)
}

func (f *fakeRenderer) Flush() error { return nil }

func TestRunEntersFormulaAndExits(t *testing.T) {
	keys := []state.Key{
		{Rune: 'i'},
	}
	for _, r := range "=add 1 2" {
		keys = append(keys, state.Key{Rune: r})
	}
	keys = append(keys, state.Key{Special: state.Enter}, state.Key{Rune: 'q'})

	in := &fakeInput{keys: keys}
	out := &fakeRenderer{}
	d := New(in, out, 10, 1, 40, 10)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(out.frames) == 0 {
		t.Fatal("no frames rendered")
	}
	last := out.frames[len(out.frames)-1]
	found := false
	for _, item := range last.Drawable {
		if item.Col == 0 && item.Row == 0 {
			found = true
			if item.Text != "> 3" {
				t.Errorf("A0 cell text = %q, want %q", item.Text, "> 3")
			}
		}
	}
	if !found {
		t.Fatal("A0 not found in final frame")
	}
}

func TestRunStopsWhenInputCloses(t *testing.T) {
	in := &fakeInput{keys: nil}
	out := &fakeRenderer{}
	d := New(in, out, 10, 1, 40, 10)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
