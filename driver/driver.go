// Package driver runs the top-level tick loop: poll input, advance the
// state machine, apply pending commits to the store, rebuild the
// compositor's frame, and render it - until the state machine reaches Exit
// or the input source closes.
package driver

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/byronwasti/termsheets/compositor"
	"github.com/byronwasti/termsheets/state"
	"github.com/byronwasti/termsheets/store"
)

// InputSource is the minimal surface the driver needs from a key reader; it
// is satisfied by terminal.Input, and by a fake in tests.
type InputSource interface {
	Next(ctx context.Context) (state.Key, bool)
}

// Renderer is the minimal surface the driver needs from a frame painter; it
// is satisfied by terminal.Renderer, and by a fake in tests.
type Renderer interface {
	Render(frame compositor.Frame)
	Flush() error
}

// Driver wires together the state machine, store, and compositor, and
// drives them with key events from an InputSource, painting each resulting
// frame with a Renderer.
type Driver struct {
	input      InputSource
	renderer   Renderer
	state      *state.StateMachine
	store      *store.Store
	compositor *compositor.Compositor
	viewW      int
	viewH      int
}

// New returns a Driver over the given collaborators and initial viewport
// size in character cells.
func New(input InputSource, renderer Renderer, cellWidth, cellHeight, viewW, viewH int) *Driver {
	return &Driver{
		input:      input,
		renderer:   renderer,
		state:      state.New(),
		store:      store.New(),
		compositor: compositor.New(cellWidth, cellHeight),
		viewW:      viewW,
		viewH:      viewH,
	}
}

// SetHistoryLimit bounds how many past commits the state machine retains
// for diagnostics (see state.StateMachine.History).
func (d *Driver) SetHistoryLimit(n int) {
	d.state.SetHistoryLimit(n)
}

// Run blocks until the state machine reaches Exit, the input source closes,
// or ctx is canceled. It paints one frame before reading the first key so
// the initial, empty sheet is visible immediately. Shutdown is coordinated
// through ctx and errgroup: a cancellation while Next is blocked unwinds
// the reader via ctx.Done, and Wait joins cleanly once Run returns.
func (d *Driver) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.loop(ctx)
	})
	return g.Wait()
}

func (d *Driver) loop(ctx context.Context) error {
	d.paint()
	for {
		key, ok := d.input.Next(ctx)
		if !ok {
			return ctx.Err()
		}
		d.state.HandleKey(key)
		d.state.ApplyTo(d.store)
		d.paint()
		if d.state.Snapshot().Mode == state.Exit {
			return nil
		}
	}
}

func (d *Driver) paint() {
	frame := d.compositor.Compose(d.state.Snapshot(), d.store, d.viewW, d.viewH)
	d.renderer.Render(frame)
	if err := d.renderer.Flush(); err != nil {
		log.Printf("render flush failed: %v", err)
	}
}
