// Package terminal holds the concrete, ambient terminal collaborators: a
// raw-mode TTY input reader and an ANSI character-cell renderer. Nothing in
// the engine imports this package; main wires it into the driver as the
// concrete implementation of the driver's InputSource and Renderer interfaces.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/byronwasti/termsheets/state"
)

type byteEvent struct {
	b   byte
	err error
}

// Input reads the controlling TTY in raw mode and decodes bytes into
// state.Key events, one key per Next call. A single auxiliary goroutine
// owns the blocking Read; Next is the sole consumer of the channel it
// feeds, mirroring the reader-goroutine/channel split the teacher
// codebase's REPL input uses.
type Input struct {
	in     *os.File
	state  *term.State
	events chan byteEvent
}

// NewInput puts in into raw mode and starts the reader goroutine. It
// returns false if in/out are not both attached to a terminal.
func NewInput(in io.Reader, out io.Writer) (*Input, bool) {
	inFile, ok := in.(*os.File)
	if !ok {
		return nil, false
	}
	outFile, ok := out.(*os.File)
	if !ok {
		return nil, false
	}
	if !term.IsTerminal(int(inFile.Fd())) || !term.IsTerminal(int(outFile.Fd())) {
		return nil, false
	}

	st, err := term.MakeRaw(int(inFile.Fd()))
	if err != nil {
		return nil, false
	}

	ti := &Input{in: inFile, state: st, events: make(chan byteEvent, 128)}
	go ti.readBytes()
	return ti, true
}

// Close restores the terminal's prior mode.
func (t *Input) Close() {
	if t == nil || t.state == nil {
		return
	}
	_ = term.Restore(int(t.in.Fd()), t.state)
}

func (t *Input) readBytes() {
	defer close(t.events)
	buf := make([]byte, 1)
	for {
		n, err := t.in.Read(buf)
		if n > 0 {
			t.events <- byteEvent{b: buf[0]}
		}
		if err != nil {
			t.events <- byteEvent{err: err}
			return
		}
	}
}

// Next blocks until one decoded key event is available, ctx is canceled, or
// the underlying TTY is closed (in which case ok is false).
func (t *Input) Next(ctx context.Context) (state.Key, bool) {
	ev, ok := t.recv(ctx)
	if !ok || ev.err != nil {
		return state.Key{}, false
	}
	return t.decode(ctx, ev.b), true
}

func (t *Input) recv(ctx context.Context) (byteEvent, bool) {
	select {
	case ev, ok := <-t.events:
		return ev, ok
	case <-ctx.Done():
		return byteEvent{}, false
	}
}

// decode turns one raw byte - and, for escape sequences, the bytes that
// follow within a short window - into a state.Key.
func (t *Input) decode(ctx context.Context, b byte) state.Key {
	switch b {
	case '\r', '\n':
		return state.Key{Special: state.Enter}
	case 0x7f, 0x08:
		return state.Key{Special: state.Backspace}
	case 0x1b:
		return t.decodeEscape(ctx)
	default:
		return state.Key{Rune: rune(b)}
	}
}

func (t *Input) decodeEscape(ctx context.Context) state.Key {
	next, ok := t.readByteWithTimeout(ctx, 10*time.Millisecond)
	if !ok || next != '[' {
		return state.Key{Special: state.Esc}
	}
	code, ok := t.readByteWithTimeout(ctx, 10*time.Millisecond)
	if !ok {
		return state.Key{Special: state.Esc}
	}
	switch code {
	case 'A':
		return state.Key{Special: state.ArrowUp}
	case 'B':
		return state.Key{Special: state.ArrowDown}
	case 'C':
		return state.Key{Special: state.ArrowRight}
	case 'D':
		return state.Key{Special: state.ArrowLeft}
	case 'M':
		// Mouse report: button, column and row bytes follow. Consume them and
		// return the zero Key, which no mode acts on.
		for i := 0; i < 3; i++ {
			t.readByteWithTimeout(ctx, 10*time.Millisecond)
		}
		return state.Key{}
	default:
		return state.Key{Special: state.Esc}
	}
}

func (t *Input) readByteWithTimeout(ctx context.Context, timeout time.Duration) (byte, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev, ok := <-t.events:
		if !ok || ev.err != nil {
			return 0, false
		}
		return ev.b, true
	case <-timer.C:
		return 0, false
	case <-ctx.Done():
		return 0, false
	}
}

// EnterAlternateScreen switches to the alternate screen and turns on mouse
// reporting; ExitAlternateScreen writes the matching disable sequences. main
// calls the first at startup and defers the second until shutdown.
func EnterAlternateScreen(w io.Writer) {
	fmt.Fprint(w, "\x1b[?1049h\x1b[?1000h")
}

func ExitAlternateScreen(w io.Writer) {
	fmt.Fprint(w, "\x1b[?1000l\x1b[?1049l")
}
