package state

// Special names a non-printable key. Zero value means "no special key";
// Rune carries the event instead.
type Special int

const (
	NoSpecial Special = iota
	Enter
	Esc
	Backspace
	ArrowUp
	ArrowDown
	ArrowLeft
	ArrowRight
)

// Key is one decoded input event: either a printable rune, or one of the
// Special values above (Rune is 0 when Special is set).
type Key struct {
	Rune    rune
	Special Special
}
