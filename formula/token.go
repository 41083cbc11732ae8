package formula

// TokenType classifies a lexical token of the formula sublanguage. The
// alphabet is tiny by design (see §4.1 of the spec): parentheses, a bare
// word (a candidate operator keyword), a cell reference (letters followed by
// digits), and an integer literal.
type TokenType int

const (
	tokEOF TokenType = iota
	tokIllegal
	tokLParen
	tokRParen
	tokIdent // pure letters: "add", "sub", "mul", "div", or an unrecognized word
	tokCell  // letters immediately followed by digits, e.g. "A0", "AB27"
	tokInt   // optional leading '-', then digits
)

// token is a single lexed unit together with its literal text and the byte
// offset it started at.
type token struct {
	typ     TokenType
	literal string
	offset  int
}
