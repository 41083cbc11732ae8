package formula

import "errors"

// ErrParse is returned when formula text after "=" does not match the
// grammar. It corresponds to the #PARSE_ERR sentinel.
var ErrParse = errors.New("formula: does not match grammar")

// ErrOp is returned for an arity mismatch on sub/div, division by zero, or
// an operator keyword outside {add, sub, mul, div}. Sentinel #OP_ERR.
var ErrOp = errors.New("formula: invalid operation")

// ErrRef is returned when a referenced cell is absent, empty, or does not
// hold a parseable integer. Sentinel #REF_ERR.
var ErrRef = errors.New("formula: invalid cell reference")

// ErrCell is returned when an integer literal overflows int32. Sentinel
// #CELL_ERR.
var ErrCell = errors.New("formula: integer literal out of range")
