package board

import (
	"fmt"
	"strings"
	"unicode/utf8"

	errs "github.com/matzehuels/knightpaths/pkg/errors"
)

// Size is the number of columns and rows on the board.
const Size = 8

// files maps columns 1..8 to their algebraic letter.
const files = "abcdefgh"

// Position is a numeric board coordinate. Both fields are 1-indexed.
// Row 1 is the top rank (8) and row 8 the bottom rank (1).
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Square is the algebraic notation of a position, e.g. "d4".
type Square string

// OnBoard reports whether p lies within [1,8]x[1,8].
func OnBoard(p Position) bool {
	return p.Col >= 1 && p.Col <= Size && p.Row >= 1 && p.Row <= Size
}

// ToAlgebraic converts p to its algebraic square.
// Returns an OUT_OF_BOUNDS error if p is not on the board.
func ToAlgebraic(p Position) (Square, error) {
	if !OnBoard(p) {
		return "", errs.New(errs.ErrCodeOutOfBounds, "position (%d,%d) is off the board", p.Col, p.Row)
	}
	return Square([]byte{files[p.Col-1], byte('0' + Size + 1 - p.Row)}), nil
}

// FromAlgebraic parses a two-character lowercase square such as "d4".
//
// Errors are coded by failure kind:
//   - INVALID_FORMAT if s is not exactly two characters
//   - INVALID_SQUARE if the letter is not a..h or the digit not 1..8
//   - OUT_OF_BOUNDS if the parsed position is off the board
func FromAlgebraic(s string) (Position, error) {
	if utf8.RuneCountInString(s) != 2 {
		return Position{}, errs.New(errs.ErrCodeInvalidFormat, "square %q must be a letter and a digit, e.g. d4", s)
	}
	// Two characters but more than two bytes: at least one is not ASCII.
	if len(s) != 2 {
		return Position{}, errs.New(errs.ErrCodeInvalidSquare, "square %q must use a..h and 1..8", s)
	}

	col := strings.IndexByte(files, s[0]) + 1
	if col == 0 {
		return Position{}, errs.New(errs.ErrCodeInvalidSquare, "unknown column %q in square %q", s[0], s)
	}

	digit := s[1]
	if digit < '0' || digit > '9' {
		return Position{}, errs.New(errs.ErrCodeInvalidSquare, "row %q in square %q is not a digit", digit, s)
	}
	rank := int(digit - '0')
	if rank < 1 || rank > Size {
		return Position{}, errs.New(errs.ErrCodeInvalidSquare, "row %d in square %q is outside 1-8", rank, s)
	}

	p := Position{Col: col, Row: Size + 1 - rank}
	if !OnBoard(p) {
		return Position{}, errs.New(errs.ErrCodeOutOfBounds, "square %q is off the board", s)
	}
	return p, nil
}

// ParseSquare normalizes user input (surrounding space, upper case) and
// parses it with [FromAlgebraic].
func ParseSquare(s string) (Position, error) {
	return FromAlgebraic(strings.ToLower(strings.TrimSpace(s)))
}

// Square returns the algebraic form of p. It panics if p is off the board;
// use [ToAlgebraic] for unchecked input.
func (p Position) Square() Square {
	sq, err := ToAlgebraic(p)
	if err != nil {
		panic(err)
	}
	return sq
}

// String returns the algebraic square, or "(col,row)" for off-board positions.
func (p Position) String() string {
	if sq, err := ToAlgebraic(p); err == nil {
		return string(sq)
	}
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// All returns the 64 board positions in row-major order, top-left first.
func All() []Position {
	out := make([]Position, 0, Size*Size)
	for row := 1; row <= Size; row++ {
		for col := 1; col <= Size; col++ {
			out = append(out, Position{Col: col, Row: row})
		}
	}
	return out
}
