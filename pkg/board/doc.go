// Package board models the 8x8 chessboard that knight paths are searched on.
//
// # Coordinates
//
// A [Position] is a numeric (column, row) pair, both 1-indexed in [1, 8].
// Columns map to file letters (1 = 'a' ... 8 = 'h'). Rows count from the top
// of the board: row r is rank 9-r, so row 1 is rank 8 and row 8 is rank 1.
// A [Square] is the algebraic form of a position, e.g. "d4":
//
//	p, err := board.FromAlgebraic("d4") // Position{Col: 4, Row: 5}
//	sq, err := board.ToAlgebraic(p)     // "d4"
//
// The mapping is a bijection between the 64 on-board positions and the 64
// squares "a1" ... "h8". Positions off the board have no algebraic form.
//
// # Knight Moves
//
// [KnightOffsets] lists the eight (dx, dy) displacements in a fixed order and
// [Neighbors] applies them to a position, keeping only on-board results.
// The order is stable: searches that break ties by neighbor order produce
// the same output on every run.
package board
