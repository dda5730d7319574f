// Package knight finds every shortest knight path between two board squares.
//
// # Algorithm
//
// [FindShortestPaths] runs a breadth-first search over partial paths rather
// than over single squares, so that every minimum-length path survives:
//
//  1. The queue holds (square, path so far) entries, seeded with the start.
//  2. A square is marked visited when it is dequeued and expanded, not when
//     it is enqueued. Two equal-depth paths that reach the same square are
//     both kept; the square is then expanded once.
//  3. Dequeuing the target appends the path to the result and sets a found
//     flag. The target itself is never expanded.
//  4. Once found, later entries are drained without expansion. Entries
//     already queued at the target's depth still get collected.
//
// The knight graph on an 8x8 board is connected and has 64 nodes, so the
// search always terminates with at least one path.
//
// # Usage
//
//	start, _ := board.FromAlgebraic("a1")
//	end, _ := board.FromAlgebraic("h8")
//	ps, err := knight.FindShortestPaths(start, end)
//	fmt.Println(ps.Moves()) // 6
//	for _, path := range ps.Algebraic() {
//	    fmt.Println(path)
//	}
package knight
