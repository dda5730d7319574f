package knight

import (
	"strings"

	"github.com/matzehuels/knightpaths/pkg/board"
)

// Path is an ordered sequence of positions, each one knight move from the last.
type Path []board.Position

// Len returns the number of positions in the path.
func (p Path) Len() int { return len(p) }

// Moves returns the number of knight moves (edges) in the path.
func (p Path) Moves() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Squares converts the path to algebraic notation.
// Paths produced by [FindShortestPaths] only contain on-board positions.
func (p Path) Squares() []board.Square {
	out := make([]board.Square, len(p))
	for i, pos := range p {
		out[i] = pos.Square()
	}
	return out
}

// String formats the path as "a1 -> b3 -> c5".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, pos := range p {
		parts[i] = pos.String()
	}
	return strings.Join(parts, " -> ")
}

// extend returns a new path with next appended. The receiver is not shared
// with the result, so sibling branches never alias each other.
func (p Path) extend(next board.Position) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = next
	return out
}

// PathSet holds all shortest paths between two positions in discovery order.
type PathSet struct {
	Start board.Position
	End   board.Position
	Paths []Path
}

// Len returns the number of paths.
func (ps PathSet) Len() int { return len(ps.Paths) }

// Empty reports whether no path was found.
func (ps PathSet) Empty() bool { return len(ps.Paths) == 0 }

// Moves returns the knight-move count shared by every path, or -1 if empty.
func (ps PathSet) Moves() int {
	if ps.Empty() {
		return -1
	}
	return ps.Paths[0].Moves()
}

// Algebraic converts every path to algebraic notation, preserving order.
func (ps PathSet) Algebraic() [][]board.Square {
	out := make([][]board.Square, len(ps.Paths))
	for i, p := range ps.Paths {
		out[i] = p.Squares()
	}
	return out
}
