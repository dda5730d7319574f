package nodelink

import (
	"github.com/matzehuels/knightpaths/pkg/board"
	"github.com/matzehuels/knightpaths/pkg/knight"
)

// Edge is an undirected knight move between two squares, normalized so A < B.
type Edge struct {
	A board.Square `json:"a"`
	B board.Square `json:"b"`
}

// NewEdge returns the normalized edge between x and y.
func NewEdge(x, y board.Square) Edge {
	if y < x {
		x, y = y, x
	}
	return Edge{A: x, B: y}
}

// Edges returns the deduplicated undirected edges traversed by ps,
// in order of first traversal.
func Edges(ps knight.PathSet) []Edge {
	seen := make(map[Edge]bool)
	var out []Edge
	for _, p := range ps.Algebraic() {
		for i := 1; i < len(p); i++ {
			e := NewEdge(p[i-1], p[i])
			if seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// Nodes returns the distinct squares on any path of ps, in order of first
// appearance. The start square is always first.
func Nodes(ps knight.PathSet) []board.Square {
	seen := make(map[board.Square]bool)
	var out []board.Square
	add := func(s board.Square) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	if sq, err := board.ToAlgebraic(ps.Start); err == nil {
		add(sq)
	}
	for _, p := range ps.Algebraic() {
		for _, s := range p {
			add(s)
		}
	}
	return out
}
