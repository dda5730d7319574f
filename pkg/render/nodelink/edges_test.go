package nodelink

import (
	"testing"

	"github.com/matzehuels/knightpaths/pkg/board"
)

func TestNewEdgeIsUndirected(t *testing.T) {
	if NewEdge("a1", "b3") != NewEdge("b3", "a1") {
		t.Error("NewEdge(a1, b3) != NewEdge(b3, a1)")
	}
	e := NewEdge("c5", "a4")
	if e.A != "a4" || e.B != "c5" {
		t.Errorf("NewEdge not normalized: %+v", e)
	}
}

func TestEdgesNoDuplicates(t *testing.T) {
	pairs := [][2]string{{"a1", "h8"}, {"a1", "a2"}, {"d4", "d5"}, {"h1", "a8"}}
	for _, pair := range pairs {
		ps := mustPaths(t, pair[0], pair[1])
		edges := Edges(ps)

		seen := make(map[Edge]bool)
		for _, e := range edges {
			if seen[e] {
				t.Errorf("%s-%s: duplicate edge %+v", pair[0], pair[1], e)
			}
			seen[e] = true
			if e.B < e.A {
				t.Errorf("%s-%s: edge not normalized %+v", pair[0], pair[1], e)
			}
		}

		// Every step of every path is covered by exactly one edge.
		for _, p := range ps.Algebraic() {
			for i := 1; i < len(p); i++ {
				if !seen[NewEdge(p[i-1], p[i])] {
					t.Errorf("%s-%s: missing edge %s-%s", pair[0], pair[1], p[i-1], p[i])
				}
			}
		}
	}
}

func TestEdgesDiscoveryOrder(t *testing.T) {
	ps := mustPaths(t, "a1", "a2")
	edges := Edges(ps)
	if len(edges) == 0 {
		t.Fatal("Edges() returned nothing")
	}
	first := ps.Algebraic()[0]
	if edges[0] != NewEdge(first[0], first[1]) {
		t.Errorf("first edge = %+v, want first step of first path", edges[0])
	}
}

func TestEdgesSingleSquare(t *testing.T) {
	if edges := Edges(mustPaths(t, "c3", "c3")); len(edges) != 0 {
		t.Errorf("Edges() = %v, want none", edges)
	}
}

func TestNodes(t *testing.T) {
	ps := mustPaths(t, "a1", "a2")
	nodes := Nodes(ps)
	if len(nodes) == 0 || nodes[0] != board.Square("a1") {
		t.Fatalf("Nodes() should start with a1: %v", nodes)
	}

	seen := make(map[board.Square]bool)
	for _, n := range nodes {
		if seen[n] {
			t.Errorf("duplicate node %s", n)
		}
		seen[n] = true
	}
	if !seen["a2"] {
		t.Error("Nodes() missing end square")
	}
}
