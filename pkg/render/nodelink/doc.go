// Package nodelink renders knight path sets as node-link diagrams using Graphviz.
//
// # Overview
//
// Every square that appears on a shortest path becomes a circular node and
// every knight move between two such squares becomes an undirected edge.
// The start square is filled green and the end square orange so the
// direction of travel stays readable without arrows.
//
// # Edges
//
// Many shortest paths share moves. [Edges] collapses them: an edge is keyed
// by its sorted endpoint pair, so a1-b3 and b3-a1 are the same edge and each
// pair appears once no matter how many paths traverse it.
//
// # Usage
//
//	dot := nodelink.ToDOT(ps, nodelink.DefaultOptions())
//	png, err := nodelink.RenderPNG(ctx, dot, nodelink.EngineDot)
//
// # Layout Engines
//
// Graphviz provides several layout engines:
//
//   - dot: Hierarchical (default), paths flow from start to end
//   - neato: Spring model
//   - fdp: Force-directed
//   - circo: Circular
//   - twopi: Radial around the start square
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
