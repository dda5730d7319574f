// Package pkg provides the core libraries for knightpaths.
//
// # Overview
//
// Knightpaths finds every shortest sequence of knight moves between two
// squares of a chessboard and draws the union of those paths as a graph.
// The pkg directory is organized into three areas:
//
//  1. Domain logic ([board], [knight])
//  2. Rendering ([render/nodelink], [render])
//  3. Orchestration and support ([pipeline], [cache], [config], [errors], [observability])
//
// # Architecture
//
// The typical data flow:
//
//	"a1", "h8"
//	     ↓
//	[board] package (algebraic notation → positions)
//	     ↓
//	[knight] package (breadth-first search over partial paths)
//	     ↓
//	[render/nodelink] package (deduplicated edges → DOT → Graphviz)
//	     ↓
//	PNG/SVG/JPG/PDF/DOT/JSON output
//
// # Quick Start
//
//	start, _ := board.ParseSquare("a1")
//	end, _ := board.ParseSquare("h8")
//
//	ps, _ := knight.FindShortestPaths(start, end)
//	fmt.Println(ps.Len(), ps.Moves()) // 108 6
//
//	dot := nodelink.ToDOT(ps, nodelink.DefaultOptions())
//	png, _ := nodelink.RenderPNG(ctx, dot, nodelink.EngineDot)
//
// Or run the whole thing, with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Start: "a1", End: "h8"})
//
// # Main Packages
//
// [board] - Squares, positions and knight move generation. Internal rows run
// top to bottom, so row r is rank 9-r.
//
// [knight] - Shortest path enumeration. Every returned path has the minimum
// number of moves, and paths keep breadth-first discovery order.
//
// [render/nodelink] - Node-link diagrams of a path set using Graphviz.
//
// [render] - SVG to PDF conversion.
//
// [pipeline] - Search → render orchestration with artifact caching.
//
// [cache] - File and null caches for rendered artifacts.
//
// [config] - TOML config file with CLI defaults.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hooks for search, render and cache events.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/knight/...   # Specific package
//	go test -run Example       # Examples only
//
// [board]: https://pkg.go.dev/github.com/matzehuels/knightpaths/pkg/board
// [knight]: https://pkg.go.dev/github.com/matzehuels/knightpaths/pkg/knight
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/knightpaths/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/knightpaths/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/knightpaths/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/knightpaths/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/knightpaths/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/knightpaths/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/knightpaths/pkg/observability
package pkg
