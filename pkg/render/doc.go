// Package render provides format conversion shared by the knightpaths renderers.
//
// # Overview
//
// Graphviz (via the [nodelink] subpackage) renders SVG, PNG and JPG in
// process. PDF is produced from the SVG with the external rsvg-convert tool
// (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot, "dot")
//	pdf, err := render.ToPDF(svg)
//
// [nodelink]: github.com/matzehuels/knightpaths/pkg/render/nodelink
package render
