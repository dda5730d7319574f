package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/knightpaths/pkg/board"
	"github.com/matzehuels/knightpaths/pkg/knight"
)

// Layout engine names accepted by the render functions.
const (
	EngineDot   = "dot"
	EngineNeato = "neato"
	EngineFDP   = "fdp"
	EngineCirco = "circo"
	EngineTwopi = "twopi"
)

// engines maps engine names to Graphviz layouts.
var engines = map[string]graphviz.Layout{
	EngineDot:   graphviz.DOT,
	EngineNeato: graphviz.NEATO,
	EngineFDP:   graphviz.FDP,
	EngineCirco: graphviz.CIRCO,
	EngineTwopi: graphviz.TWOPI,
}

// ValidEngines is the set of supported layout engine names.
var ValidEngines = map[string]bool{
	EngineDot:   true,
	EngineNeato: true,
	EngineFDP:   true,
	EngineCirco: true,
	EngineTwopi: true,
}

// Options configures node-link diagram generation.
type Options struct {
	// Title is the graph name written into the DOT source.
	Title string

	// StartColor and EndColor fill the start and end nodes.
	StartColor string
	EndColor   string
}

// DefaultOptions returns the standard green-start, orange-end styling.
func DefaultOptions() Options {
	return Options{
		Title:      "Knight Paths",
		StartColor: "green",
		EndColor:   "orange",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.StartColor == "" {
		o.StartColor = d.StartColor
	}
	if o.EndColor == "" {
		o.EndColor = d.EndColor
	}
	return o
}

// ToDOT converts a path set to an undirected Graphviz graph.
// The start node is declared first and the end node second, so when
// start == end the single node takes the end color.
func ToDOT(ps knight.PathSet, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph %q {\n", opts.Title)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fontsize=14];\n")
	buf.WriteString("\n")

	if start, err := board.ToAlgebraic(ps.Start); err == nil {
		fmt.Fprintf(&buf, "  %q [%s];\n", start, endpointAttrs(opts.StartColor))
	}
	if end, err := board.ToAlgebraic(ps.End); err == nil {
		fmt.Fprintf(&buf, "  %q [%s];\n", end, endpointAttrs(opts.EndColor))
	}

	buf.WriteString("\n")
	for _, e := range Edges(ps) {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.A, e.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func endpointAttrs(fill string) string {
	return fmt.Sprintf("style=filled, fillcolor=%q, color=black, shape=circle", fill)
}

// Render renders DOT source to the given Graphviz format using engine.
// An empty engine selects dot.
func Render(ctx context.Context, dot string, format graphviz.Format, engine string) ([]byte, error) {
	if engine == "" {
		engine = EngineDot
	}
	layout, ok := engines[engine]
	if !ok {
		return nil, fmt.Errorf("unknown layout engine: %s", engine)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSVG renders a DOT graph to SVG with a zero-origin viewBox.
func RenderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	svg, err := Render(ctx, dot, graphviz.SVG, engine)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG.
func RenderPNG(ctx context.Context, dot, engine string) ([]byte, error) {
	return Render(ctx, dot, graphviz.PNG, engine)
}

// RenderJPG renders a DOT graph to JPEG.
func RenderJPG(ctx context.Context, dot, engine string) ([]byte, error) {
	return Render(ctx, dot, graphviz.JPG, engine)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the viewBox starts at the
// origin and width/height match it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
