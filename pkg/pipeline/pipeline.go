// Package pipeline provides the search and render pipeline for knightpaths.
//
// The pipeline takes two squares in algebraic notation, finds every shortest
// knight path between them, builds the path graph as DOT source and renders
// it to the requested formats. Rendered images are cached by a hash of the
// DOT source, so repeating a query only pays for the search.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Search: Breadth-first enumeration of every shortest path
//  2. Render: DOT generation and output in various formats (PNG, SVG, JPG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Start:   "a1",
//	    End:     "h8",
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Callers that show the paths before rendering run the stages separately:
//
//	ps, err := runner.Search(ctx, opts)
//	// ... print ps ...
//	result, err := runner.Render(ctx, ps, opts)
package pipeline

import (
	"io"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/knightpaths/pkg/board"
	"github.com/matzehuels/knightpaths/pkg/cache"
	errs "github.com/matzehuels/knightpaths/pkg/errors"
	"github.com/matzehuels/knightpaths/pkg/knight"
	"github.com/matzehuels/knightpaths/pkg/render/nodelink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFormat is the output format used when none is requested.
	DefaultFormat = FormatPNG

	// DefaultEngine is the Graphviz layout engine.
	DefaultEngine = nodelink.EngineDot
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJPG  = "jpg"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJPG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// imageFormats are the formats produced by Graphviz and stored in the cache.
var imageFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatJPG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Search options
	Start string `json:"start"`
	End   string `json:"end"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Engine     string   `json:"engine,omitempty"`
	StartColor string   `json:"start_color,omitempty"`
	EndColor   string   `json:"end_color,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"` // Ignore cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	start, end board.Position
	validated  bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Paths holds every shortest path in discovery order.
	Paths knight.PathSet

	// DOT is the Graphviz source of the path graph.
	DOT string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PathCount  int
	Moves      int
	NodeCount  int
	EdgeCount  int
	SearchTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      []string // Formats served from cache
	RenderHit bool     // Whether every image artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errs.ValidateOneOf("format", format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that a Graphviz layout engine is supported.
func ValidateEngine(engine string) error {
	return errs.ValidateOneOf("engine", engine, nodelink.ValidEngines)
}

// ParseFormats splits a comma-separated format list, lowercasing entries
// and dropping blanks and duplicates. Order is preserved.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// FormatNames returns the supported formats, sorted, for help text.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults parses the squares, checks render options and
// applies defaults. Square errors keep their INVALID_FORMAT, INVALID_SQUARE
// or OUT_OF_BOUNDS code so callers can report them precisely.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSearch(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSearch parses Start and End.
func (o *Options) ValidateForSearch() error {
	start, err := board.ParseSquare(o.Start)
	if err != nil {
		return err
	}
	end, err := board.ParseSquare(o.End)
	if err != nil {
		return err
	}
	o.start, o.end = start, end

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	d := nodelink.DefaultOptions()
	if o.StartColor == "" {
		o.StartColor = d.StartColor
	}
	if o.EndColor == "" {
		o.EndColor = d.EndColor
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateEngine(o.Engine)
}

// DOTOptions returns the node-link styling for these options.
func (o *Options) DOTOptions() nodelink.Options {
	return nodelink.Options{
		Title:      nodelink.DefaultOptions().Title,
		StartColor: o.StartColor,
		EndColor:   o.EndColor,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Engine: o.Engine,
	}
}
