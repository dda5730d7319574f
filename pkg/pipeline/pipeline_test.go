package pipeline

import (
	"context"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/knightpaths/pkg/cache"
	errs "github.com/matzehuels/knightpaths/pkg/errors"
	"github.com/matzehuels/knightpaths/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"svg", false},
		{"jpg", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"gif", true},
		{"PNG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidInput) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_INPUT", tt.format, errs.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateEngine(t *testing.T) {
	for _, e := range []string{"dot", "neato", "fdp", "circo", "twopi"} {
		if err := ValidateEngine(e); err != nil {
			t.Errorf("ValidateEngine(%q) = %v", e, err)
		}
	}
	if err := ValidateEngine("osage"); err == nil {
		t.Error("ValidateEngine(osage) should fail")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"png", []string{"png"}},
		{"PNG, svg", []string{"png", "svg"}},
		{"svg,,svg,json", []string{"svg", "json"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatNames(t *testing.T) {
	want := []string{"dot", "jpg", "json", "pdf", "png", "svg"}
	if got := FormatNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("FormatNames() = %v, want %v", got, want)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Start: "A1", End: " h8 "}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if !reflect.DeepEqual(opts.Formats, []string{"png"}) {
		t.Errorf("Formats = %v, want [png]", opts.Formats)
	}
	if opts.Engine != "dot" {
		t.Errorf("Engine = %q, want dot", opts.Engine)
	}
	if opts.StartColor != "green" || opts.EndColor != "orange" {
		t.Errorf("colors = %q/%q, want green/orange", opts.StartColor, opts.EndColor)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	if opts.start.String() != "a1" || opts.end.String() != "h8" {
		t.Errorf("parsed squares = %s, %s", opts.start, opts.end)
	}
}

func TestOptionsSquareErrors(t *testing.T) {
	tests := []struct {
		start, end string
		want       errs.Code
	}{
		{"z9", "a1", errs.ErrCodeInvalidSquare},
		{"a1", "a9", errs.ErrCodeInvalidSquare},
		{"a1", "aa", errs.ErrCodeInvalidSquare},
		{"1a", "a1", errs.ErrCodeInvalidSquare},
		{"", "a1", errs.ErrCodeInvalidFormat},
		{"a1", "a10", errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		opts := Options{Start: tt.start, End: tt.end}
		err := opts.ValidateAndSetDefaults()
		if got := errs.GetCode(err); got != tt.want {
			t.Errorf("(%q, %q): code = %s, want %s", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestOptionsRenderErrors(t *testing.T) {
	opts := Options{Start: "a1", End: "b3", Formats: []string{"gif"}}
	if err := opts.ValidateAndSetDefaults(); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("bad format: err = %v, want INVALID_INPUT", err)
	}

	opts = Options{Start: "a1", End: "b3", Engine: "sfdp2"}
	if err := opts.ValidateAndSetDefaults(); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("bad engine: err = %v, want INVALID_INPUT", err)
	}
}

func TestExecuteTextFormats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Start:   "a1",
		End:     "a2",
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.Moves != 3 {
		t.Errorf("Moves = %d, want 3", res.Stats.Moves)
	}
	if res.Stats.PathCount != res.Paths.Len() || res.Stats.PathCount == 0 {
		t.Errorf("PathCount = %d, paths = %d", res.Stats.PathCount, res.Paths.Len())
	}

	if string(res.Artifacts[FormatDOT]) != res.DOT {
		t.Error("dot artifact should equal the DOT source")
	}
	if !strings.HasPrefix(res.DOT, `graph "Knight Paths" {`) {
		t.Errorf("unexpected DOT header: %q", strings.SplitN(res.DOT, "\n", 2)[0])
	}

	var doc struct {
		Start string     `json:"start"`
		End   string     `json:"end"`
		Moves int        `json:"moves"`
		Paths [][]string `json:"paths"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.Start != "a1" || doc.End != "a2" || doc.Moves != 3 || len(doc.Paths) != res.Paths.Len() {
		t.Errorf("json artifact = %+v", doc)
	}
	if res.CacheInfo.RenderHit {
		t.Error("text formats should never count as a cache hit")
	}
}

func TestExecuteSameSquare(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Start: "c3", End: "c3", Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Paths.Len() != 1 || res.Stats.Moves != 0 {
		t.Errorf("c3-c3: %d paths, %d moves; want 1, 0", res.Paths.Len(), res.Stats.Moves)
	}
	if res.Stats.NodeCount != 1 || res.Stats.EdgeCount != 0 {
		t.Errorf("c3-c3: %d nodes, %d edges; want 1, 0", res.Stats.NodeCount, res.Stats.EdgeCount)
	}
}

func TestExecuteServesCachedArtifacts(t *testing.T) {
	ctx := context.Background()
	c := newMapCache()
	r := NewRunner(c, nil, nil)

	// Find the DOT source so the cached entry can be planted under the
	// key the runner will look up.
	first, err := r.Execute(ctx, Options{Start: "d4", End: "f5", Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatal(err)
	}

	opts := Options{Start: "d4", End: "f5", Formats: []string{FormatPNG}}
	_ = opts.ValidateAndSetDefaults()
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(first.DOT)), opts.ArtifactKeyOpts(FormatPNG))
	_ = c.Set(ctx, key, []byte("cached-png"), time.Hour)

	res, err := r.Execute(ctx, Options{Start: "d4", End: "f5", Formats: []string{FormatPNG}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if string(res.Artifacts[FormatPNG]) != "cached-png" {
		t.Errorf("png artifact = %q, want cached bytes", res.Artifacts[FormatPNG])
	}
	if !res.CacheInfo.RenderHit || !reflect.DeepEqual(res.CacheInfo.Hits, []string{FormatPNG}) {
		t.Errorf("CacheInfo = %+v, want png hit", res.CacheInfo)
	}
}

func TestExecuteEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Start: "a1", End: "h8", Formats: []string{FormatJSON}}); err != nil {
		t.Fatal(err)
	}

	want := []string{"search-start a1 h8", "search-complete 6", "render-start", "render-complete"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestRenderAfterSearch(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	opts := Options{Start: "a1", End: "h8", Formats: []string{FormatDOT}}

	ps, err := r.Search(ctx, opts)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if ps.Len() != 108 {
		t.Fatalf("Search found %d paths, want 108", ps.Len())
	}

	res, err := r.Render(ctx, ps, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Stats.PathCount != 108 || res.Stats.Moves != 6 {
		t.Errorf("Stats = %+v, want 108 paths of 6 moves", res.Stats)
	}
	if string(res.Artifacts[FormatDOT]) != res.DOT {
		t.Error("dot artifact should equal the DOT source")
	}
}

func TestRenderInvalidFormatKeepsNoArtifacts(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	opts := Options{Start: "a1", End: "b3"}

	ps, err := r.Search(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.Formats = []string{"gif"}
	if res, err := r.Render(ctx, ps, opts); !errs.Is(err, errs.ErrCodeInvalidInput) || res != nil {
		t.Errorf("Render(gif) = %v, %v; want nil, INVALID_INPUT", res, err)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(ctx, Options{Start: "a1", End: "b3", Formats: []string{FormatDOT}}); err == nil {
		t.Error("Execute with canceled context should fail")
	}
}

// mapCache is an in-memory cache for tests.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string][]byte)} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mapCache) Close() error { return nil }

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnSearchStart(_ context.Context, start, end string) {
	h.events = append(h.events, "search-start "+start+" "+end)
}

func (h *recordingHooks) OnSearchComplete(_ context.Context, _, _ string, _, moves int, _ time.Duration, _ error) {
	h.events = append(h.events, "search-complete "+strconv.Itoa(moves))
}

func (h *recordingHooks) OnRenderStart(context.Context, []string) {
	h.events = append(h.events, "render-start")
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.events = append(h.events, "render-complete")
}
