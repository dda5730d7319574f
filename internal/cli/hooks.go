package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/knightpaths/pkg/observability"
)

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnSearchStart(_ context.Context, start, end string) {
	h.logger.Debug("search started", "start", start, "end", end)
}

func (h *logHooks) OnSearchComplete(_ context.Context, start, end string, paths, moves int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("search failed", "start", start, "end", end, "error", err)
		return
	}
	h.logger.Debug("search finished", "paths", paths, "moves", moves, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render finished", "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, format string) {
	h.logger.Debug("cache hit", "format", format)
}

func (h *logHooks) OnCacheMiss(_ context.Context, format string) {
	h.logger.Debug("cache miss", "format", format)
}

func (h *logHooks) OnCacheSet(_ context.Context, format string, size int) {
	h.logger.Debug("cached artifact", "format", format, "bytes", size)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)
