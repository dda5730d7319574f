package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/knightpaths/pkg/knight"
	"github.com/matzehuels/knightpaths/pkg/render"
	"github.com/matzehuels/knightpaths/pkg/render/nodelink"
)

// RenderFormat produces a single artifact. Text formats come straight from
// the path set or DOT source; image formats go through Graphviz, and PDF is
// converted from SVG with rsvg-convert.
func RenderFormat(ctx context.Context, ps knight.PathSet, dot, format, engine string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatJSON:
		return knight.MarshalPathSet(ps)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, engine)
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot, engine)
	case FormatJPG:
		return nodelink.RenderJPG(ctx, dot, engine)
	case FormatPDF:
		svg, err := nodelink.RenderSVG(ctx, dot, engine)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(svg)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
