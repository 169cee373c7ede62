package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/graphsvg/pkg/graph"
	"github.com/matzehuels/graphsvg/pkg/observability"
	"github.com/matzehuels/graphsvg/pkg/render"
	"github.com/matzehuels/graphsvg/pkg/render/echarts"
	"github.com/matzehuels/graphsvg/pkg/render/nodelink"
	"github.com/matzehuels/graphsvg/pkg/render/plan"
	"github.com/matzehuels/graphsvg/pkg/render/svg"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, p *plan.Plan, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderAll(ctx, p, opts, opts.Formats)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderAll(ctx context.Context, p *plan.Plan, opts Options, formats []string) (map[string][]byte, error) {
	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, p, opts, format)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// renderFormat produces one artifact. The Graphviz engine only changes how
// svg, png and pdf are drawn; the other formats are engine independent.
func renderFormat(ctx context.Context, p *plan.Plan, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dotSource(p)), nil
	case FormatJSON:
		return graph.MarshalLayout(graph.FromPlan(p))
	case FormatHTML:
		var buf bytes.Buffer
		if err := echarts.Render(&buf, p, opts.Title); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if opts.Engine == EngineGraphviz {
		switch format {
		case FormatSVG:
			return nodelink.RenderSVG(ctx, dotSource(p))
		case FormatPNG:
			return nodelink.RenderPNG(ctx, dotSource(p), pngScale)
		case FormatPDF:
			return nodelink.RenderPDF(ctx, dotSource(p))
		}
		return nil, ValidateFormat(format)
	}

	switch format {
	case FormatSVG:
		return svg.Render(p), nil
	case FormatPNG:
		return render.ToPNG(ctx, svg.Render(p), pngScale)
	case FormatPDF:
		return render.ToPDF(ctx, svg.Render(p))
	}
	return nil, ValidateFormat(format)
}

func dotSource(p *plan.Plan) string {
	return nodelink.ToDOT(p, nodelink.Options{Labels: true})
}
