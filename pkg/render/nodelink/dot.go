package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/render"
	"github.com/matzehuels/graphsvg/pkg/render/plan"
)

// pointsPerInch converts plan units (treated as points) to Graphviz inches.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Labels draws node names inside the nodes instead of leaving them blank.
	Labels bool
}

// ToDOT converts a plan to Graphviz DOT. Node positions are pinned with
// pos="x,y!" so that the neato engine keeps the plan's layout; y is flipped
// because Graphviz puts the origin at the bottom left.
func ToDOT(p *plan.Plan, opts Options) string {
	kind, arrow := "graph", "--"
	if p.Directed {
		kind, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%s,%s\";\n", fmtFloat(p.Width), fmtFloat(p.Height))
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, color=%q, fontsize=%s];\n",
		p.NodeStroke, fmtFloat(p.FontSize))
	buf.WriteString("\n")

	for _, i := range p.Order {
		n := p.Nodes[i]
		fmt.Fprintf(&buf, "  %d [%s];\n", n.Index, strings.Join(fmtNodeAttrs(p, n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range p.Edges {
		fmt.Fprintf(&buf, "  %d %s %d [penwidth=%s, color=%q];\n",
			e.Source, arrow, e.Target, fmtFloat(e.Width), e.Color)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeAttrs(p *plan.Plan, n plan.Node, opts Options) []string {
	label := ""
	if opts.Labels {
		label = n.Name
	}
	return []string{
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(n.X), fmtFloat(p.Height-n.Y)),
		fmt.Sprintf("width=%s", fmtFloat(2*n.Radius/pointsPerInch)),
		fmt.Sprintf("fillcolor=%q", n.Fill),
		fmt.Sprintf("penwidth=%s", fmtFloat(n.StrokeWidth)),
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("tooltip=%q", n.Name),
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG with the neato engine, which honors
// pinned positions. Returns the SVG bytes ready for display or further
// conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
	prologRe  = regexp.MustCompile(`(?s)^.*?(<svg)`)
)

// normalizeViewBox replaces the Graphviz root element with a plain one and
// drops the XML prolog and doctype, so the output starts with "<svg".
func normalizeViewBox(svg []byte) []byte {
	svg = prologRe.ReplaceAll(svg, []byte("$1"))

	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
