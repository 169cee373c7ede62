package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/graphsvg/pkg/render/plan"
)

const defaultFontFamily = "Helvetica, Arial, sans-serif"

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	fontFamily string
	background string
	class      string
}

// WithFontFamily sets the font-family of node names.
func WithFontFamily(f string) Option { return func(r *renderer) { r.fontFamily = f } }

// WithBackground fills the canvas with a color before drawing.
func WithBackground(c string) Option { return func(r *renderer) { r.background = c } }

// WithClass sets the class attribute of the root element.
func WithClass(c string) Option { return func(r *renderer) { r.class = c } }

// Render serializes a plan. The output starts with "<svg".
func Render(p *plan.Plan, opts ...Option) []byte {
	r := renderer{fontFamily: defaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := p.ScaledSize()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s"`,
		num(w), num(h), num(p.Width), num(p.Height))
	if r.class != "" {
		fmt.Fprintf(&buf, ` class="%s"`, EscapeXML(r.class))
	}
	buf.WriteString(">\n")

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(r.background))
	}

	markers := map[string]string{}
	if p.Directed && len(p.Edges) > 0 {
		markers = renderMarkers(&buf, p.EdgeColors())
	}
	for _, e := range p.Edges {
		renderEdge(&buf, p, e, markers[e.Color])
	}
	for _, i := range p.Order {
		renderNode(&buf, p, p.Nodes[i])
	}
	for _, i := range p.Order {
		renderName(&buf, p, p.Nodes[i], r.fontFamily)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderMarkers writes one arrow head per edge color and returns the marker
// id of each color.
func renderMarkers(buf *bytes.Buffer, colors []string) map[string]string {
	ids := make(map[string]string, len(colors))
	buf.WriteString("  <defs>\n")
	for k, c := range colors {
		id := fmt.Sprintf("arrow-%d", k)
		ids[c] = id
		fmt.Fprintf(buf, `    <marker id="%s" markerWidth="4" markerHeight="4" refX="4" refY="2" orient="auto" markerUnits="strokeWidth">`+
			`<path d="M0,0 L0,4 L4,2 Z" fill="%s"/></marker>`+"\n", id, EscapeXML(c))
	}
	buf.WriteString("  </defs>\n")
	return ids
}

func renderEdge(buf *bytes.Buffer, p *plan.Plan, e plan.Edge, marker string) {
	src, dst := p.Nodes[e.Source], p.Nodes[e.Target]
	x2, y2 := dst.X, dst.Y
	if p.Directed {
		x2, y2 = shorten(src, dst)
	}
	fmt.Fprintf(buf, `  <path d="M %s %s L %s %s" stroke="%s" stroke-width="%s"`,
		num(src.X), num(src.Y), num(x2), num(y2), EscapeXML(e.Color), num(e.Width))
	if marker != "" {
		fmt.Fprintf(buf, ` marker-end="url(#%s)"`, marker)
	}
	buf.WriteString("/>\n")
}

// shorten returns the point where the segment src -> dst meets the border
// of dst, so that an arrow head ends on the node instead of its center.
func shorten(src, dst plan.Node) (float64, float64) {
	dx, dy := dst.X-src.X, dst.Y-src.Y
	d := math.Hypot(dx, dy)
	gap := dst.Radius + dst.StrokeWidth/2
	if d <= gap {
		return dst.X, dst.Y
	}
	f := (d - gap) / d
	return src.X + dx*f, src.Y + dy*f
}

func renderNode(buf *bytes.Buffer, p *plan.Plan, n plan.Node) {
	fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(n.X), num(n.Y), num(n.Radius), EscapeXML(n.Fill), EscapeXML(p.NodeStroke), num(n.StrokeWidth))
}

func renderName(buf *bytes.Buffer, p *plan.Plan, n plan.Node, fontFamily string) {
	if n.Name == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="%s" font-size="%s" font-family="%s">%s</text>`+"\n",
		num(n.NameX), num(n.NameY), n.NameAnchor, num(p.FontSize), EscapeXML(fontFamily), EscapeXML(n.Name))
}

// EscapeXML escapes text for use in element content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}
