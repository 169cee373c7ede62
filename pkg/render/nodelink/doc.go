// Package nodelink exports drawing plans to Graphviz.
//
// # Overview
//
// [ToDOT] writes a plan as DOT source with every node pinned at its plan
// position, so Graphviz tools reproduce the same picture (run neato with
// -n to honor the pins). [RenderSVG] renders such a DOT file in-process.
//
//	p, _ := plan.ResolveGraph(adjacency, nil, false, plan.DefaultOptions())
//	dot := nodelink.ToDOT(p, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
