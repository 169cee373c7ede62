// Package render provides format conversion shared by all graph renderers.
//
// # Overview
//
// Rendering happens in two steps. The [plan] subpackage resolves a graph and
// its display attributes into a drawing plan; sinks serialize the plan:
//
//   - [svg]: native SVG output, the primary format
//   - [nodelink]: Graphviz DOT export and Graphviz-rendered SVG
//   - [echarts]: interactive HTML page
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	image, _ := svg.Graph(adjacency, nil, plan.DefaultOptions())
//	pdf, err := render.ToPDF(ctx, []byte(image))
//	png, err := render.ToPNG(ctx, []byte(image), 2.0) // 2x scale
//
// [plan]: github.com/matzehuels/graphsvg/pkg/render/plan
// [svg]: github.com/matzehuels/graphsvg/pkg/render/svg
// [nodelink]: github.com/matzehuels/graphsvg/pkg/render/nodelink
// [echarts]: github.com/matzehuels/graphsvg/pkg/render/echarts
package render
