// Package echarts exports drawing plans as interactive HTML pages.
//
// The page holds a single go-echarts graph series with every node fixed at
// its plan position (layout "none"); users can pan, zoom and drag nodes.
package echarts

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/graphsvg/pkg/render/plan"
)

const defaultTitle = "graphsvg"

// Render writes a standalone HTML page showing p.
func Render(w io.Writer, p *plan.Plan, title string) error {
	if title == "" {
		title = defaultTitle
	}
	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(graphChart(p, title))
	return page.Render(w)
}

func graphChart(p *plan.Plan, title string) *charts.Graph {
	width, height := p.ScaledSize()

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     strconv.Itoa(int(width)) + "px",
			Height:    strconv.Itoa(int(height)) + "px",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)

	chart := opts.GraphChart{
		Layout:    "none",
		Draggable: opts.Bool(true),
		Roam:      opts.Bool(true),
	}
	if p.Directed {
		chart.EdgeSymbol = []string{"none", "arrow"}
	}

	graph.AddSeries("graph", nodes(p), links(p),
		charts.WithGraphChartOpts(chart),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "right",
			FontSize: float32(p.FontSize),
		}),
	)
	return graph
}

// nodes converts plan nodes in draw order. Node names double as echarts
// identifiers, so unnamed nodes get their index.
func nodes(p *plan.Plan) []opts.GraphNode {
	out := make([]opts.GraphNode, 0, len(p.Nodes))
	for _, i := range p.Order {
		n := p.Nodes[i]
		out = append(out, opts.GraphNode{
			Name:       nodeID(n),
			X:          float32(n.X),
			Y:          float32(n.Y),
			SymbolSize: 2 * n.Radius,
			ItemStyle: &opts.ItemStyle{
				Color:       n.Fill,
				BorderColor: p.NodeStroke,
				BorderWidth: float32(n.StrokeWidth),
			},
		})
	}
	return out
}

func links(p *plan.Plan) []opts.GraphLink {
	out := make([]opts.GraphLink, 0, len(p.Edges))
	for _, e := range p.Edges {
		out = append(out, opts.GraphLink{
			Source: nodeID(p.Nodes[e.Source]),
			Target: nodeID(p.Nodes[e.Target]),
			Value:  float32(e.Weight),
			LineStyle: &opts.LineStyle{
				Color: e.Color,
				Width: float32(e.Width),
			},
		})
	}
	return out
}

// nodeID returns a name unique within the plan. Names may repeat, so the
// index is appended whenever a name is present.
func nodeID(n plan.Node) string {
	if n.Name == "" {
		return strconv.Itoa(n.Index)
	}
	return n.Name + " #" + strconv.Itoa(n.Index)
}
