package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/graphsvg/pkg/graph"
	"github.com/matzehuels/graphsvg/pkg/observability"
)

// sourceRequest names documents that did not come from a file.
const sourceRequest = "request"

// Parse reads and validates the document at path.
func Parse(ctx context.Context, path string) (*graph.Document, error) {
	return parseWith(ctx, path, func() (*graph.Document, error) {
		return graph.ReadFile(path)
	})
}

// ParseBytes decodes and validates a JSON or TOML document held in memory.
func ParseBytes(ctx context.Context, data []byte) (*graph.Document, error) {
	return parseWith(ctx, sourceRequest, func() (*graph.Document, error) {
		return graph.Unmarshal(data)
	})
}

func parseWith(ctx context.Context, source string, decode func() (*graph.Document, error)) (*graph.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)
	start := time.Now()

	doc, err := decode()
	nodes := 0
	if err == nil {
		nodes = nodeCount(doc)
	}
	hooks.OnParseComplete(ctx, source, nodes, time.Since(start), err)
	return doc, err
}
