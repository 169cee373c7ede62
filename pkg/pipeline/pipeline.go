// Package pipeline provides the parse → layout → render pipeline for graphsvg.
//
// The CLI and the HTTP server both drive rendering through a [Runner], so
// defaults, validation and caching behave the same from every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode a JSON or TOML graph document
//  2. Layout: resolve the document and options into a drawing plan
//  3. Render: serialize the plan to every requested format concurrently
//
// The layout and every artifact are cached by content hash, so repeated
// renders of the same document with the same options are served from the
// cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg", "html"}
//	result, err := runner.ExecuteFile(ctx, "karate.json", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphsvg/pkg/cache"
	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/graph"
	"github.com/matzehuels/graphsvg/pkg/layout"
	"github.com/matzehuels/graphsvg/pkg/render/plan"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default spring layout seed.
	DefaultSeed = layout.DefaultSeed

	// DefaultNodeColor is the fill of nodes without a color attribute.
	DefaultNodeColor = "gray"

	// MaxIterations bounds the spring layout iterations of one request.
	MaxIterations = 1000

	// DefaultTitle is the page title of HTML output.
	DefaultTitle = "graphsvg"

	// pngScale is the resolution multiplier for PNG output.
	pngScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatHTML: true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Rendering engines.
const (
	// EngineNative draws SVG directly from the plan.
	EngineNative = "native"
	// EngineGraphviz renders the plan's DOT export with Graphviz (neato,
	// pinned positions).
	EngineGraphviz = "graphviz"
)

// ValidEngines is the set of supported rendering engines.
var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// It is decoded from API request bodies (JSON) and config files (TOML);
// decode into [DefaultOptions] so absent keys keep their defaults.
type Options struct {
	plan.Style

	NodeColor  string `json:"node_color,omitempty" toml:"node_color"`
	ColorRow   string `json:"color_row,omitempty" toml:"color_row"`
	ColorCol   string `json:"color_col,omitempty" toml:"color_col"`
	Seed       uint64 `json:"seed" toml:"seed"`
	Iterations int    `json:"iterations,omitempty" toml:"iterations"`
	// NoReorder keeps bigraph nodes in index order.
	NoReorder bool `json:"no_reorder,omitempty" toml:"no_reorder"`

	// Render options
	Formats []string `json:"formats,omitempty" toml:"formats"`
	Engine  string   `json:"engine,omitempty" toml:"engine"`
	Title   string   `json:"title,omitempty" toml:"title"`

	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty" toml:"refresh"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`
}

// DefaultOptions returns options with every default set. EdgeWidthMax is
// left zero so graphs and bigraphs each get their own default.
func DefaultOptions() Options {
	style := plan.DefaultStyle()
	style.EdgeWidthMax = 0
	return Options{
		Style:     style,
		NodeColor: DefaultNodeColor,
		ColorRow:  DefaultNodeColor,
		ColorCol:  DefaultNodeColor,
		Seed:      DefaultSeed,
		Formats:   []string{FormatSVG},
		Engine:    EngineNative,
		Title:     DefaultTitle,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the parsed input.
	Document *graph.Document

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Plan is the resolved drawing.
	Plan *plan.Plan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, html, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that an engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills fields whose zero value is never meaningful.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = EngineNative
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.NodeColor == "" {
		o.NodeColor = DefaultNodeColor
	}
	if o.ColorRow == "" {
		o.ColorRow = DefaultNodeColor
	}
	if o.ColorCol == "" {
		o.ColorCol = DefaultNodeColor
	}
	if o.EdgeColor == "" {
		o.EdgeColor = plan.DefaultStyle().EdgeColor
	}
	if o.NamePosition == "" {
		o.NamePosition = plan.NameRight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks formats, the engine
// and the style.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if err := validateIterations(o.Iterations); err != nil {
		return err
	}
	return o.GraphOptions().Style.Validate()
}

func validateIterations(n int) error {
	if n < 0 || n > MaxIterations {
		return errors.New(errors.ErrCodeInvalidInput, "iterations must be between 0 and %d, got %d", MaxIterations, n)
	}
	return nil
}

// GraphOptions returns the resolver options for a graph or digraph.
func (o *Options) GraphOptions() plan.Options {
	opts := plan.DefaultOptions()
	opts.Style = o.styleOver(opts.Style)
	opts.NodeColor = o.NodeColor
	opts.Seed = o.Seed
	opts.Iterations = o.Iterations
	return opts
}

// BigraphOptions returns the resolver options for a bigraph.
func (o *Options) BigraphOptions() plan.BigraphOptions {
	opts := plan.DefaultBigraphOptions()
	opts.Style = o.styleOver(opts.Style)
	opts.ColorRow = o.ColorRow
	opts.ColorCol = o.ColorCol
	opts.Reorder = !o.NoReorder
	return opts
}

// styleOver returns the configured style. A zero EdgeWidthMax takes the
// value of def, which differs between graphs and bigraphs.
func (o *Options) styleOver(def plan.Style) plan.Style {
	s := o.Style
	if s.EdgeWidthMax == 0 {
		s.EdgeWidthMax = def.EdgeWidthMax
	}
	return s
}

// layoutSettings is every option that affects the resolved plan.
type layoutSettings struct {
	Style      plan.Style `json:"style"`
	NodeColor  string     `json:"node_color"`
	ColorRow   string     `json:"color_row"`
	ColorCol   string     `json:"color_col"`
	Iterations int        `json:"iterations"`
	NoReorder  bool       `json:"no_reorder"`
}

// LayoutKeyOpts returns cache key options for plan resolution.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	h, _ := cache.HashJSON(layoutSettings{
		Style:      o.Style,
		NodeColor:  o.NodeColor,
		ColorRow:   o.ColorRow,
		ColorCol:   o.ColorCol,
		Iterations: o.Iterations,
		NoReorder:  o.NoReorder,
	})
	return cache.LayoutKeyOpts{OptionsHash: h, Seed: o.Seed}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Engine: o.Engine}
	switch format {
	case FormatPNG:
		k.Scale = pngScale
	case FormatHTML:
		k.Title = o.Title
	}
	return k
}
