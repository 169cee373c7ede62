package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/pipeline"
)

// stdoutPath selects standard output as the render destination.
const stdoutPath = "-"

// renderFlags holds the render flags that are not pipeline options.
type renderFlags struct {
	output  string
	formats string
	config  string
	noCache bool
}

// renderCommand creates the render command for generating drawings.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph document",
		Long: `Render a graph document (JSON or TOML) to one or more formats.

Formats: svg (default), png, pdf, html (interactive ECharts page), dot
(Graphviz source with pinned positions) and json (the resolved layout).

With a single format, -o names the output file ("-" writes to stdout).
With several formats, -o is a base path and each output gets its format's
extension. Without -o, outputs are written next to the input.

Options can also be read from a TOML file with --config; flags given on
the command line take precedence over the file.`,
		Example: `  graphsvg render karate.json
  graphsvg render karate.json -f svg,html -o out/karate
  graphsvg render southern.toml --config style.toml --width 800`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.config != "" {
				if err := applyConfig(cmd, flags.config, &opts); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = pipeline.ParseFormats(flags.formats)
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if flags.output == stdoutPath && len(opts.Formats) != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one format, got %d", len(opts.Formats))
			}
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", `output file (single format), base path (several formats) or "-" for stdout`)
	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, html, dot, json (comma-separated)")
	cmd.Flags().StringVar(&flags.config, "config", "", "TOML file with render options")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&opts.Engine, "engine", opts.Engine, "rendering engine: native, graphviz")
	cmd.Flags().StringVar(&opts.Title, "title", opts.Title, "page title (html)")
	addStyleFlags(cmd, &opts)

	return cmd
}

// addStyleFlags registers the layout and style flags shared by render and
// layout.
func addStyleFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.Float64Var(&opts.Width, "width", opts.Width, "drawing width")
	f.Float64Var(&opts.Height, "height", opts.Height, "drawing height (0 = from aspect ratio)")
	f.Float64Var(&opts.Margin, "margin", opts.Margin, "margin around the drawing")
	f.Float64Var(&opts.Scale, "scale", opts.Scale, "output scale factor")
	f.Float64Var(&opts.NodeSize, "node-size", opts.NodeSize, "node radius")
	f.StringVar(&opts.NodeColor, "node-color", opts.NodeColor, "default node color")
	f.StringVar(&opts.ColorRow, "color-row", opts.ColorRow, "default row node color (bigraph)")
	f.StringVar(&opts.ColorCol, "color-col", opts.ColorCol, "default column node color (bigraph)")
	f.StringVar(&opts.EdgeColor, "edge-color", opts.EdgeColor, "edge color")
	f.BoolVar(&opts.DisplayEdges, "edges", opts.DisplayEdges, "draw edges")
	f.Float64Var(&opts.FontSize, "font-size", opts.FontSize, "label font size")
	f.StringVar(&opts.NamePosition, "name-position", opts.NamePosition, "node name position: right, left, above, below")
	f.Uint64Var(&opts.Seed, "seed", opts.Seed, "spring layout seed")
	f.IntVar(&opts.Iterations, "iterations", opts.Iterations, "spring layout iterations (0 = default)")
	f.BoolVar(&opts.NoReorder, "no-reorder", opts.NoReorder, "keep bigraph nodes in index order")
}

// runRender renders input and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	runner := c.newRunner(flags.noCache)
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()

	result, err := runner.ExecuteFile(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if flags.output == stdoutPath {
		_, err := stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(input, flags.output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %s", input)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	return nil
}

// outputPaths maps each format to its output file.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, format := range formats {
		paths[format] = base + "." + format
	}
	return paths
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output ends in
// a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
