package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsvg/pkg/pipeline"
)

// layoutCommand creates the layout command, which prints resolved node
// positions without drawing them.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		config  string
		noCache bool
	)
	opts := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Print the resolved layout of a graph document as JSON",
		Long: `Resolve a graph document and print its layout as JSON: drawing size,
node positions, radii and colors, and edges with their widths and colors.

The output is the same as 'render -f json'. Results are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if config != "" {
				if err := applyConfig(cmd, config, &opts); err != nil {
					return err
				}
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&config, "config", "", "TOML file with layout options")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	addStyleFlags(cmd, &opts)

	return cmd
}

// runLayout resolves input and writes the layout JSON.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner := c.newRunner(noCache)
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatJSON}

	prog := newProgress(c.Logger)
	result, err := runner.ExecuteFile(ctx, input, opts)
	if err != nil {
		return err
	}
	data := result.Artifacts[pipeline.FormatJSON]

	if output == "" || output == stdoutPath {
		if _, err := stdout.Write(append(data, '\n')); err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Resolved %s", input))
		return nil
	}

	if err := writeOutput(output, data); err != nil {
		return err
	}
	printSuccess("Layout complete")
	printFile(output)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" render "+input+" -f svg,html")
	return nil
}
