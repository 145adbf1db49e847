package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlayout/pkg/diagram"
	errs "github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/pipeline"
	"github.com/matzehuels/umlayout/pkg/render/dot"
)

// renderCommand creates the render command for drawing diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags    layoutFlags
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render [diagram]",
		Short: "Draw a diagram as SVG, PNG or DOT",
		Long: `Draw a diagram file through Graphviz, keeping the stored class positions.

Classes are laid out first when --algorithm is given or when no class has a
position yet. Without -o the result goes next to the input as <name>.<format>.`,
		Example: `  umlayout render shop.layout.yaml
  umlayout render shop.yaml -a hierarchical -f png -o shop.png
  umlayout render shop.yaml -f dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") || opts.Format == "" {
				opts.Format = format
			}
			if cmd.Flags().Changed("detailed") {
				opts.Detailed = detailed
			}
			if err := pipeline.ValidateFormat(opts.Format); err != nil {
				return err
			}
			if output == "" {
				output = derivePath(args[0], "."+opts.Format)
			}
			relayout := cmd.Flags().Changed("algorithm")
			return c.runRender(cmd.Context(), args[0], output, opts, relayout)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.DefaultFormat, "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show member counts in class boxes")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return dot.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runRender reads input, lays it out when needed, and writes the drawing.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, relayout bool) error {
	if err := errs.ValidateOutputPath(output); err != nil {
		return err
	}
	d, err := diagram.ReadFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if relayout || !anyPlaced(d) {
		res, err := spin(ctx, "Laying out...", func() (*pipeline.Result, error) {
			return runner.Layout(ctx, d, opts)
		})
		if err != nil {
			return err
		}
		c.Logger.Debug("layout before render", "algorithm", res.Algorithm, "moved", res.Moved, "cached", res.CacheHit)
	}

	type rendered struct {
		data []byte
		hit  bool
	}
	r, err := spin(ctx, fmt.Sprintf("Rendering %s...", opts.Format), func() (rendered, error) {
		data, hit, err := runner.RenderWithCacheInfo(ctx, d, opts)
		return rendered{data, hit}, err
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, r.data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %s", input)
	printFile(output)
	fmt.Fprintln(out, formatStats(d.ClassCount(), d.RelationCount(), -1, r.hit))
	return nil
}

// anyPlaced reports whether at least one class has a stored position.
func anyPlaced(d *diagram.ClassDiagram) bool {
	for _, c := range d.Classes() {
		if c.Placed() {
			return true
		}
	}
	return false
}
