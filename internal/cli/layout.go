package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlayout/pkg/diagram"
	errs "github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/layout"
	"github.com/matzehuels/umlayout/pkg/pipeline"
)

// layoutCommand creates the layout command for positioning diagram classes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags       layoutFlags
		output      string
		interactive bool
		showTable   bool
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram]",
		Short: "Compute class positions for a diagram",
		Long: `Compute positions for every class of a diagram file and write the diagram back out.

Diagrams are read and written as JSON, YAML or TOML, chosen by file extension.
Without -o the result goes next to the input as <name>.layout.<ext>.`,
		Example: `  umlayout layout shop.yaml
  umlayout layout shop.yaml -a hierarchical --table
  umlayout layout shop.json -a grid --width 1600 -o shop.json
  umlayout layout shop.yaml --config umlayout.toml -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			if interactive {
				current, err := layout.ParseType(opts.Algorithm)
				if err != nil {
					return err
				}
				t, ok, err := pickAlgorithm(current)
				if err != nil {
					return fmt.Errorf("algorithm picker: %w", err)
				}
				if !ok {
					printInfo("No algorithm selected")
					return nil
				}
				opts.Algorithm = t.String()
			}
			if output == "" {
				output = derivePath(args[0], ".layout"+filepath.Ext(args[0]))
			}
			return c.runLayout(cmd.Context(), args[0], output, opts, showTable)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.<ext>)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose the algorithm interactively")
	cmd.Flags().BoolVar(&showTable, "table", false, "print the resulting positions")

	return cmd
}

// runLayout reads input, lays it out and writes the result to output.
func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, showTable bool) error {
	if err := errs.ValidateOutputPath(output); err != nil {
		return err
	}
	prog := newProgress(c.Logger)
	d, err := diagram.ReadFile(input)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %s", input))

	runner, err := c.newRunner(opts.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := spin(ctx, fmt.Sprintf("Laying out %s...", input), func() (*pipeline.Result, error) {
		return runner.Layout(ctx, d, opts)
	})
	if err != nil {
		return err
	}

	if err := diagram.WriteFile(d, output); err != nil {
		return err
	}

	printSuccess("Laid out %s with %s", input, res.Algorithm)
	printFile(output)
	printStats(d, res)
	if showTable {
		printNewline()
		printPositions(d)
	}
	printNewline()
	printNextStep("Render", "umlayout render "+output)
	return nil
}
