// Package cli implements the umlayout command-line interface.
//
// This package provides commands for laying out UML class diagrams stored
// as JSON, YAML or TOML files, rendering them through Graphviz, and managing
// the layout cache. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Compute class positions and write them back to a diagram file
//   - render: Draw a diagram as SVG, PNG or DOT
//   - cache: Manage the layout and artifact cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/umlayout/pkg/buildinfo"
	"github.com/matzehuels/umlayout/pkg/cache"
	"github.com/matzehuels/umlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "umlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "umlayout arranges UML class diagrams",
		Long:         `umlayout computes positions for the classes of a UML class diagram with a force-directed, hierarchical or grid layout, and renders the result through Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		return nil
	}

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	// Entries are scoped to the running version.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache opens the file cache. Without a usable cache directory the CLI
// keeps working uncached.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/umlayout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// derivePath replaces the extension of input: shop.yaml with suffix
// ".layout.yaml" gives shop.layout.yaml.
func derivePath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the flags shared by layout and render.
type layoutFlags struct {
	algorithm string
	width     float64
	height    float64
	config    string
	noCache   bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", pipeline.DefaultAlgorithm, "layout algorithm: force (default), hierarchical, grid")
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML file with layout options")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return algorithmNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// options loads the config file, if any, and lets explicitly set flags
// override it.
func (f *layoutFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		loaded, err := pipeline.LoadOptions(f.config)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") || opts.Algorithm == "" {
		opts.Algorithm = f.algorithm
	}
	if flags.Changed("width") || opts.Width == 0 {
		opts.Width = f.width
	}
	if flags.Changed("height") || opts.Height == 0 {
		opts.Height = f.height
	}
	opts.NoCache = f.noCache
	return opts, nil
}
