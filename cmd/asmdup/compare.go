package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/asmdup/domain"
	"github.com/ludo-technologies/asmdup/internal/config"
)

// CompareCommand handles the pair-mode CLI command.
type CompareCommand struct {
	recursive       bool
	configFile      string
	includePatterns []string
	excludePatterns []string
	extensions      []string

	threshold float64

	outputPath string
	format     string
	verbose    bool
}

// NewCompareCommand creates a new compare command with defaults.
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{
		recursive:  true,
		threshold:  config.DefaultThreshold,
		extensions: []string{".s"},
		format:     "text",
	}
}

// CreateCobraCommand creates the Cobra command for pair mode.
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <dirA> <dirB>",
		Short: "Match functions between two directories",
		Long: `Compare every function in the first directory against every function
in the second and report the pairs whose fingerprint similarity reaches
the threshold.

Functions are compared whole; no window fragments are generated. The
report lists the retained pairs followed by the first directory's
functions in address order, each cross-referenced with its first match.

Examples:
  # Compare two versions of the same corpus
  asmdup compare asm/us asm/jp

  # Lower the threshold and emit CSV
  asmdup compare --threshold 0.85 --format csv asm/us asm/jp`,
		Args: cobra.ExactArgs(2),
		RunE: c.runCompare,
	}

	cmd.Flags().BoolVarP(&c.recursive, "recursive", "r", c.recursive,
		"Recursively scan directories")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", c.configFile,
		"Path to configuration file")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil,
		"File patterns to include")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil,
		"File patterns to exclude")
	cmd.Flags().StringSliceVar(&c.extensions, "extensions", c.extensions,
		"File extensions to scan")

	cmd.Flags().Float64VarP(&c.threshold, "threshold", "t", c.threshold,
		"Similarity threshold for reported pairs (0.0-1.0)")

	cmd.Flags().StringVarP(&c.outputPath, "output", "o", c.outputPath,
		"Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&c.format, "format", "f", c.format,
		"Output format: text, json, yaml, csv")
	cmd.Flags().BoolVarP(&c.verbose, "verbose", "v", c.verbose,
		"List every parsed function to stderr")

	return cmd
}

// runCompare executes the compare command.
func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	request, err := c.createCompareRequest(cmd, args)
	if err != nil {
		return err
	}

	useCase, err := buildDupUseCase()
	if err != nil {
		return fmt.Errorf("failed to create compare use case: %w", err)
	}

	if err := useCase.ExecuteCompare(context.Background(), request); err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	return nil
}

// createCompareRequest merges the configuration file with command line
// flags. Flags the user set explicitly take precedence over file values.
func (c *CompareCommand) createCompareRequest(cmd *cobra.Command, args []string) (*domain.CompareRequest, error) {
	cfg, err := config.LoadConfig(c.configFile, args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Scan.Threshold = c.threshold
	}
	if flags.Changed("recursive") {
		cfg.Input.Recursive = c.recursive
	}
	if flags.Changed("extensions") {
		cfg.Input.Extensions = c.extensions
	}
	if flags.Changed("include") {
		cfg.Input.IncludePatterns = c.includePatterns
	}
	if flags.Changed("exclude") {
		cfg.Input.ExcludePatterns = c.excludePatterns
	}
	if flags.Changed("format") {
		cfg.Output.Format = c.format
	}

	format, err := domain.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	return &domain.CompareRequest{
		DirA:            args[0],
		DirB:            args[1],
		Threshold:       cfg.Scan.Threshold,
		Recursive:       cfg.Input.Recursive,
		Extensions:      cfg.Input.Extensions,
		IncludePatterns: cfg.Input.IncludePatterns,
		ExcludePatterns: cfg.Input.ExcludePatterns,
		ListFunctions:   c.verbose,
		OutputFormat:    format,
		OutputWriter:    os.Stdout,
		OutputPath:      c.outputPath,
	}, nil
}

// NewCompareCmd creates the compare cobra command.
func NewCompareCmd() *cobra.Command {
	return NewCompareCommand().CreateCobraCommand()
}
