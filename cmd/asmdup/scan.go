package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/asmdup/app"
	"github.com/ludo-technologies/asmdup/domain"
	"github.com/ludo-technologies/asmdup/internal/config"
	"github.com/ludo-technologies/asmdup/service"
)

// ScanCommand handles the cluster-mode CLI command.
type ScanCommand struct {
	// Input parameters
	recursive       bool
	configFile      string
	includePatterns []string
	excludePatterns []string
	extensions      []string

	// Analysis configuration
	threshold    float64
	windowStride int
	windowSize   int

	// Output options
	outputPath string
	format     string
	sortBy     string
	showAll    bool
	srcBase    string
	verbose    bool
}

// NewScanCommand creates a new scan command with defaults.
func NewScanCommand() *ScanCommand {
	return &ScanCommand{
		recursive:    true,
		threshold:    config.DefaultThreshold,
		windowStride: config.DefaultWindowStride,
		windowSize:   config.DefaultWindowSize,
		extensions:   []string{".s"},
		format:       "text",
		sortBy:       "size",
	}
}

// CreateCobraCommand creates the Cobra command for cluster mode.
func (c *ScanCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [directories...]",
		Short: "Cluster near-duplicate functions across corpora",
		Long: `Scan one or more directories of disassembly listings and group
near-duplicate functions into clusters.

Each function and its sliding-window fragments are indexed by an opcode
fingerprint; functions whose fingerprints reach the similarity threshold
against a cluster's representative join that cluster. Clusters of size 1
are omitted unless --all is given.

When no directories are given, the [[pairs]] entries of the configuration
file supply the corpora, including the source trees used to mark which
functions are already decompiled.

Examples:
  # Scan one directory
  asmdup scan asm/us

  # Scan with a custom threshold, JSON to a file
  asmdup scan --threshold 0.9 --format json --output dups.json asm/us

  # Use the configured corpus pairs
  asmdup scan`,
		RunE: c.runScan,
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
		"Similarity threshold for cluster membership (0.0-1.0)")
	cmd.Flags().IntVar(&c.windowStride, "window-stride", c.windowStride,
		"Instruction stride between window fragments")
	cmd.Flags().IntVar(&c.windowSize, "window-size", c.windowSize,
		"Instructions per window fragment")

	cmd.Flags().StringVarP(&c.outputPath, "output", "o", c.outputPath,
		"Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&c.format, "format", "f", c.format,
		"Output format: text, json, yaml, csv")
	cmd.Flags().StringVar(&c.sortBy, "sort", c.sortBy,
		"Sort clusters by: size, location, similarity")
	cmd.Flags().BoolVarP(&c.showAll, "all", "a", c.showAll,
		"Include clusters with a single member")
	cmd.Flags().StringVar(&c.srcBase, "src-base", c.srcBase,
		"Path prefix stripped from file paths in the report")
	cmd.Flags().BoolVarP(&c.verbose, "verbose", "v", c.verbose,
		"List every parsed function to stderr")

	return cmd
}

// runScan executes the scan command.
func (c *ScanCommand) runScan(cmd *cobra.Command, args []string) error {
	request, err := c.createScanRequest(cmd, args)
	if err != nil {
		return err
	}

	useCase, err := buildDupUseCase()
	if err != nil {
		return fmt.Errorf("failed to create scan use case: %w", err)
	}

	if err := useCase.ExecuteScan(context.Background(), request); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

// createScanRequest merges the configuration file with command line flags.
// Flags the user set explicitly take precedence over file values.
func (c *ScanCommand) createScanRequest(cmd *cobra.Command, paths []string) (*domain.ScanRequest, error) {
	startDir := "."
	if len(paths) > 0 {
		startDir = paths[0]
	}

	cfg, err := config.LoadConfig(c.configFile, startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	c.applyCliOverrides(cfg, cmd)

	format, err := domain.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	sortBy, err := domain.ParseSortCriteria(cfg.Output.SortBy)
	if err != nil {
		return nil, err
	}

	pairs := make([]domain.CorpusPair, 0, len(cfg.Pairs))
	for _, p := range cfg.Pairs {
		pairs = append(pairs, domain.CorpusPair{
			Name:        p.Name,
			AsmDir:      p.AsmDir,
			SrcDir:      p.SrcDir,
			PathMatcher: p.PathMatcher,
			AsmBase:     p.AsmBase,
		})
	}

	return &domain.ScanRequest{
		Paths:           paths,
		Pairs:           pairs,
		Threshold:       cfg.Scan.Threshold,
		WindowStride:    cfg.Window.Stride,
		WindowSize:      cfg.Window.Size,
		Recursive:       cfg.Input.Recursive,
		Extensions:      cfg.Input.Extensions,
		IncludePatterns: cfg.Input.IncludePatterns,
		ExcludePatterns: cfg.Input.ExcludePatterns,
		ShowAll:         cfg.Scan.ShowAll,
		ListFunctions:   c.verbose,
		OutputFormat:    format,
		OutputWriter:    os.Stdout,
		OutputPath:      c.outputPath,
		SortBy:          sortBy,
		SrcBase:         cfg.Output.SrcBase,
	}, nil
}

// applyCliOverrides copies explicitly set flags over the loaded config.
func (c *ScanCommand) applyCliOverrides(cfg *config.Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Scan.Threshold = c.threshold
	}
	if flags.Changed("all") {
		cfg.Scan.ShowAll = c.showAll
	}
	if flags.Changed("window-stride") {
		cfg.Window.Stride = c.windowStride
	}
	if flags.Changed("window-size") {
		cfg.Window.Size = c.windowSize
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
	if flags.Changed("sort") {
		cfg.Output.SortBy = c.sortBy
	}
	if flags.Changed("src-base") {
		cfg.Output.SrcBase = c.srcBase
	}
}

// NewScanCmd creates the scan cobra command.
func NewScanCmd() *cobra.Command {
	return NewScanCommand().CreateCobraCommand()
}

// buildDupUseCase wires the standard production dependencies.
func buildDupUseCase() (*app.DupUseCase, error) {
	dupService := service.NewDupService(
		service.NewFileReader(),
		service.NewProgressManager(),
		os.Stderr,
	)
	return app.NewDupUseCaseBuilder().
		WithService(dupService).
		WithFormatter(service.NewDupOutputFormatter()).
		WithWriter(service.NewFileOutputWriter(os.Stderr)).
		Build()
}
