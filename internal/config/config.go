package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Default analysis settings. The threshold matches the value the corpus is
// normally scanned with; windowing parameters trade fragment recall against
// scorer cost.
const (
	// DefaultThreshold is the minimum normalized similarity for two
	// signatures to be treated as duplicates.
	DefaultThreshold = 0.94

	// DefaultWindowStride is the start-index step between fragments.
	DefaultWindowStride = 4

	// DefaultWindowSize is the fragment length in instructions; only
	// functions at least this long produce fragments.
	DefaultWindowSize = 32
)

// DefaultConfigFileName is the discovered configuration file name.
const DefaultConfigFileName = ".asmdup.toml"

// Config is the full asmdup configuration.
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan" toml:"scan" yaml:"scan"`
	Window WindowConfig `mapstructure:"window" toml:"window" yaml:"window"`
	Input  InputConfig  `mapstructure:"input" toml:"input" yaml:"input"`
	Output OutputConfig `mapstructure:"output" toml:"output" yaml:"output"`

	// Pairs lists the corpus/source pairs scanned in cluster mode when no
	// directories are given on the command line.
	Pairs []CorpusPair `mapstructure:"pairs" toml:"pairs" yaml:"pairs"`
}

// ScanConfig holds the core detection parameters.
type ScanConfig struct {
	// Threshold is the similarity cutoff in [0, 1].
	Threshold float64 `mapstructure:"threshold" toml:"threshold" yaml:"threshold"`

	// ShowAll includes size-1 clusters in reports.
	ShowAll bool `mapstructure:"show_all" toml:"show_all" yaml:"show_all"`
}

// WindowConfig holds the sliding-window fragmentation parameters.
type WindowConfig struct {
	Stride int `mapstructure:"stride" toml:"stride" yaml:"stride"`
	Size   int `mapstructure:"size" toml:"size" yaml:"size"`
}

// InputConfig holds traversal settings.
type InputConfig struct {
	// Extensions selects which files are parsed as disassembly.
	Extensions []string `mapstructure:"extensions" toml:"extensions" yaml:"extensions"`

	// IncludePatterns and ExcludePatterns are doublestar globs matched
	// against slash-separated file paths. Exclude wins.
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns" yaml:"exclude_patterns"`

	Recursive bool `mapstructure:"recursive" toml:"recursive" yaml:"recursive"`
}

// OutputConfig holds report formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" toml:"format" yaml:"format"`
	SortBy string `mapstructure:"sort_by" toml:"sort_by" yaml:"sort_by"`

	// SrcBase is stripped from file paths in reports.
	SrcBase string `mapstructure:"src_base" toml:"src_base" yaml:"src_base"`
}

// CorpusPair binds an assembly directory to the source tree that may
// already implement parts of it.
type CorpusPair struct {
	// Name labels the pair in diagnostics (e.g. an overlay name).
	Name string `mapstructure:"name" toml:"name" yaml:"name"`

	// AsmDir is the disassembly tree to index.
	AsmDir string `mapstructure:"asm_dir" toml:"asm_dir" yaml:"asm_dir"`

	// SrcDir is the C tree scanned for INCLUDE_ASM markers; empty skips
	// the decompiled-status cross-reference.
	SrcDir string `mapstructure:"src_dir" toml:"src_dir" yaml:"src_dir"`

	// PathMatcher restricts which asm files this pair's markers apply to.
	PathMatcher string `mapstructure:"path_matcher" toml:"path_matcher" yaml:"path_matcher"`

	// AsmBase reconstructs marker-referenced asm paths:
	// {asm_base}/{dir}/{name}.s.
	AsmBase string `mapstructure:"asm_base" toml:"asm_base" yaml:"asm_base"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Threshold: DefaultThreshold,
			ShowAll:   false,
		},
		Window: WindowConfig{
			Stride: DefaultWindowStride,
			Size:   DefaultWindowSize,
		},
		Input: InputConfig{
			Extensions: []string{".s"},
			Recursive:  true,
		},
		Output: OutputConfig{
			Format: "text",
			SortBy: "size",
		},
	}
}

// Validate checks the configuration for values the pipeline cannot run
// with.
func (c *Config) Validate() error {
	if c.Scan.Threshold < 0.0 || c.Scan.Threshold > 1.0 {
		return fmt.Errorf("threshold must be between 0.0 and 1.0, got %g", c.Scan.Threshold)
	}
	if c.Window.Stride < 1 {
		return fmt.Errorf("window stride must be >= 1, got %d", c.Window.Stride)
	}
	if c.Window.Size < 1 {
		return fmt.Errorf("window size must be >= 1, got %d", c.Window.Size)
	}
	if len(c.Input.Extensions) == 0 {
		return fmt.Errorf("at least one input extension is required")
	}
	for i, p := range c.Pairs {
		if p.AsmDir == "" {
			return fmt.Errorf("pairs[%d]: asm_dir is required", i)
		}
	}
	return nil
}

// LoadConfig loads configuration from an explicit path (any format viper
// understands), layered over the defaults. An empty path falls back to
// .asmdup.toml discovery starting at startDir.
func LoadConfig(configPath, startDir string) (*Config, error) {
	if configPath == "" {
		return LoadConfigFromDir(startDir)
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}
	return cfg, nil
}
