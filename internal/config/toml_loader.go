package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FindConfigFile walks from startDir toward the filesystem root looking for
// a .asmdup.toml. Returns the empty string when none exists.
func FindConfigFile(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, DefaultConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadConfigFromDir loads the discovered .asmdup.toml nearest to startDir,
// layered over the defaults. When no config file exists the defaults are
// returned as-is.
func LoadConfigFromDir(startDir string) (*Config, error) {
	cfg := DefaultConfig()

	path := FindConfigFile(startDir)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigTemplate is the commented configuration written by
// `asmdup init`.
const defaultConfigTemplate = `# asmdup configuration
# Duplicate detection over disassembled function corpora.

[scan]
# Minimum normalized similarity (0.0-1.0) for two signatures to be
# treated as duplicates. 1.0 degenerates to exact-signature equality.
threshold = 0.94
# Include size-1 clusters in reports.
show_all = false

[window]
# Sliding-window fragmentation: start-index step and fragment length.
# Only functions with at least 'size' instructions produce fragments.
stride = 4
size = 32

[input]
# File extensions parsed as disassembly.
extensions = [".s"]
# Optional doublestar globs matched against file paths; exclude wins.
# include_patterns = ["**/nonmatchings/**"]
# exclude_patterns = ["**/data/**"]
recursive = true

[output]
# Report format: text, json, yaml, csv.
format = "text"
# Cluster sort: size, location, similarity.
sort_by = "size"
# Prefix stripped from file paths in reports.
# src_base = "../../"

# Corpus/source pairs scanned when 'asmdup scan' is run without directory
# arguments. src_dir is scanned for INCLUDE_ASM markers to stamp the
# decompiled column; asm_base reconstructs the marker-referenced paths.
# [[pairs]]
# name = "OS"
# asm_dir = "../../asm/matchings"
# src_dir = "../../src/os"
# path_matcher = "/os/"
# asm_base = "../../asm/us"
`

// CreateDefaultConfigFile writes the commented default configuration to
// path. Existing files are preserved unless force is set.
func CreateDefaultConfigFile(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
