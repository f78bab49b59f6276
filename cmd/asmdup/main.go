package main

import (
	"os"

	"github.com/ludo-technologies/asmdup/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "asmdup",
	Short: "Fuzzy duplicate detection for disassembled MIPS functions",
	Long: `asmdup finds near-duplicate functions in directories of disassembly
listings. It fingerprints each function by its instruction opcodes and
clusters functions whose fingerprints are similar under a normalized
edit distance.

Modes:
  scan     cluster duplicates across one or more corpora
  compare  match functions between exactly two directories`,
	Version: version.Short(),
}

func init() {
	rootCmd.AddCommand(NewScanCmd())
	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
