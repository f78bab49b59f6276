// Package xref scans C sources for INCLUDE_ASM markers, the macro calls a
// decompilation project uses to splice not-yet-ported assembly into a
// translation unit. A function whose assembly is still referenced by such a
// marker has no source implementation yet.
package xref

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// markerPattern captures the two macro arguments: the asm directory
// fragment and the bare function identifier.
var markerPattern = regexp.MustCompile(`INCLUDE_ASM\("([^"]*)", ([^)]*)\)`)

// Entry records one marker occurrence.
type Entry struct {
	Line    string // the full marker line
	SrcFile string // C file the marker appears in
	AsmPath string // assembly file the marker references
}

// Index is the set of markers found under one source tree, queryable by
// the assembly file they reference.
type Index struct {
	entries []Entry
}

// Scan recursively reads every .c file under srcDir and collects its
// INCLUDE_ASM markers. asmBase is joined with the captured directory
// fragment and function name to reconstruct the referenced assembly path,
// mirroring how the build expands the macro.
func Scan(srcDir, asmBase string) (*Index, error) {
	idx := &Index{}

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".c" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		for _, line := range strings.Split(string(data), "\n") {
			m := markerPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := strings.TrimSpace(m[2])
			idx.entries = append(idx.entries, Entry{
				Line:    line,
				SrcFile: path,
				AsmPath: filepath.Join(asmBase, m[1], name+".s"),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// StillAsm reports whether a marker still references the named function in
// the given assembly file, meaning it has not been ported to source yet.
func (idx *Index) StillAsm(asmFile, funcName string) bool {
	if funcName == "" {
		return false
	}
	for _, e := range idx.entries {
		if e.AsmPath == asmFile && strings.Contains(e.Line, funcName) {
			return true
		}
	}
	return false
}

// Len returns the number of markers in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}
