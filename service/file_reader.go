package service

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/asmdup/domain"
)

// FileReaderImpl implements domain.FileReader over the local filesystem.
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service.
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectAsmFiles recursively finds disassembly files under root. Traversal
// is fail-fast: an unreadable directory aborts the whole run rather than
// producing a partial corpus.
func (f *FileReaderImpl) CollectAsmFiles(root string, recursive bool, extensions, includePatterns, excludePatterns []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, domain.NewFileNotFoundError(root, err)
	}
	if !info.IsDir() {
		return nil, domain.NewInvalidInputError("not a directory: "+root, nil)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive {
				return filepath.SkipDir
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !hasExtension(path, extensions) {
			return nil
		}
		if !matchesPatterns(path, includePatterns, excludePatterns) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to walk directory "+root, err)
	}

	return files, nil
}

// ReadFile reads the content of a file.
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// hasExtension checks the file suffix against the configured extensions.
func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// matchesPatterns applies include/exclude doublestar globs to the
// slash-separated path. Exclude wins; an empty include list includes
// everything.
func matchesPatterns(path string, includePatterns, excludePatterns []string) bool {
	slashed := filepath.ToSlash(path)

	for _, pattern := range excludePatterns {
		if matched, _ := doublestar.Match(pattern, slashed); matched {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matched, _ := doublestar.Match(pattern, slashed); matched {
			return true
		}
	}
	return false
}
