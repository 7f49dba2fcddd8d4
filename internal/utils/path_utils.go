package utils

import (
	"path/filepath"

	"github.com/sampl-lang/sampl/internal/config"
)

// ExtractModuleName derives a module name from a file path.
// It takes the base filename and removes any recognized source extension.
func ExtractModuleName(path string) string {
	name := filepath.Base(path)
	return config.TrimSourceExt(name)
}

// GetModuleDir returns the directory context for a module path.
// If the path points to a source file, returns the file's directory.
// If the path points to a directory (no extension), returns the path itself.
func GetModuleDir(path string) string {
	if config.HasSourceExt(path) {
		return filepath.Dir(path)
	}
	return path
}

// HostOutputPath places the transpiled file for a source path in outDir.
func HostOutputPath(outDir, sourcePath string) string {
	return filepath.Join(outDir, ExtractModuleName(sourcePath)+config.HostFileExt)
}
