// Package security validates filesystem paths supplied through
// configuration before they reach the database layer.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shell metacharacters that have no business in a database path.
var forbiddenChars = []string{";", "&", "|", "$", "`", "(", ")", "{", "}", "<", ">", "!", "\n", "\r"}

// ValidateFilePath rejects paths containing shell metacharacters or
// traversal components, resolves symlinks for existing files, and
// returns an absolute cleaned path. Paths that do not exist yet are
// allowed since the database file is created on first open.
func ValidateFilePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	for _, char := range forbiddenChars {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("file path contains forbidden character %q: %s", char, path)
		}
	}

	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		cleanPath = filepath.Join(cwd, cleanPath)
	}

	resolvedPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cleanPath, nil
		}
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	return resolvedPath, nil
}

// ValidateFilePathInDir validates a path and additionally requires it
// to live under baseDir, so a configured override cannot point the
// store at an arbitrary location.
func ValidateFilePathInDir(path, baseDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("base directory cannot be empty")
	}

	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return "", err
	}

	cleanBaseDir := filepath.Clean(baseDir)
	if !filepath.IsAbs(cleanBaseDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		cleanBaseDir = filepath.Join(cwd, cleanBaseDir)
	}

	resolvedBaseDir, err := filepath.EvalSymlinks(cleanBaseDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to resolve base directory: %w", err)
		}
		resolvedBaseDir = cleanBaseDir
	}

	// Trailing separator keeps /foo from matching /foobar.
	if !strings.HasPrefix(cleanPath, resolvedBaseDir+string(filepath.Separator)) && cleanPath != resolvedBaseDir {
		return "", fmt.Errorf("file path escapes base directory: %s is not within %s", path, baseDir)
	}

	return cleanPath, nil
}
