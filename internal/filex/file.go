// Package filex prepares local files the console writes.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DSNPath returns the file path of a SQLite DSN, or "" for in-memory
// databases. A "file:" prefix and any query string are stripped.
func DSNPath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	path, _, _ = strings.Cut(path, "?")
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	return path
}

// EnsureParentDir creates the directory that will hold the database
// file of dsn. It returns that directory, or "" when nothing is needed.
func EnsureParentDir(dsn string) (string, error) {
	path := DSNPath(dsn)
	if path == "" {
		return "", nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}
