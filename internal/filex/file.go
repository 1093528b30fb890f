// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold file, so a database
// path like "data/diary.db" works on first run. A bare file name needs no
// directory and is left alone. It returns the directory it made sure of.
func EnsureParentDir(file string) (string, error) {
	dir := filepath.Dir(file)
	if dir == "." {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
