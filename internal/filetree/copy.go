package filetree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// gitignoreName is how templates ship their .gitignore: npm strips
// .gitignore files from published packages.
const gitignoreName = "gitignore"

// Result lists what Materialize wrote, relative to the project root.
type Result struct {
	Files []string
}

// Materialize copies src into root, overwriting colliding files. When src
// does not exist it performs no writes and returns an empty Result.
func Materialize(src, root string) (*Result, error) {
	result := &Result{}

	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", src, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", src)
	}

	if err := copyDir(src, root, "", result); err != nil {
		return nil, fmt.Errorf("copying %s to %s: %w", src, root, err)
	}

	if err := restoreGitignore(root, result); err != nil {
		return nil, err
	}
	return result, nil
}

// copyDir recursively copies src to dst, recording files under rel.
func copyDir(src, dst, rel string, result *Result) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	// Directories are created writable so their children can be copied;
	// the template's mode is applied once they are filled.
	_, statErr := os.Stat(dst)
	created := errors.Is(statErr, fs.ErrNotExist)
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		relPath := filepath.Join(rel, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath, relPath, result); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
			result.Files = append(result.Files, relPath)
		}
		// Skip symlinks and other special files during copy.
	}

	if created {
		return os.Chmod(dst, srcInfo.Mode().Perm())
	}
	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode().Perm()); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file; overwrite it too.
	return os.Chmod(dst, srcInfo.Mode().Perm())
}

// restoreGitignore renames a copied top-level "gitignore" to ".gitignore",
// appending to an existing .gitignore instead of replacing it.
func restoreGitignore(root string, result *Result) error {
	src := filepath.Join(root, gitignoreName)
	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	dst := filepath.Join(root, "."+gitignoreName)
	existing, err := os.ReadFile(dst)
	switch {
	case err == nil:
		if len(existing) > 0 && existing[len(existing)-1] != '\n' {
			existing = append(existing, '\n')
		}
		if err := os.WriteFile(dst, append(existing, data...), 0644); err != nil {
			return fmt.Errorf("appending to %s: %w", dst, err)
		}
		if err := os.Remove(src); err != nil {
			return fmt.Errorf("removing %s: %w", src, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("renaming %s: %w", src, err)
		}
	default:
		return fmt.Errorf("reading %s: %w", dst, err)
	}

	for i, f := range result.Files {
		if f == gitignoreName {
			result.Files[i] = "." + gitignoreName
		}
	}
	return nil
}
