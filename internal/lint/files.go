package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// isTerraform returns true if the file extension is .tf.
func isTerraform(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tf"
}

// hasGlobChars returns true if the string contains glob meta-characters.
func hasGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// ResolveFiles takes positional arguments and returns deduplicated,
// sorted Terraform file paths. It supports individual files,
// directories (recursive *.tf), and glob patterns. Returns an error
// for nonexistent paths that are not glob patterns.
func ResolveFiles(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			result = append(result, path)
		}
	}

	for _, arg := range args {
		if err := resolveArg(arg, addFile); err != nil {
			return nil, err
		}
	}

	sort.Strings(result)
	return result, nil
}

// resolveArg resolves a single argument (glob, directory, or file) and
// calls addFile for each Terraform file found.
func resolveArg(arg string, addFile func(string)) error {
	if hasGlobChars(arg) {
		return resolveGlob(arg, addFile)
	}

	info, err := os.Stat(arg)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", arg, err)
	}

	if info.IsDir() {
		return addDirFiles(arg, addFile)
	}

	// Explicitly named files are accepted regardless of extension.
	addFile(arg)
	return nil
}

// resolveGlob expands a glob pattern and adds matching Terraform files.
func resolveGlob(pattern string, addFile func(string)) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if info.IsDir() {
			if err := addDirFiles(m, addFile); err != nil {
				return err
			}
		} else if isTerraform(m) {
			addFile(m)
		}
	}
	return nil
}

// addDirFiles walks a directory and adds all Terraform files found.
// The .terraform module cache is skipped.
func addDirFiles(dir string, addFile func(string)) error {
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == ".terraform" {
				return filepath.SkipDir
			}
			return nil
		}
		if isTerraform(path) {
			addFile(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory %q: %w", dir, err)
	}
	return nil
}
