package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"routescan/internal/diag"
	"routescan/internal/source"
)

// loadSingle reads one source file into a fresh FileSet rooted at its directory.
func loadSingle(path string) (*source.FileSet, *source.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, err
	}
	fs := source.NewFileSetWithBase(filepath.Dir(abs))
	id, err := fs.Load(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return fs, fs.Get(id), nil
}

// inspectBag sizes the bag from --max-diagnostics; 0 keeps everything.
func inspectBag(cmd *cobra.Command) *diag.Bag {
	limit, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	return diag.NewBag(limit)
}

func inspectColor(cmd *cobra.Command, f *os.File) bool {
	value, _ := cmd.Root().PersistentFlags().GetString("color")
	mode, err := readColorMode(value)
	if err != nil {
		return false
	}
	return useColor(mode, f)
}
