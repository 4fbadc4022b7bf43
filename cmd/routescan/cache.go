package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"routescan/internal/config"
	"routescan/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the scan result cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir [path]",
	Short: "Print the cache directory and its size",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheDir,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [path]",
	Short: "Remove every cached unit",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.PersistentFlags().String("cache-dir", "", "result cache directory (default from config)")
	cacheCmd.AddCommand(cacheDirCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// resolveCacheDir applies the same precedence as scan: flag, config, default.
func resolveCacheDir(cmd *cobra.Command, args []string) (string, error) {
	if dir, _ := cmd.Flags().GetString("cache-dir"); dir != "" {
		return dir, nil
	}
	base := "."
	if len(args) > 0 && args[0] != "" {
		base = args[0]
	}
	cfg, err := config.Load(base)
	if err != nil {
		return "", err
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return driver.DefaultCacheDir("routescan")
}

func runCacheDir(cmd *cobra.Command, args []string) error {
	dir, err := resolveCacheDir(cmd, args)
	if err != nil {
		return err
	}
	units, size, err := cacheUsage(filepath.Join(dir, "units"))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s units, %s\n", dir, humanize.Comma(int64(units)), humanize.Bytes(size))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	dir, err := resolveCacheDir(cmd, args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cache directory not found\n")
		return nil
	}
	disk, err := driver.OpenDiskCache(dir)
	if err != nil {
		return err
	}
	if err := disk.DropAll(); err != nil {
		return fmt.Errorf("failed to clear %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed cached units from %s\n", dir)
	return nil
}

func cacheUsage(dir string) (units int, size uint64, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() || filepath.Ext(path) != ".mp" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		units++
		if info.Size() > 0 {
			size += uint64(info.Size())
		}
		return nil
	})
	return units, size, err
}
